package main

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *renderer {
	t.Helper()

	r, err := newRenderer("../../templates", "noreply@example.com")
	require.NoError(t, err)
	return r
}

func TestRenderReservationConfirmed(t *testing.T) {
	r := newTestRenderer(t)

	body := []byte(`{
		"type": "reservation_confirmed",
		"to": "customer@example.com",
		"data": {
			"customerName": "홍길동",
			"groupName": "숲속명상회",
			"startDate": "2024-06-01",
			"endDate": "2024-06-02",
			"participantCount": 20
		}
	}`)

	m, err := r.render(body)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	to := m.GetToString()
	require.Len(t, to, 1)
	assert.Contains(t, to[0], "customer@example.com")
	assert.NotEmpty(t, buf.String())
}

func TestRenderEveryTemplate(t *testing.T) {
	r := newTestRenderer(t)

	for typ := range mailTemplates {
		t.Run(typ, func(t *testing.T) {
			_, err := r.render([]byte(`{"type":"` + typ + `","to":"a@example.com","data":{}}`))
			require.NoError(t, err)
		})
	}
}

func TestRenderRejectsBadMessages(t *testing.T) {
	r := newTestRenderer(t)

	cases := map[string]string{
		"invalid json":     `{`,
		"unknown type":     `{"type":"newsletter","to":"a@example.com","data":{}}`,
		"bad recipient":    `{"type":"create_user","to":"not-an-address","data":{}}`,
		"data wrong shape": `{"type":"create_user","to":"a@example.com","data":[]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := r.render([]byte(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errBadMessage))
		})
	}
}
