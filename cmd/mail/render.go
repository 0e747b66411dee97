package main

import (
	"encoding/json"
	"html/template"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/wneessen/go-mail"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

type mailTemplate struct {
	file    string
	subject string
	data    func() any
}

var mailTemplates = map[string]mailTemplate{
	domain.MailCreateUser: {
		file:    "new_account_email.html",
		subject: "힐링포레스트 예약관리 - 계정 안내",
		data:    func() any { return &domain.CreateUserMailData{} },
	},
	domain.MailResetPassword: {
		file:    "reset_password_otp_email.html",
		subject: "힐링포레스트 예약관리 - 비밀번호 재설정",
		data:    func() any { return &domain.ResetPasswordMailData{} },
	},
	domain.MailChangeEmail: {
		file:    "change_email_email.html",
		subject: "힐링포레스트 예약관리 - 이메일 변경",
		data:    func() any { return &domain.ChangeEmailMailData{} },
	},
	domain.MailReservationConfirmed: {
		file:    "reservation_confirmed_email.html",
		subject: "힐링포레스트 - 예약이 확정되었습니다",
		data:    func() any { return &domain.ReservationConfirmedMailData{} },
	},
}

// errBadMessage 는 다시 시도해도 보낼 수 없는 메시지이다.
var errBadMessage = errors.New("bad mail message")

type renderer struct {
	from      string
	templates map[string]*template.Template
}

// newRenderer 는 시작할 때 모든 템플릿을 읽어 둔다.
func newRenderer(dir, from string) (*renderer, error) {
	r := &renderer{
		from:      from,
		templates: make(map[string]*template.Template, len(mailTemplates)),
	}

	for typ, mt := range mailTemplates {
		tmpl, err := template.ParseFiles(filepath.Join(dir, mt.file))
		if err != nil {
			return nil, errors.Wrapf(err, "parse template for %s", typ)
		}
		r.templates[typ] = tmpl
	}

	return r, nil
}

// render 는 큐에서 받은 JSON 을 메일로 만든다.
func (r *renderer) render(body []byte) (*mail.Msg, error) {
	var envelope struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode mail message"), errBadMessage)
	}

	mt, ok := mailTemplates[envelope.Type]
	if !ok {
		return nil, errors.Mark(errors.Newf("unsupported mail type %q", envelope.Type), errBadMessage)
	}

	data := mt.data()
	if err := json.Unmarshal(envelope.Data, data); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %s data", envelope.Type), errBadMessage)
	}

	m := mail.NewMsg()
	if err := m.From(r.from); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "set sender"), errBadMessage)
	}
	if err := m.To(envelope.To); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "set recipient"), errBadMessage)
	}
	m.Subject(mt.subject)
	if err := m.SetBodyHTMLTemplate(r.templates[envelope.Type], data); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "render body"), errBadMessage)
	}

	return m, nil
}
