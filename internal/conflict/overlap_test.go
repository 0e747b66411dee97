package conflict

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interval(a, b uint16) (int, int) {
	start, end := int(a%1440), int(b%1440)
	if start > end {
		start, end = end, start
	}
	if start == end {
		end++
	}
	return start, end
}

func clock(t *testing.T, s string) int {
	t.Helper()
	m, ok := ParseClock(s)
	require.True(t, ok, s)
	return m
}

func TestOverlapsSymmetric(t *testing.T) {
	f := func(a, b, c, d uint16) bool {
		s1, e1 := interval(a, b)
		s2, e2 := interval(c, d)
		return Overlaps(s1, e1, s2, e2) == Overlaps(s2, e2, s1, e1)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestOverlapsMatchesContainmentForm(t *testing.T) {
	// 포함 관계를 따로 검사하는 형태와 결과가 같아야 한다
	withContainment := func(s1, e1, s2, e2 int) bool {
		if s1 < e2 && s2 < e1 {
			return true
		}
		return (s1 <= s2 && e2 <= e1) || (s2 <= s1 && e1 <= e2)
	}
	f := func(a, b, c, d uint16) bool {
		s1, e1 := interval(a, b)
		s2, e2 := interval(c, d)
		return Overlaps(s1, e1, s2, e2) == withContainment(s1, e1, s2, e2)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB string
		want                       bool
	}{
		{"맞닿은 구간", "10:00", "11:00", "11:00", "12:00", false},
		{"포함", "10:00", "12:00", "10:30", "11:00", true},
		{"역포함", "10:30", "11:00", "10:00", "12:00", true},
		{"부분 겹침", "10:00", "12:00", "11:00", "13:00", true},
		{"떨어진 구간", "09:00", "10:00", "13:00", "14:00", false},
		{"같은 구간", "09:00", "10:00", "09:00", "10:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(clock(t, tt.startA), clock(t, tt.endA), clock(t, tt.startB), clock(t, tt.endB))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock("09:30")
	require.True(t, ok)
	assert.Equal(t, 570, m)

	m, ok = ParseClock("13:05:00")
	require.True(t, ok)
	assert.Equal(t, 785, m)

	_, ok = ParseClock("9시")
	assert.False(t, ok)

	_, ok = ParseClock("")
	assert.False(t, ok)
}

func TestSameDate(t *testing.T) {
	assert.True(t, SameDate("2024-06-01", "2024-06-01"))
	assert.True(t, SameDate("2024-06-01", "2024-06-01T00:00:00Z"))
	assert.False(t, SameDate("2024-06-01", "2024-06-02"))
	assert.False(t, SameDate("", ""))
	assert.False(t, SameDate("06/01/2024", "06/01/2024"))
}
