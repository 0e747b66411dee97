package conflict

import (
	"time"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04", "15:04:05"}

// Overlaps 는 반열린 구간 [startA, endA) 와 [startB, endB) 가 겹치는지 판단한다.
// 끝 시각은 포함하지 않으므로 맞닿은 구간은 겹치지 않는다.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// ParseClock 은 "HH:MM" 또는 "HH:MM:SS" 를 자정 기준 분 단위로 바꾼다.
func ParseClock(s string) (int, bool) {
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// SameDate 는 두 날짜가 같은 날인지 비교한다. 시간 부분은 무시한다.
// 해석할 수 없는 날짜는 어떤 날짜와도 같지 않다.
func SameDate(a, b string) bool {
	da, ok := parseDate(a)
	if !ok {
		return false
	}
	db, ok := parseDate(b)
	if !ok {
		return false
	}
	return da.Equal(db)
}

func parseDate(s string) (time.Time, bool) {
	if len(s) < len(dateLayout) {
		return time.Time{}, false
	}
	// "2024-06-01T00:00:00Z" 처럼 시간이 붙어 있어도 날짜 부분만 사용
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// span 은 프로그램의 시간 구간을 분 단위로 돌려준다.
// 날짜나 시각이 비어 있거나 해석할 수 없으면 ok 가 false 이다.
func span(p *domain.Program) (start, end int, ok bool) {
	if p.Date == "" || p.StartTime == "" || p.EndTime == "" {
		return 0, 0, false
	}
	if _, ok := parseDate(p.Date); !ok {
		return 0, 0, false
	}
	start, ok = ParseClock(p.StartTime)
	if !ok {
		return 0, 0, false
	}
	end, ok = ParseClock(p.EndTime)
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// collides 는 두 프로그램이 같은 날 겹치는 시간대에 있는지 확인한다.
func collides(candidate *domain.Program, cStart, cEnd int, existing *domain.Program) bool {
	if !SameDate(candidate.Date, existing.Date) {
		return false
	}
	start, end, ok := span(existing)
	if !ok {
		return false
	}
	return Overlaps(cStart, cEnd, start, end)
}

// isSelf 는 수정 중인 프로그램 자기 자신인지 확인한다. ID 가 0 이면 아직 생성되지 않은 것이다.
func isSelf(candidate *domain.Program, existing *domain.Program, editingID int64) bool {
	if existing.ID == 0 {
		return false
	}
	return existing.ID == candidate.ID || existing.ID == editingID
}

func sameID(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
