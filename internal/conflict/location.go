package conflict

import "github.com/healing-forest/reservation/backend/internal/domain"

// HasLocationConflict 는 후보 프로그램이 같은 날 같은 장소에서 시간이 겹치는 다른 프로그램과
// 충돌하는지 확인한다. 같은 단체의 프로그램(local)을 먼저 보고, 없으면 다른 단체의
// 프로그램(external)을 본다. 인력 배정은 고려하지 않는다.
//
// 날짜, 시작/종료 시각, 장소 중 하나라도 없으면 충돌을 판단할 수 없으므로 false 를 돌려준다.
func HasLocationConflict(candidate *domain.Program, local, external []*domain.Program, editingID int64) bool {
	if candidate == nil || candidate.PlaceID == nil {
		return false
	}
	start, end, ok := span(candidate)
	if !ok {
		return false
	}

	for _, p := range local {
		if isSelf(candidate, p, editingID) {
			continue
		}
		if sameID(candidate.PlaceID, p.PlaceID) && collides(candidate, start, end, p) {
			return true
		}
	}

	// 다른 단체의 프로그램은 후보 자신일 수 없으므로 자기 제외를 하지 않는다
	for _, p := range external {
		if sameID(candidate.PlaceID, p.PlaceID) && collides(candidate, start, end, p) {
			return true
		}
	}

	return false
}
