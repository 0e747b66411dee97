package conflict

import "github.com/healing-forest/reservation/backend/internal/domain"

// Input 은 저장 전 충돌 검사에 필요한 목록을 모은 것이다.
type Input struct {
	Candidate *domain.Program
	Local     []*domain.Program                // 같은 예약의 프로그램
	External  []*domain.Program                // 다른 예약의 프로그램
	Global    []*domain.ProgramWithReservation // 전체 예약의 프로그램
	EditingID int64

	// 행사형 카테고리는 장소 중복을 허용하므로 장소 검사를 건너뛴다
	SkipLocation bool
}

// Report 는 세 가지 검사 결과를 합친 것이다. 결과는 권고일 뿐이고 저장을 막지 않는다.
type Report struct {
	LocationConflict bool              `json:"locationConflict"`
	Personnel        PersonnelConflict `json:"personnel"`
}

func (r Report) HasConflict() bool {
	return r.LocationConflict || r.Personnel.HasConflict
}

// Check 는 장소 검사, 같은 단체 인력 검사를 차례로 하고,
// 같은 단체 안에서 인력 충돌이 없을 때만 전체 단체 인력 검사를 한다.
func Check(in Input, names NameResolver) Report {
	var report Report

	if !in.SkipLocation {
		report.LocationConflict = HasLocationConflict(in.Candidate, in.Local, in.External, in.EditingID)
	}

	report.Personnel = CheckPersonnel(in.Candidate, in.Local, in.EditingID, names)
	if !report.Personnel.HasConflict {
		report.Personnel = CheckPersonnelGlobal(in.Candidate, in.Global, in.EditingID, names)
	}

	return report
}
