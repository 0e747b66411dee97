package seed

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/repository"
	"github.com/healing-forest/reservation/backend/internal/utils"
)

// 개발용 기준 정보
var (
	categories = []domain.Category{
		{Name: "명상", AllowDoubleBooking: false},
		{Name: "신체활동", AllowDoubleBooking: false},
		{Name: "체험", AllowDoubleBooking: false},
		{Name: "행사", AllowDoubleBooking: true},
	}
	locations = []domain.Location{
		{Name: "숲속 명상실", Capacity: 30, Description: "본관 2층"},
		{Name: "대강당", Capacity: 120, Description: "본관 1층"},
		{Name: "치유의 숲 A코스", Capacity: 40},
		{Name: "치유의 숲 B코스", Capacity: 40},
		{Name: "야외 광장", Capacity: 200},
	}
	staffCounts = map[domain.StaffKind]int{
		domain.StaffInstructor: 6,
		domain.StaffAssistant:  4,
		domain.StaffHelper:     4,
	}
	specialties = []string{"산림치유", "요가", "명상", "아로마", "레크리에이션"}
)

func SeedUsers(r *repository.Repository, n int, password, emailDomain string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("임의 사용자 생성 실패", "error", err)
			continue
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("사용자 추가 실패", "error", err)
			continue
		}

		cnt++
	}
	return cnt
}

// SeedReferenceData 는 카테고리, 장소, 인력을 추가한다. 이미 있는 이름은 건너뛴다.
func SeedReferenceData(r *repository.Repository) error {
	for _, c := range categories {
		if err := r.CreateCategory(&c); err != nil {
			slog.Warn("카테고리 추가 실패", "name", c.Name, "error", err)
		}
	}

	for _, l := range locations {
		if err := r.CreateLocation(&l); err != nil {
			slog.Warn("장소 추가 실패", "name", l.Name, "error", err)
		}
	}

	for kind, n := range staffCounts {
		for i := 0; i < n; i++ {
			s := &domain.Staff{
				Kind:      kind,
				Name:      utils.GenerateRandomKoreanName(),
				Phone:     utils.GenerateRandomPhone(),
				Specialty: specialties[i%len(specialties)],
			}
			if err := r.CreateStaff(s); err != nil {
				return errors.Wrapf(err, "seed %s", kind)
			}
		}
	}

	return nil
}

type referenceIDs struct {
	categories  []int64
	doubleBook  map[int64]bool
	places      []int64
	instructors []int64
	assistants  []int64
	helpers     []int64
}

func loadReferenceIDs(r *repository.Repository) (*referenceIDs, error) {
	ids := &referenceIDs{doubleBook: make(map[int64]bool)}

	cs, err := r.GetAllCategories()
	if err != nil {
		return nil, err
	}
	for _, c := range cs {
		ids.categories = append(ids.categories, c.ID)
		ids.doubleBook[c.ID] = c.AllowDoubleBooking
	}

	ls, err := r.GetAllLocations()
	if err != nil {
		return nil, err
	}
	for _, l := range ls {
		ids.places = append(ids.places, l.ID)
	}

	for kind, dst := range map[domain.StaffKind]*[]int64{
		domain.StaffInstructor: &ids.instructors,
		domain.StaffAssistant:  &ids.assistants,
		domain.StaffHelper:     &ids.helpers,
	} {
		staff, err := r.GetAllStaff(kind)
		if err != nil {
			return nil, err
		}
		for _, s := range staff {
			*dst = append(*dst, s.ID)
		}
	}

	return ids, nil
}

// SeedReservations 는 임의 예약과 그 프로그램, 지출을 추가한다.
// 생성한 프로그램 중 기존 일정과 충돌하는 것은 버린다.
func SeedReservations(r *repository.Repository, n int, emailDomain string) (int, error) {
	ids, err := loadReferenceIDs(r)
	if err != nil {
		return 0, err
	}

	cnt := 0
	for i := 0; i < n; i++ {
		rsv := utils.GenerateRandomReservation(emailDomain)
		if err := r.CreateReservation(rsv); err != nil {
			slog.Error("예약 추가 실패", "error", err)
			continue
		}

		generated := utils.GenerateRandomPrograms(rsv, ids.categories, ids.places, ids.instructors, ids.assistants, ids.helpers)
		accepted := make([]*domain.Program, 0, len(generated))
		for _, p := range generated {
			ok, err := conflictFree(r, rsv, p, accepted, ids)
			if err != nil {
				return cnt, err
			}
			if ok {
				accepted = append(accepted, p)
			}
		}

		if err := r.CreatePrograms(accepted); err != nil {
			slog.Error("프로그램 추가 실패", "reservation", rsv.ID, "error", err)
			continue
		}

		for j := 0; j < 3; j++ {
			if err := r.CreateExpense(utils.GenerateRandomExpense(rsv)); err != nil {
				slog.Error("지출 추가 실패", "reservation", rsv.ID, "error", err)
			}
		}

		cnt++
	}

	return cnt, nil
}

func conflictFree(r *repository.Repository, rsv *domain.Reservation, p *domain.Program, local []*domain.Program, ids *referenceIDs) (bool, error) {
	external, err := r.GetOtherProgramsOnDate(p.Date, rsv.ID)
	if err != nil {
		return false, err
	}
	global, err := r.GetProgramsWithReservationOnDate(p.Date)
	if err != nil {
		return false, err
	}

	in := conflict.Input{
		Candidate: p,
		Local:     local,
		External:  external,
		Global:    global,
	}
	if p.CategoryID != nil {
		in.SkipLocation = ids.doubleBook[*p.CategoryID]
	}

	return !conflict.Check(in, nil).HasConflict(), nil
}
