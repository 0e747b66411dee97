package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

func id(v int64) *int64 { return &v }

func program(pid int64, date, start, end string) *domain.Program {
	return &domain.Program{ID: pid, Date: date, StartTime: start, EndTime: end}
}

func at(p *domain.Program, place int64) *domain.Program {
	p.PlaceID = id(place)
	return p
}

func staffed(p *domain.Program, instructor, assistant, helper int64) *domain.Program {
	if instructor != 0 {
		p.InstructorID = id(instructor)
	}
	if assistant != 0 {
		p.AssistantID = id(assistant)
	}
	if helper != 0 {
		p.HelperID = id(helper)
	}
	return p
}

func global(p *domain.Program, summary *domain.ReservationSummary) *domain.ProgramWithReservation {
	return &domain.ProgramWithReservation{Program: *p, Reservation: summary}
}

var testRoster = NewRoster(
	[]*domain.Staff{{ID: 55, Name: "김강사"}},
	[]*domain.Staff{{ID: 7, Name: "이보조"}},
	[]*domain.Staff{{ID: 9, Name: "박헬퍼"}},
)

func TestLocationDoubleBooking(t *testing.T) {
	existing := at(program(1, "2024-06-01", "10:00", "12:00"), 101)
	candidate := at(program(0, "2024-06-01", "11:00", "13:00"), 101)

	assert.True(t, HasLocationConflict(candidate, []*domain.Program{existing}, nil, 0))
}

func TestLocationDifferentRooms(t *testing.T) {
	existing := at(program(1, "2024-06-01", "10:00", "12:00"), 101)
	candidate := at(program(0, "2024-06-01", "10:00", "12:00"), 102)

	assert.False(t, HasLocationConflict(candidate, []*domain.Program{existing}, nil, 0))
}

func TestLocationExternalPrograms(t *testing.T) {
	other := at(program(8, "2024-06-01", "10:00", "12:00"), 101)
	candidate := at(program(0, "2024-06-01", "11:30", "12:30"), 101)

	assert.True(t, HasLocationConflict(candidate, nil, []*domain.Program{other}, 0))
}

func TestLocationCrossDateIsolation(t *testing.T) {
	existing := at(program(1, "2024-06-01", "10:00", "12:00"), 101)
	candidate := at(program(0, "2024-06-02", "10:00", "12:00"), 101)

	assert.False(t, HasLocationConflict(candidate, []*domain.Program{existing}, []*domain.Program{existing}, 0))
}

func TestLocationTouchingIntervals(t *testing.T) {
	existing := at(program(1, "2024-06-01", "10:00", "11:00"), 101)
	candidate := at(program(0, "2024-06-01", "11:00", "12:00"), 101)

	assert.False(t, HasLocationConflict(candidate, []*domain.Program{existing}, nil, 0))
}

func TestLocationIncompleteCandidate(t *testing.T) {
	existing := at(program(1, "2024-06-01", "10:00", "12:00"), 101)
	list := []*domain.Program{existing}

	assert.False(t, HasLocationConflict(program(0, "2024-06-01", "10:00", "12:00"), list, list, 0), "장소 없음")
	assert.False(t, HasLocationConflict(at(program(0, "", "10:00", "12:00"), 101), list, list, 0), "날짜 없음")
	assert.False(t, HasLocationConflict(at(program(0, "2024-06-01", "", "12:00"), 101), list, list, 0), "시작 시각 없음")
	assert.False(t, HasLocationConflict(at(program(0, "2024-06-01", "10:00", ""), 101), list, list, 0), "종료 시각 없음")
	assert.False(t, HasLocationConflict(nil, list, list, 0))
}

func TestLocationSelfExclusion(t *testing.T) {
	stored := at(program(3, "2024-06-01", "10:00", "12:00"), 101)

	edited := at(program(3, "2024-06-01", "10:30", "12:30"), 101)
	assert.False(t, HasLocationConflict(edited, []*domain.Program{stored}, nil, 0), "후보 ID 와 같음")

	form := at(program(0, "2024-06-01", "10:30", "12:30"), 101)
	assert.False(t, HasLocationConflict(form, []*domain.Program{stored}, nil, 3), "editingID 와 같음")

	other := at(program(4, "2024-06-01", "11:00", "11:30"), 101)
	assert.True(t, HasLocationConflict(form, []*domain.Program{stored, other}, nil, 3))
}

func TestPersonnelNoneAssigned(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 55, 7, 9)
	candidate := program(0, "2024-06-01", "09:00", "10:00")

	assert.Equal(t, PersonnelConflict{}, CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster))
	assert.Equal(t, PersonnelConflict{}, CheckPersonnelGlobal(candidate, []*domain.ProgramWithReservation{global(existing, nil)}, 0, testRoster))
}

func TestPersonnelIncompleteTime(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	candidate := staffed(program(0, "2024-06-01", "", "10:00"), 55, 0, 0)

	assert.False(t, CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster).HasConflict)
}

func TestPersonnelLocalConflict(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 0, 7, 0)
	candidate := staffed(program(0, "2024-06-01", "09:30", "10:30"), 55, 7, 0)

	got := CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster)
	require.True(t, got.HasConflict)
	assert.Equal(t, RoleAssistant, got.ConflictType)
	assert.Equal(t, "이보조", got.ConflictName)
	assert.Same(t, existing, got.ExistingProgram)
	assert.False(t, got.IsGlobal)
	assert.Nil(t, got.ReservationInfo)
}

func TestPersonnelPriorityWithinProgram(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 55, 7, 9)
	candidate := staffed(program(0, "2024-06-01", "09:00", "10:00"), 55, 7, 9)

	got := CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster)
	require.True(t, got.HasConflict)
	assert.Equal(t, RoleInstructor, got.ConflictType)
	assert.Equal(t, "김강사", got.ConflictName)

	candidate.InstructorID = nil
	got = CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster)
	assert.Equal(t, RoleAssistant, got.ConflictType)

	candidate.AssistantID = nil
	got = CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster)
	assert.Equal(t, RoleHelper, got.ConflictType)
	assert.Equal(t, "박헬퍼", got.ConflictName)
}

func TestPersonnelFirstMatchInListOrder(t *testing.T) {
	assistantMatch := staffed(program(1, "2024-06-01", "09:00", "10:00"), 0, 7, 0)
	instructorMatch := staffed(program(2, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	candidate := staffed(program(0, "2024-06-01", "09:00", "10:00"), 55, 7, 0)

	got := CheckPersonnel(candidate, []*domain.Program{assistantMatch, instructorMatch}, 0, testRoster)
	require.True(t, got.HasConflict)
	assert.Equal(t, RoleAssistant, got.ConflictType)
	assert.Equal(t, int64(1), got.ExistingProgram.ID)

	got = CheckPersonnel(candidate, []*domain.Program{instructorMatch, assistantMatch}, 0, testRoster)
	assert.Equal(t, RoleInstructor, got.ConflictType)
	assert.Equal(t, int64(2), got.ExistingProgram.ID)
}

func TestPersonnelSelfExclusion(t *testing.T) {
	stored := staffed(program(3, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	candidate := staffed(program(3, "2024-06-01", "09:00", "10:30"), 55, 0, 0)

	assert.False(t, CheckPersonnel(candidate, []*domain.Program{stored}, 0, testRoster).HasConflict)
	assert.False(t, CheckPersonnelGlobal(candidate, []*domain.ProgramWithReservation{global(stored, nil)}, 3, testRoster).HasConflict)
}

func TestPersonnelCrossDateIsolation(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	candidate := staffed(program(0, "2024-06-02", "09:00", "10:00"), 55, 0, 0)

	assert.False(t, CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster).HasConflict)
}

func TestPersonnelAcrossGroups(t *testing.T) {
	groupOne := staffed(program(1, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	groupOne.ReservationID = 1
	candidate := staffed(program(0, "2024-06-01", "09:30", "10:30"), 55, 0, 0)
	candidate.ReservationID = 2

	local := CheckPersonnel(candidate, nil, 0, testRoster)
	assert.Equal(t, PersonnelConflict{}, local)

	all := []*domain.ProgramWithReservation{global(groupOne, &domain.ReservationSummary{
		GroupName:         "숲속명상회",
		CustomerName:      "홍길동",
		ReservationStatus: domain.ReservationConfirmed,
	})}
	got := CheckPersonnelGlobal(candidate, all, 0, testRoster)
	require.True(t, got.HasConflict)
	assert.True(t, got.IsGlobal)
	assert.Equal(t, RoleInstructor, got.ConflictType)
	assert.Equal(t, "김강사", got.ConflictName)
	assert.Equal(t, &ReservationInfo{
		GroupName:         "숲속명상회",
		CustomerName:      "홍길동",
		ReservationStatus: domain.ReservationConfirmed,
	}, got.ReservationInfo)
}

func TestPersonnelGlobalUnknownReservation(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 0, 0, 9)
	candidate := staffed(program(0, "2024-06-01", "09:00", "10:00"), 0, 0, 9)

	got := CheckPersonnelGlobal(candidate, []*domain.ProgramWithReservation{global(existing, nil)}, 0, testRoster)
	require.True(t, got.HasConflict)
	assert.Equal(t, UnknownGroup, got.ReservationInfo.GroupName)
	assert.Equal(t, UnknownPerson, got.ReservationInfo.CustomerName)
	assert.Equal(t, UnknownStatus, got.ReservationInfo.ReservationStatus)

	got = CheckPersonnelGlobal(candidate, []*domain.ProgramWithReservation{global(existing, &domain.ReservationSummary{GroupName: "청년캠프"})}, 0, testRoster)
	assert.Equal(t, "청년캠프", got.ReservationInfo.GroupName)
	assert.Equal(t, UnknownPerson, got.ReservationInfo.CustomerName)
}

func TestPersonnelWithoutResolver(t *testing.T) {
	existing := staffed(program(1, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	candidate := staffed(program(0, "2024-06-01", "09:00", "10:00"), 55, 0, 0)

	got := CheckPersonnel(candidate, []*domain.Program{existing}, 0, nil)
	require.True(t, got.HasConflict)
	assert.Empty(t, got.ConflictName)

	candidate.InstructorID = id(56)
	existing.InstructorID = id(56)
	got = CheckPersonnel(candidate, []*domain.Program{existing}, 0, testRoster)
	assert.Equal(t, UnknownPerson, got.ConflictName)
}

func TestCheckRunsGlobalOnlyWhenLocalPasses(t *testing.T) {
	local := staffed(at(program(1, "2024-06-01", "09:00", "10:00"), 101), 55, 0, 0)
	other := staffed(program(2, "2024-06-01", "09:00", "10:00"), 55, 0, 0)
	candidate := staffed(at(program(0, "2024-06-01", "09:30", "10:30"), 101), 55, 0, 0)

	report := Check(Input{
		Candidate: candidate,
		Local:     []*domain.Program{local},
		Global:    []*domain.ProgramWithReservation{global(other, nil), global(local, nil)},
	}, testRoster)
	assert.True(t, report.LocationConflict)
	require.True(t, report.Personnel.HasConflict)
	assert.False(t, report.Personnel.IsGlobal)
	assert.True(t, report.HasConflict())

	report = Check(Input{
		Candidate:    candidate,
		Global:       []*domain.ProgramWithReservation{global(other, nil)},
		SkipLocation: true,
	}, testRoster)
	assert.False(t, report.LocationConflict)
	require.True(t, report.Personnel.HasConflict)
	assert.True(t, report.Personnel.IsGlobal)
}

func TestCheckNoConflict(t *testing.T) {
	candidate := staffed(at(program(0, "2024-06-01", "09:00", "10:00"), 101), 55, 0, 0)
	existing := staffed(at(program(1, "2024-06-01", "10:00", "11:00"), 101), 55, 0, 0)

	report := Check(Input{
		Candidate: candidate,
		Local:     []*domain.Program{existing},
		External:  []*domain.Program{existing},
		Global:    []*domain.ProgramWithReservation{global(existing, nil)},
	}, testRoster)
	assert.False(t, report.HasConflict())
}
