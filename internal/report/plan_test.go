package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
)

func ref(v int64) *int64 { return &v }

func fixture() (*domain.Reservation, []*domain.Program, []*domain.Expense, References) {
	r := &domain.Reservation{ID: 1, GroupName: "숲속명상회", ParticipantCount: 20, StartDate: "2024-06-01", EndDate: "2024-06-02"}

	programs := []*domain.Program{
		{ID: 3, Date: "2024-06-02", StartTime: "10:00", EndTime: "11:00", CategoryID: ref(1), PlaceID: ref(101), InstructorID: ref(55), Price: 300000},
		{ID: 2, Date: "2024-06-01", StartTime: "14:00", EndTime: "15:30", CategoryID: ref(2), PlaceID: ref(102), InstructorID: ref(56), Price: 200000},
		{ID: 1, Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00", CategoryID: ref(1), PlaceID: ref(101), InstructorID: ref(55), AssistantID: ref(7), Price: 300000},
		{ID: 4, Date: "2024-06-02", StartTime: "13:00", EndTime: "14:00"},
	}

	expenses := []*domain.Expense{
		{Category: domain.ExpenseMeal, Amount: 150000},
		{Category: domain.ExpenseInstructor, Amount: 400000},
		{Category: domain.ExpenseMeal, Amount: 50000},
	}

	roster := conflict.NewRoster(
		[]*domain.Staff{{ID: 55, Name: "김강사"}, {ID: 56, Name: "최강사"}},
		[]*domain.Staff{{ID: 7, Name: "이보조"}},
		nil,
	)
	refs := NewReferences(
		[]*domain.Category{{ID: 1, Name: "명상"}, {ID: 2, Name: "요가"}},
		[]*domain.Location{{ID: 101, Name: "숲속홀"}, {ID: 102, Name: "햇살방"}},
		roster,
	)

	return r, programs, expenses, refs
}

func TestBuildImplementationPlanDays(t *testing.T) {
	r, programs, expenses, refs := fixture()

	plan := BuildImplementationPlan(r, programs, expenses, refs)

	require.Len(t, plan.Days, 2)
	assert.Equal(t, "2024-06-01", plan.Days[0].Date)
	require.Len(t, plan.Days[0].Programs, 2)
	assert.Equal(t, int64(1), plan.Days[0].Programs[0].ID, "시작 시각 순")
	assert.Equal(t, int64(2), plan.Days[0].Programs[1].ID)

	first := plan.Days[0].Programs[0]
	assert.Equal(t, "명상", first.CategoryName)
	assert.Equal(t, "숲속홀", first.PlaceName)
	assert.Equal(t, "김강사", first.InstructorName)
	assert.Equal(t, "이보조", first.AssistantName)
	assert.Equal(t, Unassigned, first.HelperName)
	assert.Equal(t, 60, first.DurationMinutes)

	unassigned := plan.Days[1].Programs[1]
	assert.Equal(t, int64(4), unassigned.ID)
	assert.Equal(t, Unassigned, unassigned.CategoryName)
	assert.Equal(t, Unassigned, unassigned.PlaceName)
	assert.Equal(t, Unassigned, unassigned.InstructorName)
}

func TestBuildImplementationPlanTotals(t *testing.T) {
	r, programs, expenses, refs := fixture()

	plan := BuildImplementationPlan(r, programs, expenses, refs)

	assert.Equal(t, []CategoryTotal{
		{CategoryName: "명상", Count: 2, Minutes: 120, Price: 600000},
		{CategoryName: Unassigned, Count: 1, Minutes: 60, Price: 0},
		{CategoryName: "요가", Count: 1, Minutes: 90, Price: 200000},
	}, plan.Categories)

	assert.Equal(t, []InstructorLoad{
		{InstructorID: 55, Name: "김강사", Sessions: 2, Minutes: 120},
		{InstructorID: 56, Name: "최강사", Sessions: 1, Minutes: 90},
	}, plan.Instructors)

	assert.Equal(t, []ExpenseTotal{
		{Category: domain.ExpenseInstructor, Amount: 400000},
		{Category: domain.ExpenseMeal, Amount: 200000},
	}, plan.Expenses)

	assert.Equal(t, int64(800000), plan.Revenue)
	assert.Equal(t, int64(600000), plan.TotalExpense)
	assert.Equal(t, int64(200000), plan.Balance)
}

func TestBuildImplementationPlanEmpty(t *testing.T) {
	plan := BuildImplementationPlan(&domain.Reservation{ID: 9}, nil, nil, References{})

	assert.Empty(t, plan.Days)
	assert.NotNil(t, plan.Days)
	assert.Zero(t, plan.Balance)
}

func TestSummarize(t *testing.T) {
	r, programs, expenses, refs := fixture()
	a := BuildImplementationPlan(r, programs, expenses, refs)
	b := BuildImplementationPlan(&domain.Reservation{ID: 2, ParticipantCount: 5}, programs[:1], nil, refs)

	s := Summarize([]*ImplementationPlan{a, b})

	assert.Equal(t, 2, s.Reservations)
	assert.Equal(t, int64(25), s.Participants)
	assert.Equal(t, 5, s.Programs)
	assert.Equal(t, int64(1100000), s.Revenue)
	assert.Equal(t, int64(600000), s.TotalExpense)
	assert.Equal(t, int64(500000), s.Balance)

	assert.NotNil(t, Summarize(nil).Plans)
}
