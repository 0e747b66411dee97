package report

import (
	"sort"

	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
)

const Unassigned = "미지정"

type ProgramLine struct {
	*domain.Program
	CategoryName    string `json:"categoryName"`
	PlaceName       string `json:"placeName"`
	InstructorName  string `json:"instructorName"`
	AssistantName   string `json:"assistantName"`
	HelperName      string `json:"helperName"`
	DurationMinutes int    `json:"durationMinutes"`
}

type DayPlan struct {
	Date     string        `json:"date"`
	Programs []ProgramLine `json:"programs"`
}

type CategoryTotal struct {
	CategoryName string `json:"categoryName"`
	Count        int    `json:"count"`
	Minutes      int    `json:"minutes"`
	Price        int64  `json:"price"`
}

type InstructorLoad struct {
	InstructorID int64  `json:"instructorID"`
	Name         string `json:"name"`
	Sessions     int    `json:"sessions"`
	Minutes      int    `json:"minutes"`
}

type ExpenseTotal struct {
	Category domain.ExpenseCategory `json:"category"`
	Amount   int64                  `json:"amount"`
}

// ImplementationPlan 은 예약 한 건의 실행 계획서(Page6)이다.
type ImplementationPlan struct {
	Reservation  *domain.Reservation `json:"reservation"`
	Days         []DayPlan           `json:"days"`
	Categories   []CategoryTotal     `json:"categories"`
	Instructors  []InstructorLoad    `json:"instructors"`
	Expenses     []ExpenseTotal      `json:"expenses"`
	TotalExpense int64               `json:"totalExpense"`
	Revenue      int64               `json:"revenue"`
	Balance      int64               `json:"balance"`
}

// References 는 ID 를 이름으로 바꾸는 데 쓰는 기준 정보이다.
type References struct {
	Categories map[int64]string
	Locations  map[int64]string
	Staff      conflict.NameResolver
}

func NewReferences(categories []*domain.Category, locations []*domain.Location, staff conflict.NameResolver) References {
	refs := References{
		Categories: make(map[int64]string, len(categories)),
		Locations:  make(map[int64]string, len(locations)),
		Staff:      staff,
	}
	for _, c := range categories {
		refs.Categories[c.ID] = c.Name
	}
	for _, l := range locations {
		refs.Locations[l.ID] = l.Name
	}
	return refs
}

var expenseOrder = []domain.ExpenseCategory{
	domain.ExpenseInstructor,
	domain.ExpenseMaterial,
	domain.ExpenseMeal,
	domain.ExpenseOther,
}

// BuildImplementationPlan 은 프로그램을 날짜별로 묶고 카테고리, 강사, 지출 합계를 계산한다.
// 입력 목록은 변경하지 않는다.
func BuildImplementationPlan(r *domain.Reservation, programs []*domain.Program, expenses []*domain.Expense, refs References) *ImplementationPlan {
	plan := &ImplementationPlan{
		Reservation: r,
		Days:        make([]DayPlan, 0),
		Categories:  make([]CategoryTotal, 0),
		Instructors: make([]InstructorLoad, 0),
		Expenses:    make([]ExpenseTotal, 0),
	}

	daysMap := make(map[string][]ProgramLine)
	categoriesMap := make(map[string]*CategoryTotal)
	instructorsMap := make(map[int64]*InstructorLoad)

	for _, p := range programs {
		line := refs.line(p)
		daysMap[p.Date] = append(daysMap[p.Date], line)

		ct, exists := categoriesMap[line.CategoryName]
		if !exists {
			ct = &CategoryTotal{CategoryName: line.CategoryName}
			categoriesMap[line.CategoryName] = ct
		}
		ct.Count++
		ct.Minutes += line.DurationMinutes
		ct.Price += p.Price

		if p.InstructorID != nil {
			il, exists := instructorsMap[*p.InstructorID]
			if !exists {
				il = &InstructorLoad{InstructorID: *p.InstructorID, Name: line.InstructorName}
				instructorsMap[*p.InstructorID] = il
			}
			il.Sessions++
			il.Minutes += line.DurationMinutes
		}

		plan.Revenue += p.Price
	}

	for date, lines := range daysMap {
		sort.SliceStable(lines, func(i, j int) bool {
			return startMinutes(lines[i].Program) < startMinutes(lines[j].Program)
		})
		plan.Days = append(plan.Days, DayPlan{Date: date, Programs: lines})
	}
	sort.Slice(plan.Days, func(i, j int) bool {
		return plan.Days[i].Date < plan.Days[j].Date
	})

	for _, ct := range categoriesMap {
		plan.Categories = append(plan.Categories, *ct)
	}
	sort.Slice(plan.Categories, func(i, j int) bool {
		return plan.Categories[i].CategoryName < plan.Categories[j].CategoryName
	})

	for _, il := range instructorsMap {
		plan.Instructors = append(plan.Instructors, *il)
	}
	sort.Slice(plan.Instructors, func(i, j int) bool {
		if plan.Instructors[i].Sessions != plan.Instructors[j].Sessions {
			return plan.Instructors[i].Sessions > plan.Instructors[j].Sessions
		}
		return plan.Instructors[i].InstructorID < plan.Instructors[j].InstructorID
	})

	expenseMap := make(map[domain.ExpenseCategory]int64)
	for _, e := range expenses {
		expenseMap[e.Category] += e.Amount
		plan.TotalExpense += e.Amount
	}
	for _, category := range expenseOrder {
		if amount, exists := expenseMap[category]; exists {
			plan.Expenses = append(plan.Expenses, ExpenseTotal{Category: category, Amount: amount})
		}
	}

	plan.Balance = plan.Revenue - plan.TotalExpense

	return plan
}

func (refs References) line(p *domain.Program) ProgramLine {
	line := ProgramLine{
		Program:        p,
		CategoryName:   nameOf(refs.Categories, p.CategoryID),
		PlaceName:      nameOf(refs.Locations, p.PlaceID),
		InstructorName: Unassigned,
		AssistantName:  Unassigned,
		HelperName:     Unassigned,
	}

	if refs.Staff != nil {
		if p.InstructorID != nil {
			line.InstructorName = refs.Staff.InstructorName(*p.InstructorID)
		}
		if p.AssistantID != nil {
			line.AssistantName = refs.Staff.AssistantName(*p.AssistantID)
		}
		if p.HelperID != nil {
			line.HelperName = refs.Staff.HelperName(*p.HelperID)
		}
	}

	start, okStart := conflict.ParseClock(p.StartTime)
	end, okEnd := conflict.ParseClock(p.EndTime)
	if okStart && okEnd && end > start {
		line.DurationMinutes = end - start
	}

	return line
}

func nameOf(m map[int64]string, id *int64) string {
	if id == nil {
		return Unassigned
	}
	if name, ok := m[*id]; ok {
		return name
	}
	return Unassigned
}

func startMinutes(p *domain.Program) int {
	m, ok := conflict.ParseClock(p.StartTime)
	if !ok {
		// 시각이 없는 프로그램은 그날의 맨 뒤로
		return 24 * 60
	}
	return m
}
