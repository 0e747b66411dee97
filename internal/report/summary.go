package report

// PeriodSummary 는 기간 내 여러 예약의 실행 계획서를 합산한 것이다.
type PeriodSummary struct {
	Reservations int                   `json:"reservations"`
	Participants int64                 `json:"participants"`
	Programs     int                   `json:"programs"`
	Revenue      int64                 `json:"revenue"`
	TotalExpense int64                 `json:"totalExpense"`
	Balance      int64                 `json:"balance"`
	Plans        []*ImplementationPlan `json:"plans"`
}

func Summarize(plans []*ImplementationPlan) *PeriodSummary {
	s := &PeriodSummary{
		Reservations: len(plans),
		Plans:        plans,
	}
	if s.Plans == nil {
		s.Plans = make([]*ImplementationPlan, 0)
	}

	for _, plan := range plans {
		if plan.Reservation != nil {
			s.Participants += int64(plan.Reservation.ParticipantCount)
		}
		for _, day := range plan.Days {
			s.Programs += len(day.Programs)
		}
		s.Revenue += plan.Revenue
		s.TotalExpense += plan.TotalExpense
	}
	s.Balance = s.Revenue - s.TotalExpense

	return s
}
