package domain

import "time"

type ReservationStatus string

const (
	ReservationTentative ReservationStatus = "가예약"
	ReservationConfirmed ReservationStatus = "확정"
	ReservationCancelled ReservationStatus = "취소"
)

// Reservation 은 단체 예약(Page1) 한 건을 나타낸다.
// StartDate, EndDate 는 YYYY-MM-DD 형식이다.
type Reservation struct {
	ID               int64             `json:"id"`
	GroupName        string            `json:"groupName"`
	CustomerName     string            `json:"customerName"`
	ContactPhone     string            `json:"contactPhone"`
	Email            string            `json:"email"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	ParticipantCount int32             `json:"participantCount"`
	Status           ReservationStatus `json:"status"`
	Memo             string            `json:"memo"`
	CreatedAt        time.Time         `json:"createdAt"`
	Version          int32             `json:"-"`
}

// ReservationSummary 는 다른 단체의 프로그램과 충돌했을 때 보여줄 예약 정보이다.
type ReservationSummary struct {
	GroupName         string            `json:"groupName"`
	CustomerName      string            `json:"customerName"`
	ReservationStatus ReservationStatus `json:"reservationStatus"`
}

type ReservationFilter struct {
	Status ReservationStatus
	From   string
	To     string
}
