package domain

import "time"

// Program 은 예약에 속한 프로그램 일정(Page2) 한 건이다.
//
// Date 는 YYYY-MM-DD, StartTime/EndTime 은 HH:MM 형식이다.
// 장소와 인력 필드가 nil 이면 배정되지 않은 것이다.
type Program struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservationID"`
	CategoryID    *int64    `json:"categoryID"`
	ProgramName   string    `json:"programName"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	PlaceID       *int64    `json:"placeID"`
	InstructorID  *int64    `json:"instructorID"`
	AssistantID   *int64    `json:"assistantID"`
	HelperID      *int64    `json:"helperID"`
	Participants  int32     `json:"participants"`
	Price         int64     `json:"price"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}

// ProgramWithReservation 은 전체 단체의 프로그램을 조회할 때 소속 예약 정보를 함께 담는다.
// Reservation 이 nil 이면 소속 예약 정보를 찾을 수 없는 경우이다.
type ProgramWithReservation struct {
	Program
	Reservation *ReservationSummary `json:"reservation"`
}
