package domain

import "time"

// StaffKind 는 강사, 보조강사, 헬퍼 중 어느 명단인지를 나타낸다.
type StaffKind string

const (
	StaffInstructor StaffKind = "instructors"
	StaffAssistant  StaffKind = "assistants"
	StaffHelper     StaffKind = "helpers"
)

type Staff struct {
	ID        int64     `json:"id"`
	Kind      StaffKind `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Capacity    int32     `json:"capacity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Category struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	AllowDoubleBooking bool      `json:"allowDoubleBooking"` // 행사형 프로그램은 장소 중복을 허용한다
	CreatedAt          time.Time `json:"createdAt"`
}
