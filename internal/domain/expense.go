package domain

import "time"

type ExpenseCategory string

const (
	ExpenseInstructor ExpenseCategory = "강사비"
	ExpenseMaterial   ExpenseCategory = "재료비"
	ExpenseMeal       ExpenseCategory = "식비"
	ExpenseOther      ExpenseCategory = "기타"
)

type Expense struct {
	ID            int64           `json:"id"`
	ReservationID int64           `json:"reservationID"`
	Category      ExpenseCategory `json:"category"`
	ItemName      string          `json:"itemName"`
	Quantity      int32           `json:"quantity"`
	UnitPrice     int64           `json:"unitPrice"`
	Amount        int64           `json:"amount"`
	ExpenseDate   string          `json:"expenseDate"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"createdAt"`
	Version       int32           `json:"-"`
}
