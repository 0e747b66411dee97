package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
)

const DateLayout = "2006-01-02"

func ValidateDate(field, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%s 형식이 올바르지 않습니다 (YYYY-MM-DD)", field)
	}
	return nil
}

func ValidateReservationPeriod(r *domain.Reservation) error {
	if err := ValidateDate("시작일", r.StartDate); err != nil {
		return err
	}
	if err := ValidateDate("종료일", r.EndDate); err != nil {
		return err
	}

	// 같은 형식이므로 문자열 비교로 충분하다
	if r.EndDate < r.StartDate {
		return errors.New("종료일은 시작일보다 빠를 수 없습니다")
	}

	return nil
}

// ValidateProgramTime 은 날짜와 시각 형식, 그리고 종료 시각이 시작 시각보다 늦은지 확인한다.
// 자정을 넘기는 프로그램은 허용하지 않는다.
func ValidateProgramTime(p *domain.Program) error {
	if err := ValidateDate("프로그램 날짜", p.Date); err != nil {
		return err
	}

	start, ok := conflict.ParseClock(p.StartTime)
	if !ok {
		return errors.New("시작 시각 형식이 올바르지 않습니다 (HH:MM)")
	}
	end, ok := conflict.ParseClock(p.EndTime)
	if !ok {
		return errors.New("종료 시각 형식이 올바르지 않습니다 (HH:MM)")
	}
	if end <= start {
		return errors.New("종료 시각은 시작 시각보다 늦어야 합니다")
	}

	return nil
}

// ValidateProgramInReservation 은 프로그램 날짜가 예약 기간 안에 있는지 확인한다.
func ValidateProgramInReservation(p *domain.Program, r *domain.Reservation) error {
	if p.Date < r.StartDate || p.Date > r.EndDate {
		return fmt.Errorf("프로그램 날짜는 예약 기간(%s ~ %s) 안에 있어야 합니다", r.StartDate, r.EndDate)
	}
	return nil
}

// FillExpenseAmount 는 금액이 비어 있으면 수량 × 단가로 채운다.
func FillExpenseAmount(e *domain.Expense) error {
	if e.Amount == 0 {
		e.Amount = int64(e.Quantity) * e.UnitPrice
	}
	if e.Amount < 0 {
		return errors.New("금액은 음수일 수 없습니다")
	}
	return nil
}
