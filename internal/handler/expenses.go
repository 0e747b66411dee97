package handler

import (
	"database/sql"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/utils"
)

func (h *Handler) GetReservationExpenses(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	expenses, err := h.repository.GetExpensesByReservationID(rsv.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출 내역 조회 성공", expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	var req struct {
		Category    string `json:"category" validate:"required,oneof=강사비 재료비 식비 기타"`
		ItemName    string `json:"itemName" validate:"required,max=100"`
		Quantity    int32  `json:"quantity" validate:"gte=0"`
		UnitPrice   int64  `json:"unitPrice" validate:"gte=0"`
		Amount      int64  `json:"amount" validate:"gte=0"`
		ExpenseDate string `json:"expenseDate" validate:"required"`
		Note        string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	e := &domain.Expense{
		ReservationID: rsv.ID,
		Category:      domain.ExpenseCategory(req.Category),
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Amount:        req.Amount,
		ExpenseDate:   req.ExpenseDate,
		Note:          req.Note,
	}

	if err := utils.ValidateDate("지출일", e.ExpenseDate); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.FillExpenseAmount(e); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateExpense(e); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출 내역을 등록했습니다", e)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    *string `json:"category" validate:"omitempty,oneof=강사비 재료비 식비 기타"`
		ItemName    *string `json:"itemName" validate:"omitempty,max=100"`
		Quantity    *int32  `json:"quantity" validate:"omitempty,gte=0"`
		UnitPrice   *int64  `json:"unitPrice" validate:"omitempty,gte=0"`
		Amount      *int64  `json:"amount" validate:"omitempty,gte=0"`
		ExpenseDate *string `json:"expenseDate"`
		Note        *string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	e := r.Context().Value(ExpenseCtx).(*domain.Expense)

	if req.Category != nil {
		e.Category = domain.ExpenseCategory(*req.Category)
	}
	if req.ItemName != nil {
		e.ItemName = *req.ItemName
	}
	if req.Quantity != nil {
		e.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		e.UnitPrice = *req.UnitPrice
	}
	if req.ExpenseDate != nil {
		e.ExpenseDate = *req.ExpenseDate
	}
	if req.Note != nil {
		e.Note = *req.Note
	}

	switch {
	case req.Amount != nil:
		e.Amount = *req.Amount
	case req.Quantity != nil || req.UnitPrice != nil:
		// 금액을 따로 주지 않았으면 다시 계산한다
		e.Amount = 0
	}

	if err := utils.ValidateDate("지출일", e.ExpenseDate); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.FillExpenseAmount(e); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateExpense(e); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "다른 사용자가 먼저 수정했습니다. 다시 시도해 주세요")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "지출 내역을 수정했습니다", e)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	e := r.Context().Value(ExpenseCtx).(*domain.Expense)

	if err := h.repository.DeleteExpense(e.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "지출 내역을 삭제했습니다", nil)
}
