package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/utils"
)

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupName        string `json:"groupName" validate:"required,max=100"`
		CustomerName     string `json:"customerName" validate:"required,max=50"`
		ContactPhone     string `json:"contactPhone" validate:"max=30"`
		Email            string `json:"email" validate:"omitempty,email"`
		StartDate        string `json:"startDate" validate:"required"`
		EndDate          string `json:"endDate" validate:"required"`
		ParticipantCount int32  `json:"participantCount" validate:"required,min=1"`
		Status           string `json:"status" validate:"omitempty,oneof=가예약 확정 취소"`
		Memo             string `json:"memo"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rsv := &domain.Reservation{
		GroupName:        req.GroupName,
		CustomerName:     req.CustomerName,
		ContactPhone:     req.ContactPhone,
		Email:            req.Email,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ParticipantCount: req.ParticipantCount,
		Status:           domain.ReservationStatus(req.Status),
		Memo:             req.Memo,
	}
	if rsv.Status == "" {
		rsv.Status = domain.ReservationTentative
	}

	if err := utils.ValidateReservationPeriod(rsv); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateReservation(rsv); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if rsv.Status == domain.ReservationConfirmed {
		h.notifyReservationConfirmed(rsv)
	}

	h.successResponse(w, r, "예약을 등록했습니다", rsv)
}

func (h *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.ReservationFilter{
		Status: domain.ReservationStatus(query.Get("status")),
		From:   query.Get("from"),
		To:     query.Get("to"),
	}

	if err := h.validate.Var(string(filter.Status), "omitempty,oneof=가예약 확정 취소"); err != nil {
		h.errorResponse(w, r, "예약 상태가 올바르지 않습니다")
		return
	}
	if filter.From != "" {
		if err := utils.ValidateDate("조회 시작일", filter.From); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}
	if filter.To != "" {
		if err := utils.ValidateDate("조회 종료일", filter.To); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	reservations, err := h.repository.GetReservations(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "예약 목록 조회 성공", reservations)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)
	h.successResponse(w, r, "예약 조회 성공", rsv)
}

func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupName        *string `json:"groupName" validate:"omitempty,max=100"`
		CustomerName     *string `json:"customerName" validate:"omitempty,max=50"`
		ContactPhone     *string `json:"contactPhone" validate:"omitempty,max=30"`
		Email            *string `json:"email" validate:"omitempty,email"`
		StartDate        *string `json:"startDate"`
		EndDate          *string `json:"endDate"`
		ParticipantCount *int32  `json:"participantCount" validate:"omitempty,min=1"`
		Status           *string `json:"status" validate:"omitempty,oneof=가예약 확정 취소"`
		Memo             *string `json:"memo"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)
	previousStatus := rsv.Status

	if req.GroupName != nil {
		rsv.GroupName = *req.GroupName
	}
	if req.CustomerName != nil {
		rsv.CustomerName = *req.CustomerName
	}
	if req.ContactPhone != nil {
		rsv.ContactPhone = *req.ContactPhone
	}
	if req.Email != nil {
		rsv.Email = *req.Email
	}
	if req.StartDate != nil {
		rsv.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		rsv.EndDate = *req.EndDate
	}
	if req.ParticipantCount != nil {
		rsv.ParticipantCount = *req.ParticipantCount
	}
	if req.Status != nil {
		rsv.Status = domain.ReservationStatus(*req.Status)
	}
	if req.Memo != nil {
		rsv.Memo = *req.Memo
	}

	if err := utils.ValidateReservationPeriod(rsv); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateReservation(rsv); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "다른 사용자가 먼저 수정했습니다. 다시 시도해 주세요")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if previousStatus != domain.ReservationConfirmed && rsv.Status == domain.ReservationConfirmed {
		h.notifyReservationConfirmed(rsv)
	}

	h.successResponse(w, r, "예약을 수정했습니다", rsv)
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	if err := h.repository.DeleteReservation(rsv.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "예약을 삭제했습니다", nil)
}

// notifyReservationConfirmed 는 예약이 이미 저장된 뒤에 호출되므로 발송 실패를 응답에 반영하지 않는다.
func (h *Handler) notifyReservationConfirmed(rsv *domain.Reservation) {
	if rsv.Email == "" {
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailReservationConfirmed,
		To:   rsv.Email,
		Data: domain.ReservationConfirmedMailData{
			CustomerName:     rsv.CustomerName,
			GroupName:        rsv.GroupName,
			StartDate:        rsv.StartDate,
			EndDate:          rsv.EndDate,
			ParticipantCount: rsv.ParticipantCount,
		},
	}); err != nil {
		slog.Error("예약 확정 메일 발송 요청 실패", "reservation", rsv.ID, "error", err)
	}
}
