package handler

import (
	"context"
	"net/http"

	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/report"
	"github.com/healing-forest/reservation/backend/internal/utils"
)

func (h *Handler) loadReferences(ctx context.Context) (report.References, error) {
	categories, err := h.repository.GetAllCategories()
	if err != nil {
		return report.References{}, err
	}
	locations, err := h.repository.GetAllLocations()
	if err != nil {
		return report.References{}, err
	}
	roster, err := h.loadRoster(ctx)
	if err != nil {
		return report.References{}, err
	}

	return report.NewReferences(categories, locations, roster), nil
}

func (h *Handler) buildPlan(rsv *domain.Reservation, refs report.References) (*report.ImplementationPlan, error) {
	programs, err := h.repository.GetProgramsByReservationID(rsv.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := h.repository.GetExpensesByReservationID(rsv.ID)
	if err != nil {
		return nil, err
	}

	return report.BuildImplementationPlan(rsv, programs, expenses, refs), nil
}

func (h *Handler) GetImplementationPlan(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	refs, err := h.loadReferences(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := h.buildPlan(rsv, refs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "실행 계획서 조회 성공", plan)
}

// GetPeriodReport 는 시작일이 기간 안에 있는 취소되지 않은 예약의 실행 계획서를 합산한다.
func (h *Handler) GetPeriodReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")

	if err := utils.ValidateDate("조회 시작일", from); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateDate("조회 종료일", to); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if to < from {
		h.errorResponse(w, r, "조회 종료일은 시작일보다 빠를 수 없습니다")
		return
	}

	reservations, err := h.repository.GetReservations(domain.ReservationFilter{From: from, To: to})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	refs, err := h.loadReferences(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plans := make([]*report.ImplementationPlan, 0, len(reservations))
	for _, rsv := range reservations {
		if rsv.Status == domain.ReservationCancelled {
			continue
		}
		plan, err := h.buildPlan(rsv, refs)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		plans = append(plans, plan)
	}

	h.successResponse(w, r, "기간별 실행 계획서 조회 성공", report.Summarize(plans))
}
