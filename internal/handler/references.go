package handler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

// pgerrcode 의 foreign_key_violation, unique_violation
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

func (h *Handler) referenceWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation:
		h.errorResponse(w, r, "프로그램에서 사용 중이라 삭제할 수 없습니다")
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		h.errorResponse(w, r, "이미 같은 이름이 있습니다")
	default:
		h.internalServerError(w, r, err)
	}
}

type staffRequest struct {
	Name      string `json:"name" validate:"required,max=50"`
	Phone     string `json:"phone" validate:"max=30"`
	Specialty string `json:"specialty" validate:"max=100"`
}

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	kind := r.Context().Value(StaffKindCtx).(domain.StaffKind)

	staff, err := h.repository.GetAllStaff(kind)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "인력 목록 조회 성공", staff)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(StaffCtx).(*domain.Staff)
	h.successResponse(w, r, "인력 조회 성공", s)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	kind := r.Context().Value(StaffKindCtx).(domain.StaffKind)

	var req staffRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	s := &domain.Staff{
		Kind:      kind,
		Name:      req.Name,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}
	if err := h.repository.CreateStaff(s); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}
	h.invalidateRoster()

	h.successResponse(w, r, "인력을 등록했습니다", s)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(StaffCtx).(*domain.Staff)

	var req staffRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	s.Name = req.Name
	s.Phone = req.Phone
	s.Specialty = req.Specialty

	if err := h.repository.UpdateStaff(s); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}
	h.invalidateRoster()

	h.successResponse(w, r, "인력 정보를 수정했습니다", s)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	s := r.Context().Value(StaffCtx).(*domain.Staff)

	if err := h.repository.DeleteStaff(s.Kind, s.ID); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}
	h.invalidateRoster()

	h.successResponse(w, r, "인력을 삭제했습니다", nil)
}

type locationRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Capacity    int32  `json:"capacity" validate:"gte=0"`
	Description string `json:"description"`
}

func (h *Handler) GetAllLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.repository.GetAllLocations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "장소 목록 조회 성공", locations)
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	l := r.Context().Value(LocationCtx).(*domain.Location)
	h.successResponse(w, r, "장소 조회 성공", l)
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	l := &domain.Location{Name: req.Name, Capacity: req.Capacity, Description: req.Description}
	if err := h.repository.CreateLocation(l); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "장소를 등록했습니다", l)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	l := r.Context().Value(LocationCtx).(*domain.Location)

	var req locationRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	l.Name = req.Name
	l.Capacity = req.Capacity
	l.Description = req.Description

	if err := h.repository.UpdateLocation(l); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "장소 정보를 수정했습니다", l)
}

func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	l := r.Context().Value(LocationCtx).(*domain.Location)

	if err := h.repository.DeleteLocation(l.ID); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "장소를 삭제했습니다", nil)
}

type categoryRequest struct {
	Name               string `json:"name" validate:"required,max=50"`
	AllowDoubleBooking bool   `json:"allowDoubleBooking"`
}

func (h *Handler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repository.GetAllCategories()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "카테고리 목록 조회 성공", categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CategoryCtx).(*domain.Category)
	h.successResponse(w, r, "카테고리 조회 성공", c)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c := &domain.Category{Name: req.Name, AllowDoubleBooking: req.AllowDoubleBooking}
	if err := h.repository.CreateCategory(c); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "카테고리를 등록했습니다", c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CategoryCtx).(*domain.Category)

	var req categoryRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c.Name = req.Name
	c.AllowDoubleBooking = req.AllowDoubleBooking

	if err := h.repository.UpdateCategory(c); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "카테고리를 수정했습니다", c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CategoryCtx).(*domain.Category)

	if err := h.repository.DeleteCategory(c.ID); err != nil {
		h.referenceWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "카테고리를 삭제했습니다", nil)
}
