package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/utils"
)

type programRequest struct {
	CategoryID   *int64 `json:"categoryID"`
	ProgramName  string `json:"programName" validate:"required,max=100"`
	Date         string `json:"date" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	PlaceID      *int64 `json:"placeID"`
	InstructorID *int64 `json:"instructorID"`
	AssistantID  *int64 `json:"assistantID"`
	HelperID     *int64 `json:"helperID"`
	Participants int32  `json:"participants" validate:"gte=0"`
	Price        int64  `json:"price" validate:"gte=0"`
	Memo         string `json:"memo"`

	// 충돌이 있어도 저장한다
	Force bool `json:"force"`
}

func (req *programRequest) apply(p *domain.Program) {
	p.CategoryID = req.CategoryID
	p.ProgramName = req.ProgramName
	p.Date = req.Date
	p.StartTime = req.StartTime
	p.EndTime = req.EndTime
	p.PlaceID = req.PlaceID
	p.InstructorID = req.InstructorID
	p.AssistantID = req.AssistantID
	p.HelperID = req.HelperID
	p.Participants = req.Participants
	p.Price = req.Price
	p.Memo = req.Memo
}

var roleLabels = map[conflict.Role]string{
	conflict.RoleInstructor: "강사",
	conflict.RoleAssistant:  "보조강사",
	conflict.RoleHelper:     "헬퍼",
}

func conflictMessage(report conflict.Report) string {
	pc := report.Personnel
	switch {
	case pc.HasConflict && pc.IsGlobal:
		return fmt.Sprintf("%s %s 님이 같은 시간에 다른 단체(%s) 프로그램에 배정되어 있습니다",
			roleLabels[pc.ConflictType], pc.ConflictName, pc.ReservationInfo.GroupName)
	case pc.HasConflict:
		return fmt.Sprintf("%s %s 님이 같은 시간에 이 단체의 다른 프로그램에 배정되어 있습니다",
			roleLabels[pc.ConflictType], pc.ConflictName)
	case report.LocationConflict:
		return "같은 시간에 이미 사용 중인 장소입니다"
	}
	return "충돌이 없습니다"
}

// checkConflicts 는 후보 프로그램을 같은 예약, 다른 예약, 전체 예약의 같은 날짜 프로그램과 비교한다.
func (h *Handler) checkConflicts(ctx context.Context, rsv *domain.Reservation, candidate *domain.Program, editingID int64) (conflict.Report, error) {
	in := conflict.Input{
		Candidate: candidate,
		EditingID: editingID,
	}

	if candidate.CategoryID != nil {
		c, err := h.repository.GetCategoryByID(*candidate.CategoryID)
		if err != nil {
			return conflict.Report{}, err
		}
		in.SkipLocation = c.AllowDoubleBooking
	}

	local, err := h.repository.GetProgramsByReservationID(rsv.ID)
	if err != nil {
		return conflict.Report{}, err
	}
	in.Local = local

	if h.config.Conflict.CheckExternal {
		external, err := h.repository.GetOtherProgramsOnDate(candidate.Date, rsv.ID)
		if err != nil {
			return conflict.Report{}, err
		}
		in.External = external
	}

	global, err := h.repository.GetProgramsWithReservationOnDate(candidate.Date)
	if err != nil {
		return conflict.Report{}, err
	}
	in.Global = global

	roster, err := h.loadRoster(ctx)
	if err != nil {
		return conflict.Report{}, err
	}

	return conflict.Check(in, roster), nil
}

func (h *Handler) validateProgram(p *domain.Program, rsv *domain.Reservation) error {
	if err := utils.ValidateProgramTime(p); err != nil {
		return err
	}
	return utils.ValidateProgramInReservation(p, rsv)
}

func (h *Handler) programWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "다른 사용자가 먼저 수정했습니다. 다시 시도해 주세요")
	case errors.As(err, &pgErr):
		switch pgErr.ConstraintName {
		case "programs_category_id_fkey":
			h.errorResponse(w, r, "카테고리가 존재하지 않습니다")
		case "programs_place_id_fkey":
			h.errorResponse(w, r, "장소가 존재하지 않습니다")
		case "programs_instructor_id_fkey":
			h.errorResponse(w, r, "강사가 존재하지 않습니다")
		case "programs_assistant_id_fkey":
			h.errorResponse(w, r, "보조강사가 존재하지 않습니다")
		case "programs_helper_id_fkey":
			h.errorResponse(w, r, "헬퍼가 존재하지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) GetReservationPrograms(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	programs, err := h.repository.GetProgramsByReservationID(rsv.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "프로그램 목록 조회 성공", programs)
}

func (h *Handler) GetProgram(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ProgramCtx).(*domain.Program)
	h.successResponse(w, r, "프로그램 조회 성공", p)
}

func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	var req programRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p := &domain.Program{ReservationID: rsv.ID}
	req.apply(p)

	if err := h.validateProgram(p, rsv); err != nil {
		h.badRequest(w, r, err)
		return
	}

	report, err := h.checkConflicts(r.Context(), rsv, p, 0)
	if err != nil {
		h.lookupError(w, r, err)
		return
	}
	if report.HasConflict() && !req.Force {
		h.conflictResponse(w, r, conflictMessage(report), report)
		return
	}

	if err := h.repository.CreateProgram(p); err != nil {
		h.programWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "프로그램을 등록했습니다", p)
}

func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)
	p := r.Context().Value(ProgramCtx).(*domain.Program)

	var req programRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req.apply(p)

	if err := h.validateProgram(p, rsv); err != nil {
		h.badRequest(w, r, err)
		return
	}

	report, err := h.checkConflicts(r.Context(), rsv, p, p.ID)
	if err != nil {
		h.lookupError(w, r, err)
		return
	}
	if report.HasConflict() && !req.Force {
		h.conflictResponse(w, r, conflictMessage(report), report)
		return
	}

	if err := h.repository.UpdateProgram(p); err != nil {
		h.programWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "프로그램을 수정했습니다", p)
}

func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	p := r.Context().Value(ProgramCtx).(*domain.Program)

	if err := h.repository.DeleteProgram(p.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "프로그램을 삭제했습니다", nil)
}

// CheckProgramConflicts 는 저장하지 않고 충돌 검사 결과만 돌려준다.
func (h *Handler) CheckProgramConflicts(w http.ResponseWriter, r *http.Request) {
	rsv := r.Context().Value(ReservationCtx).(*domain.Reservation)

	var req struct {
		programRequest
		EditingID int64 `json:"editingID" validate:"gte=0"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p := &domain.Program{ID: req.EditingID, ReservationID: rsv.ID}
	req.apply(p)

	if err := h.validateProgram(p, rsv); err != nil {
		h.badRequest(w, r, err)
		return
	}

	report, err := h.checkConflicts(r.Context(), rsv, p, req.EditingID)
	if err != nil {
		h.lookupError(w, r, err)
		return
	}

	h.successResponse(w, r, conflictMessage(report), report)
}

// GetProgramsOnDate 는 날짜가 없으면 오늘 프로그램을 돌려준다.
func (h *Handler) GetProgramsOnDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().In(h.location).Format(utils.DateLayout)
	}
	if err := utils.ValidateDate("날짜", date); err != nil {
		h.badRequest(w, r, err)
		return
	}

	programs, err := h.repository.GetProgramsWithReservationOnDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "프로그램 목록 조회 성공", programs)
}

// lookupError 는 충돌 검사 중 참조한 카테고리가 없을 때를 구분한다.
func (h *Handler) lookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "카테고리가 존재하지 않습니다")
	default:
		h.internalServerError(w, r, err)
	}
}
