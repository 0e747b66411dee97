package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healing-forest/reservation/backend/internal/config"
	"github.com/healing-forest/reservation/backend/internal/conflict"
	"github.com/healing-forest/reservation/backend/internal/domain"
	"github.com/healing-forest/reservation/backend/internal/repository"
)

const testSecret = "test-secret"

var programColumnNames = []string{
	"id", "reservation_id", "category_id", "program_name", "date", "start_time", "end_time",
	"place_id", "instructor_id", "assistant_id", "helper_id", "participants", "price", "memo",
	"created_at", "version",
}

var reservationColumnNames = []string{
	"id", "group_name", "customer_name", "contact_phone", "email", "start_date", "end_date",
	"participant_count", "status", "memo", "created_at", "version",
}

var staffColumnNames = []string{"id", "name", "phone", "specialty", "created_at"}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{Timezone: "UTC"}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5
	cfg.JWT.Secret = testSecret
	cfg.Conflict.CheckExternal = true

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, mock
}

func authCookie(t *testing.T, userID int64, role domain.Role) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   strconv.FormatInt(userID, 10),
		},
	})
	ss, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return &http.Cookie{Name: tokenCookieName, Value: ss}
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, h *Handler, method, path, body string) testResponse {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.AddCookie(authCookie(t, 1, domain.RoleStaff))
	rec := httptest.NewRecorder()

	h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// expectGroupTwoLookups 는 예약 2 를 불러오고, 같은 날 예약 1 의 강사 55 프로그램(09:00~10:00)을 돌려주도록 설정한다.
func expectGroupTwoLookups(mock sqlmock.Sqlmock) {
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(reservationColumnNames).
			AddRow(2, "햇살가족모임", "이영희", "010-2222-3333", "", "2024-06-01", "2024-06-02", 12, "확정", "", now, 1))

	mock.ExpectQuery(regexp.QuoteMeta("FROM programs p WHERE p.reservation_id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(programColumnNames))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.date = $1 AND p.reservation_id <> $2")).
		WithArgs("2024-06-01", 2, string(domain.ReservationCancelled)).
		WillReturnRows(sqlmock.NewRows(programColumnNames).
			AddRow(10, 1, nil, "숲 명상", "2024-06-01", "09:00", "10:00", nil, int64(55), nil, nil, 20, 0, "", now, 1))

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN reservations rv")).
		WithArgs("2024-06-01", string(domain.ReservationCancelled)).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, programColumnNames...), "group_name", "customer_name", "status")).
			AddRow(10, 1, nil, "숲 명상", "2024-06-01", "09:00", "10:00", nil, int64(55), nil, nil, 20, 0, "", now, 1, "숲속명상회", "홍길동", "확정"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM instructors")).
		WillReturnRows(sqlmock.NewRows(staffColumnNames).AddRow(55, "김강사", "", "", now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM assistants")).
		WillReturnRows(sqlmock.NewRows(staffColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("FROM helpers")).
		WillReturnRows(sqlmock.NewRows(staffColumnNames))
}

const candidateBody = `{
	"programName": "요가",
	"date": "2024-06-01",
	"startTime": "09:30",
	"endTime": "10:30",
	"instructorID": 55
}`

func TestCheckProgramConflictsReportsGlobalInstructor(t *testing.T) {
	h, mock := newTestHandler(t)
	expectGroupTwoLookups(mock)

	resp := serve(t, h, http.MethodPost, "/reservations/2/programs/check-conflicts", candidateBody)

	require.True(t, resp.Success, resp.Message)
	assert.Contains(t, resp.Message, "김강사")
	assert.Contains(t, resp.Message, "숲속명상회")

	var report struct {
		LocationConflict bool `json:"locationConflict"`
		Personnel        struct {
			HasConflict     bool   `json:"hasConflict"`
			ConflictType    string `json:"conflictType"`
			ConflictName    string `json:"conflictName"`
			IsGlobal        bool   `json:"isGlobal"`
			ReservationInfo struct {
				GroupName         string `json:"group_name"`
				CustomerName      string `json:"customer_name"`
				ReservationStatus string `json:"reservation_status"`
			} `json:"reservationInfo"`
		} `json:"personnel"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &report))

	assert.False(t, report.LocationConflict)
	assert.True(t, report.Personnel.HasConflict)
	assert.Equal(t, "instructor", report.Personnel.ConflictType)
	assert.Equal(t, "김강사", report.Personnel.ConflictName)
	assert.True(t, report.Personnel.IsGlobal)
	assert.Equal(t, "숲속명상회", report.Personnel.ReservationInfo.GroupName)
	assert.Equal(t, "홍길동", report.Personnel.ReservationInfo.CustomerName)
	assert.Equal(t, "확정", report.Personnel.ReservationInfo.ReservationStatus)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProgramRefusesConflictWithoutForce(t *testing.T) {
	h, mock := newTestHandler(t)
	expectGroupTwoLookups(mock)

	resp := serve(t, h, http.MethodPost, "/reservations/2/programs", candidateBody)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "김강사")
	assert.NotEqual(t, "null", string(resp.Data))

	// INSERT 가 실행되지 않아야 한다
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProgramWithForceSaves(t *testing.T) {
	h, mock := newTestHandler(t)
	expectGroupTwoLookups(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO programs")).
		WithArgs(2, nil, "요가", "2024-06-01", "09:30", "10:30", nil, 55, nil, nil, 0, 0, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(11, time.Now(), 1))

	body := strings.Replace(candidateBody, `"instructorID": 55`, `"instructorID": 55, "force": true`, 1)
	resp := serve(t, h, http.MethodPost, "/reservations/2/programs", body)

	require.True(t, resp.Success, resp.Message)

	var p domain.Program
	require.NoError(t, json.Unmarshal(resp.Data, &p))
	assert.Equal(t, int64(11), p.ID)
	assert.Equal(t, int64(2), p.ReservationID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProgramOutsideReservationPeriod(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(reservationColumnNames).
			AddRow(2, "햇살가족모임", "이영희", "", "", "2024-06-01", "2024-06-02", 12, "가예약", "", time.Now(), 1))

	body := strings.Replace(candidateBody, "2024-06-01", "2024-06-05", 1)
	resp := serve(t, h, http.MethodPost, "/reservations/2/programs", body)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "예약 기간")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramsRequireLogin(t *testing.T) {
	h, mock := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/programs?date=2024-06-01", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "로그인이 필요합니다", resp.Message)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConflictMessage(t *testing.T) {
	assert.Equal(t, "충돌이 없습니다", conflictMessage(conflictReport(false, false, false)))
	assert.Equal(t, "같은 시간에 이미 사용 중인 장소입니다", conflictMessage(conflictReport(true, false, false)))
	assert.Contains(t, conflictMessage(conflictReport(true, true, false)), "이 단체의 다른 프로그램")
	assert.Contains(t, conflictMessage(conflictReport(false, true, true)), "다른 단체(숲속명상회)")
}

func conflictReport(location, personnel, global bool) conflict.Report {
	r := conflict.Report{LocationConflict: location}
	if personnel {
		r.Personnel = conflict.PersonnelConflict{
			HasConflict:  true,
			ConflictType: conflict.RoleInstructor,
			ConflictName: "김강사",
			IsGlobal:     global,
		}
		if global {
			r.Personnel.ReservationInfo = &conflict.ReservationInfo{GroupName: "숲속명상회"}
		}
	}
	return r
}
