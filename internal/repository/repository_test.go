package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healing-forest/reservation/backend/internal/config"
	"github.com/healing-forest/reservation/backend/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5

	return NewRepository(cfg, db), mock
}

var programColumnNames = []string{
	"id", "reservation_id", "category_id", "program_name", "date", "start_time", "end_time",
	"place_id", "instructor_id", "assistant_id", "helper_id", "participants", "price", "memo",
	"created_at", "version",
}

func TestGetProgramsByReservationID(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	rows := sqlmock.NewRows(programColumnNames).
		AddRow(1, 2, int64(3), "숲 명상", "2024-06-01", "10:00", "12:00", int64(101), int64(55), nil, nil, 20, 300000, "", now, 1).
		AddRow(4, 2, nil, "요가", "2024-06-01", "13:00", "14:00", nil, nil, nil, int64(9), 20, 0, "메모", now, 2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM programs p WHERE p.reservation_id = $1")).
		WithArgs(2).
		WillReturnRows(rows)

	programs, err := repo.GetProgramsByReservationID(2)
	require.NoError(t, err)
	require.Len(t, programs, 2)

	first := programs[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "2024-06-01", first.Date)
	assert.Equal(t, "10:00", first.StartTime)
	require.NotNil(t, first.PlaceID)
	assert.Equal(t, int64(101), *first.PlaceID)
	require.NotNil(t, first.InstructorID)
	assert.Equal(t, int64(55), *first.InstructorID)
	assert.Nil(t, first.AssistantID)

	second := programs[1]
	assert.Nil(t, second.CategoryID)
	assert.Nil(t, second.PlaceID)
	require.NotNil(t, second.HelperID)
	assert.Equal(t, int64(9), *second.HelperID)
	assert.Equal(t, int32(2), second.Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOtherProgramsOnDate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.date = $1 AND p.reservation_id <> $2 AND rv.status <> $3")).
		WithArgs("2024-06-01", 2, string(domain.ReservationCancelled)).
		WillReturnRows(sqlmock.NewRows(programColumnNames))

	programs, err := repo.GetOtherProgramsOnDate("2024-06-01", 2)
	require.NoError(t, err)
	assert.Empty(t, programs)
	assert.NotNil(t, programs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProgramsWithReservationOnDate(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	columns := append(append([]string{}, programColumnNames...), "group_name", "customer_name", "status")
	rows := sqlmock.NewRows(columns).
		AddRow(1, 1, nil, "숲 명상", "2024-06-01", "09:00", "10:00", nil, int64(55), nil, nil, 10, 0, "", now, 1, "숲속명상회", "홍길동", "확정").
		AddRow(2, 99, nil, "요가", "2024-06-01", "09:00", "10:00", nil, int64(56), nil, nil, 10, 0, "", now, 1, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN reservations rv ON rv.id = p.reservation_id WHERE p.date = $1")).
		WithArgs("2024-06-01", string(domain.ReservationCancelled)).
		WillReturnRows(rows)

	programs, err := repo.GetProgramsWithReservationOnDate("2024-06-01")
	require.NoError(t, err)
	require.Len(t, programs, 2)

	require.NotNil(t, programs[0].Reservation)
	assert.Equal(t, &domain.ReservationSummary{
		GroupName:         "숲속명상회",
		CustomerName:      "홍길동",
		ReservationStatus: domain.ReservationConfirmed,
	}, programs[0].Reservation)
	assert.Equal(t, int64(55), *programs[0].InstructorID)

	assert.Nil(t, programs[1].Reservation)
	assert.Equal(t, int64(99), programs[1].ReservationID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProgram(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	place := int64(101)

	p := &domain.Program{
		ReservationID: 2,
		ProgramName:   "숲 명상",
		Date:          "2024-06-01",
		StartTime:     "10:00",
		EndTime:       "12:00",
		PlaceID:       &place,
		Participants:  20,
		Price:         300000,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO programs")).
		WithArgs(2, nil, "숲 명상", "2024-06-01", "10:00", "12:00", 101, nil, nil, nil, 20, 300000, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(7, now, 1))

	require.NoError(t, repo.CreateProgram(p))
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, int32(1), p.Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProgramsRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO programs")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.CreatePrograms([]*domain.Program{{ReservationID: 1, Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationVersionMismatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reservations")).
		WillReturnError(sql.ErrNoRows)

	err := repo.UpdateReservation(&domain.Reservation{ID: 3, Version: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservationsFilter(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	columns := []string{"id", "group_name", "customer_name", "contact_phone", "email", "start_date", "end_date", "participant_count", "status", "memo", "created_at", "version"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE status = $1 AND start_date >= $2 AND start_date <= $3 ORDER BY start_date, id")).
		WithArgs(string(domain.ReservationConfirmed), "2024-06-01", "2024-06-30").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "숲속명상회", "홍길동", "010-0000-0000", "a@example.com", "2024-06-01", "2024-06-02", 20, "확정", "", now, 1))

	reservations, err := repo.GetReservations(domain.ReservationFilter{
		Status: domain.ReservationConfirmed,
		From:   "2024-06-01",
		To:     "2024-06-30",
	})
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "숲속명상회", reservations[0].GroupName)
	assert.Equal(t, domain.ReservationConfirmed, reservations[0].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservationsWithoutFilter(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM reservations ORDER BY start_date, id$`).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	reservations, err := repo.GetReservations(domain.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, reservations)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffUnknownKind(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.GetAllStaff(domain.StaffKind("users; DROP TABLE users"))
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllStaff(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM helpers ORDER BY name, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "specialty", "created_at"}).
			AddRow(9, "박헬퍼", "010-1111-2222", "", now))

	staff, err := repo.GetAllStaff(domain.StaffHelper)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, domain.StaffHelper, staff[0].Kind)
	assert.Equal(t, "박헬퍼", staff[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}
