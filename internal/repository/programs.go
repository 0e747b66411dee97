package repository

import (
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

// 날짜와 시각은 충돌 검사에서 비교할 수 있도록 고정 폭 문자열로 읽는다
const programColumns = `
	p.id,
	p.reservation_id,
	p.category_id,
	p.program_name,
	to_char(p.date, 'YYYY-MM-DD'),
	to_char(p.start_time, 'HH24:MI'),
	to_char(p.end_time, 'HH24:MI'),
	p.place_id,
	p.instructor_id,
	p.assistant_id,
	p.helper_id,
	p.participants,
	p.price,
	p.memo,
	p.created_at,
	p.version
`

func programDst(p *domain.Program) []any {
	return []any{
		&p.ID,
		&p.ReservationID,
		&p.CategoryID,
		&p.ProgramName,
		&p.Date,
		&p.StartTime,
		&p.EndTime,
		&p.PlaceID,
		&p.InstructorID,
		&p.AssistantID,
		&p.HelperID,
		&p.Participants,
		&p.Price,
		&p.Memo,
		&p.CreatedAt,
		&p.Version,
	}
}

func (r *Repository) queryPrograms(query string, args ...any) ([]*domain.Program, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]*domain.Program, 0)
	for rows.Next() {
		p := &domain.Program{}
		if err := rows.Scan(programDst(p)...); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// GetProgramsByReservationID 는 예약에 속한 프로그램을 날짜, 시작 시각 순으로 돌려준다.
func (r *Repository) GetProgramsByReservationID(reservationID int64) ([]*domain.Program, error) {
	query := `
		SELECT ` + programColumns + `
		FROM programs p
		WHERE p.reservation_id = $1
		ORDER BY p.date, p.start_time, p.id
	`

	programs, err := r.queryPrograms(query, reservationID)
	if err != nil {
		return nil, errors.Wrapf(err, "list programs of reservation %d", reservationID)
	}

	return programs, nil
}

// GetOtherProgramsOnDate 는 해당 날짜에 다른 예약에 속한 프로그램을 돌려준다.
// 취소된 예약의 프로그램은 제외한다.
func (r *Repository) GetOtherProgramsOnDate(date string, reservationID int64) ([]*domain.Program, error) {
	query := `
		SELECT ` + programColumns + `
		FROM programs p
		JOIN reservations rv ON rv.id = p.reservation_id
		WHERE p.date = $1 AND p.reservation_id <> $2 AND rv.status <> $3
		ORDER BY p.start_time, p.id
	`

	programs, err := r.queryPrograms(query, date, reservationID, domain.ReservationCancelled)
	if err != nil {
		return nil, errors.Wrapf(err, "list other programs on %s", date)
	}

	return programs, nil
}

// GetProgramsWithReservationOnDate 는 해당 날짜의 모든 예약의 프로그램을 소속 예약 정보와 함께 돌려준다.
// 날짜가 다른 프로그램은 충돌할 수 없으므로 날짜로만 좁힌다.
func (r *Repository) GetProgramsWithReservationOnDate(date string) ([]*domain.ProgramWithReservation, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + programColumns + `,
			rv.group_name,
			rv.customer_name,
			rv.status
		FROM programs p
		LEFT JOIN reservations rv ON rv.id = p.reservation_id
		WHERE p.date = $1 AND (rv.status IS NULL OR rv.status <> $2)
		ORDER BY p.start_time, p.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, date, domain.ReservationCancelled)
	if err != nil {
		return nil, errors.Wrapf(err, "list programs on %s", date)
	}
	defer rows.Close()

	programs := make([]*domain.ProgramWithReservation, 0)
	for rows.Next() {
		var row struct {
			GroupName    sql.NullString
			CustomerName sql.NullString
			Status       sql.NullString
		}

		gp := &domain.ProgramWithReservation{}
		dst := append(programDst(&gp.Program), &row.GroupName, &row.CustomerName, &row.Status)
		if err := rows.Scan(dst...); err != nil {
			return nil, errors.Wrap(err, "scan program")
		}

		// LEFT JOIN 결과가 비어 있으면 소속 예약을 알 수 없는 것
		if row.GroupName.Valid || row.CustomerName.Valid || row.Status.Valid {
			gp.Reservation = &domain.ReservationSummary{
				GroupName:         row.GroupName.String,
				CustomerName:      row.CustomerName.String,
				ReservationStatus: domain.ReservationStatus(row.Status.String),
			}
		}

		programs = append(programs, gp)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "list programs on %s", date)
	}

	return programs, nil
}

func (r *Repository) GetProgramByID(id int64) (*domain.Program, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT ` + programColumns + ` FROM programs p WHERE p.id = $1`

	p := &domain.Program{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(programDst(p)...); err != nil {
		return nil, errors.Wrapf(err, "get program %d", id)
	}

	return p, nil
}

func (r *Repository) CreateProgram(p *domain.Program) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO programs (
			reservation_id, category_id, program_name, date, start_time, end_time,
			place_id, instructor_id, assistant_id, helper_id, participants, price, memo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`

	args := []any{
		p.ReservationID, p.CategoryID, p.ProgramName, p.Date, p.StartTime, p.EndTime,
		p.PlaceID, p.InstructorID, p.AssistantID, p.HelperID, p.Participants, p.Price, p.Memo,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.Version); err != nil {
		return errors.Wrap(err, "create program")
	}

	return nil
}

// CreatePrograms 는 여러 프로그램을 한 트랜잭션으로 저장한다.
func (r *Repository) CreatePrograms(programs []*domain.Program) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO programs (
			reservation_id, category_id, program_name, date, start_time, end_time,
			place_id, instructor_id, assistant_id, helper_id, participants, price, memo
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`

	for _, p := range programs {
		args := []any{
			p.ReservationID, p.CategoryID, p.ProgramName, p.Date, p.StartTime, p.EndTime,
			p.PlaceID, p.InstructorID, p.AssistantID, p.HelperID, p.Participants, p.Price, p.Memo,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.Version); err != nil {
			return errors.Wrap(err, "create program")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit programs")
	}

	return nil
}

func (r *Repository) UpdateProgram(p *domain.Program) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE programs
		SET
			category_id = $1,
			program_name = $2,
			date = $3,
			start_time = $4,
			end_time = $5,
			place_id = $6,
			instructor_id = $7,
			assistant_id = $8,
			helper_id = $9,
			participants = $10,
			price = $11,
			memo = $12,
			version = version + 1
		WHERE id = $13 AND version = $14
		RETURNING version
	`

	args := []any{
		p.CategoryID, p.ProgramName, p.Date, p.StartTime, p.EndTime,
		p.PlaceID, p.InstructorID, p.AssistantID, p.HelperID, p.Participants, p.Price, p.Memo,
		p.ID, p.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.Version); err != nil {
		return errors.Wrapf(err, "update program %d", p.ID)
	}

	return nil
}

func (r *Repository) DeleteProgram(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `DELETE FROM programs WHERE id = $1`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return errors.Wrapf(err, "delete program %d", id)
	}

	return nil
}
