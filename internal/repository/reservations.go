package repository

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

const reservationColumns = `
	id,
	group_name,
	customer_name,
	contact_phone,
	email,
	to_char(start_date, 'YYYY-MM-DD'),
	to_char(end_date, 'YYYY-MM-DD'),
	participant_count,
	status,
	memo,
	created_at,
	version
`

func scanReservation(s scanner) (*domain.Reservation, error) {
	rsv := &domain.Reservation{}
	dst := []any{
		&rsv.ID,
		&rsv.GroupName,
		&rsv.CustomerName,
		&rsv.ContactPhone,
		&rsv.Email,
		&rsv.StartDate,
		&rsv.EndDate,
		&rsv.ParticipantCount,
		&rsv.Status,
		&rsv.Memo,
		&rsv.CreatedAt,
		&rsv.Version,
	}
	if err := s.Scan(dst...); err != nil {
		return nil, err
	}
	return rsv, nil
}

func (r *Repository) CreateReservation(rsv *domain.Reservation) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO reservations (group_name, customer_name, contact_phone, email, start_date, end_date, participant_count, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	args := []any{rsv.GroupName, rsv.CustomerName, rsv.ContactPhone, rsv.Email, rsv.StartDate, rsv.EndDate, rsv.ParticipantCount, rsv.Status, rsv.Memo}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rsv.ID, &rsv.CreatedAt, &rsv.Version); err != nil {
		return errors.Wrap(err, "create reservation")
	}

	return nil
}

func (r *Repository) GetReservationByID(id int64) (*domain.Reservation, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	rsv, err := scanReservation(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, errors.Wrapf(err, "get reservation %d", id)
	}

	return rsv, nil
}

// GetReservations 는 조건에 맞는 예약을 시작일 순으로 돌려준다.
// From/To 는 시작일 기준이며 비어 있으면 조건을 걸지 않는다.
func (r *Repository) GetReservations(filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	conditions := make([]string, 0)
	args := make([]any, 0)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != "" {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", len(args)))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY start_date, id`

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list reservations")
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		rsv, err := scanReservation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan reservation")
		}
		reservations = append(reservations, rsv)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list reservations")
	}

	return reservations, nil
}

func (r *Repository) UpdateReservation(rsv *domain.Reservation) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE reservations
		SET
			group_name = $1,
			customer_name = $2,
			contact_phone = $3,
			email = $4,
			start_date = $5,
			end_date = $6,
			participant_count = $7,
			status = $8,
			memo = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version
	`

	args := []any{rsv.GroupName, rsv.CustomerName, rsv.ContactPhone, rsv.Email, rsv.StartDate, rsv.EndDate, rsv.ParticipantCount, rsv.Status, rsv.Memo, rsv.ID, rsv.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rsv.Version); err != nil {
		return errors.Wrapf(err, "update reservation %d", rsv.ID)
	}

	return nil
}

// DeleteReservation 은 예약과 그에 속한 프로그램, 지출을 함께 삭제한다 (ON DELETE CASCADE).
func (r *Repository) DeleteReservation(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `DELETE FROM reservations WHERE id = $1`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return errors.Wrapf(err, "delete reservation %d", id)
	}

	return nil
}
