package repository

import (
	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

const expenseColumns = `
	id,
	reservation_id,
	category,
	item_name,
	quantity,
	unit_price,
	amount,
	to_char(expense_date, 'YYYY-MM-DD'),
	note,
	created_at,
	version
`

func expenseDst(e *domain.Expense) []any {
	return []any{&e.ID, &e.ReservationID, &e.Category, &e.ItemName, &e.Quantity, &e.UnitPrice, &e.Amount, &e.ExpenseDate, &e.Note, &e.CreatedAt, &e.Version}
}

func (r *Repository) GetExpensesByReservationID(reservationID int64) ([]*domain.Expense, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE reservation_id = $1 ORDER BY expense_date, id`

	rows, err := r.dbpool.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, errors.Wrapf(err, "list expenses of reservation %d", reservationID)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		e := &domain.Expense{}
		if err := rows.Scan(expenseDst(e)...); err != nil {
			return nil, errors.Wrap(err, "scan expense")
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "list expenses of reservation %d", reservationID)
	}

	return expenses, nil
}

func (r *Repository) GetExpenseByID(id int64) (*domain.Expense, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	e := &domain.Expense{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(expenseDst(e)...); err != nil {
		return nil, errors.Wrapf(err, "get expense %d", id)
	}

	return e, nil
}

func (r *Repository) CreateExpense(e *domain.Expense) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO expenses (reservation_id, category, item_name, quantity, unit_price, amount, expense_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{e.ReservationID, e.Category, e.ItemName, e.Quantity, e.UnitPrice, e.Amount, e.ExpenseDate, e.Note}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.Version); err != nil {
		return errors.Wrap(err, "create expense")
	}

	return nil
}

func (r *Repository) UpdateExpense(e *domain.Expense) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE expenses
		SET
			category = $1,
			item_name = $2,
			quantity = $3,
			unit_price = $4,
			amount = $5,
			expense_date = $6,
			note = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	args := []any{e.Category, e.ItemName, e.Quantity, e.UnitPrice, e.Amount, e.ExpenseDate, e.Note, e.ID, e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.Version); err != nil {
		return errors.Wrapf(err, "update expense %d", e.ID)
	}

	return nil
}

func (r *Repository) DeleteExpense(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `DELETE FROM expenses WHERE id = $1`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return errors.Wrapf(err, "delete expense %d", id)
	}

	return nil
}
