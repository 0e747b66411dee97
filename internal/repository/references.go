package repository

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/healing-forest/reservation/backend/internal/domain"
)

// 테이블 이름은 StaffKind 값 그대로 쓴다. 여기 없는 값은 쿼리에 넣지 않는다
func staffTable(kind domain.StaffKind) (string, error) {
	switch kind {
	case domain.StaffInstructor, domain.StaffAssistant, domain.StaffHelper:
		return string(kind), nil
	}
	return "", fmt.Errorf("unknown staff kind %q", kind)
}

func (r *Repository) GetAllStaff(kind domain.StaffKind) ([]*domain.Staff, error) {
	table, err := staffTable(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := fmt.Sprintf(`SELECT id, name, phone, specialty, created_at FROM %s ORDER BY name, id`, table)

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", table)
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	for rows.Next() {
		s := &domain.Staff{Kind: kind}
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Specialty, &s.CreatedAt); err != nil {
			return nil, errors.Wrapf(err, "scan %s", table)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "list %s", table)
	}

	return staff, nil
}

func (r *Repository) GetStaffByID(kind domain.StaffKind, id int64) (*domain.Staff, error) {
	table, err := staffTable(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := fmt.Sprintf(`SELECT name, phone, specialty, created_at FROM %s WHERE id = $1`, table)

	s := &domain.Staff{ID: id, Kind: kind}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&s.Name, &s.Phone, &s.Specialty, &s.CreatedAt); err != nil {
		return nil, errors.Wrapf(err, "get %s %d", table, id)
	}

	return s, nil
}

func (r *Repository) CreateStaff(s *domain.Staff) error {
	table, err := staffTable(s.Kind)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (name, phone, specialty) VALUES ($1, $2, $3) RETURNING id, created_at`, table)

	if err := r.dbpool.QueryRowContext(ctx, query, s.Name, s.Phone, s.Specialty).Scan(&s.ID, &s.CreatedAt); err != nil {
		return errors.Wrapf(err, "create %s", table)
	}

	return nil
}

func (r *Repository) UpdateStaff(s *domain.Staff) error {
	table, err := staffTable(s.Kind)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := fmt.Sprintf(`UPDATE %s SET name = $1, phone = $2, specialty = $3 WHERE id = $4 RETURNING created_at`, table)

	if err := r.dbpool.QueryRowContext(ctx, query, s.Name, s.Phone, s.Specialty, s.ID).Scan(&s.CreatedAt); err != nil {
		return errors.Wrapf(err, "update %s %d", table, s.ID)
	}

	return nil
}

func (r *Repository) DeleteStaff(kind domain.StaffKind, id int64) error {
	table, err := staffTable(kind)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return errors.Wrapf(err, "delete %s %d", table, id)
	}

	return nil
}

func (r *Repository) GetAllLocations() ([]*domain.Location, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT id, name, capacity, description, created_at FROM locations ORDER BY name, id`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list locations")
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		l := &domain.Location{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Capacity, &l.Description, &l.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list locations")
	}

	return locations, nil
}

func (r *Repository) GetLocationByID(id int64) (*domain.Location, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT name, capacity, description, created_at FROM locations WHERE id = $1`

	l := &domain.Location{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&l.Name, &l.Capacity, &l.Description, &l.CreatedAt); err != nil {
		return nil, errors.Wrapf(err, "get location %d", id)
	}

	return l, nil
}

func (r *Repository) CreateLocation(l *domain.Location) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `INSERT INTO locations (name, capacity, description) VALUES ($1, $2, $3) RETURNING id, created_at`

	if err := r.dbpool.QueryRowContext(ctx, query, l.Name, l.Capacity, l.Description).Scan(&l.ID, &l.CreatedAt); err != nil {
		return errors.Wrap(err, "create location")
	}

	return nil
}

func (r *Repository) UpdateLocation(l *domain.Location) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `UPDATE locations SET name = $1, capacity = $2, description = $3 WHERE id = $4 RETURNING created_at`

	if err := r.dbpool.QueryRowContext(ctx, query, l.Name, l.Capacity, l.Description, l.ID).Scan(&l.CreatedAt); err != nil {
		return errors.Wrapf(err, "update location %d", l.ID)
	}

	return nil
}

func (r *Repository) DeleteLocation(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id); err != nil {
		return errors.Wrapf(err, "delete location %d", id)
	}

	return nil
}

func (r *Repository) GetAllCategories() ([]*domain.Category, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT id, name, allow_double_booking, created_at FROM categories ORDER BY name, id`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.AllowDoubleBooking, &c.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	return categories, nil
}

func (r *Repository) GetCategoryByID(id int64) (*domain.Category, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT name, allow_double_booking, created_at FROM categories WHERE id = $1`

	c := &domain.Category{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&c.Name, &c.AllowDoubleBooking, &c.CreatedAt); err != nil {
		return nil, errors.Wrapf(err, "get category %d", id)
	}

	return c, nil
}

func (r *Repository) CreateCategory(c *domain.Category) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `INSERT INTO categories (name, allow_double_booking) VALUES ($1, $2) RETURNING id, created_at`

	if err := r.dbpool.QueryRowContext(ctx, query, c.Name, c.AllowDoubleBooking).Scan(&c.ID, &c.CreatedAt); err != nil {
		return errors.Wrap(err, "create category")
	}

	return nil
}

func (r *Repository) UpdateCategory(c *domain.Category) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `UPDATE categories SET name = $1, allow_double_booking = $2 WHERE id = $3 RETURNING created_at`

	if err := r.dbpool.QueryRowContext(ctx, query, c.Name, c.AllowDoubleBooking, c.ID).Scan(&c.CreatedAt); err != nil {
		return errors.Wrapf(err, "update category %d", c.ID)
	}

	return nil
}

func (r *Repository) DeleteCategory(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return errors.Wrapf(err, "delete category %d", id)
	}

	return nil
}
