package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrCostNotFound indicates that a reservation cost row does not exist.
var ErrCostNotFound = errors.New("reservation cost not found")

const costCols = `id, category, description, amount, incurred_on, reservation_id, department_id`

// CostRepo provides persistence for per-reservation expense entries.
type CostRepo struct {
	db *sql.DB
}

// NewCostRepo returns a CostRepo bound to the given database.
func NewCostRepo(db *sql.DB) *CostRepo { return &CostRepo{db: db} }

// DB exposes the underlying sql.DB for starting transactions.
func (r *CostRepo) DB() *sql.DB { return r.db }

func scanCost(s rowScanner) (*model.ReservationCost, error) {
	var (
		c     model.ReservationCost
		desc  sql.NullString
		depID sql.NullInt64
	)
	if err := s.Scan(&c.ID, &c.Category, &desc, &c.Amount, &c.Date, &c.ReservationID, &depID); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		c.Description = &d
	}
	if depID.Valid {
		id := uint64(depID.Int64)
		c.DepartmentID = &id
	}
	return &c, nil
}

// CreateTx inserts a cost row within the caller's transaction. Referential
// checks on the reservation and optional department run in the same
// transaction before this is called.
func (r *CostRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.ReservationCost) error {
	const q = `INSERT INTO reservation_costs
	           (category, description, amount, incurred_on, reservation_id, department_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, c.Category, c.Description, c.Amount, c.Date, c.ReservationID, c.DepartmentID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a single cost row.
func (r *CostRepo) GetByID(ctx context.Context, id uint64) (*model.ReservationCost, error) {
	c, err := scanCost(r.db.QueryRowContext(ctx,
		`SELECT `+costCols+` FROM reservation_costs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCostNotFound
	}
	return c, err
}

// List returns cost rows, optionally filtered by reservation. Ordered by
// the date the expense was incurred, newest first.
func (r *CostRepo) List(ctx context.Context, reservationID uint64) ([]*model.ReservationCost, error) {
	q := `SELECT ` + costCols + ` FROM reservation_costs`
	args := []any{}
	if reservationID != 0 {
		q += ` WHERE reservation_id = ?`
		args = append(args, reservationID)
	}
	q += ` ORDER BY incurred_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.ReservationCost, 0)
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTx overwrites a cost row within the caller's transaction.
func (r *CostRepo) UpdateTx(ctx context.Context, tx *sql.Tx, c *model.ReservationCost) error {
	const q = `UPDATE reservation_costs SET
	           category = ?, description = ?, amount = ?, incurred_on = ?, reservation_id = ?, department_id = ?
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, c.Category, c.Description, c.Amount, c.Date, c.ReservationID, c.DepartmentID, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish no-op updates from missing rows.
		return r.existsErr(ctx, c.ID)
	}
	return nil
}

// Delete removes a cost row.
func (r *CostRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservation_costs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCostNotFound
	}
	return nil
}

func (r *CostRepo) existsErr(ctx context.Context, id uint64) error {
	var got uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM reservation_costs WHERE id = ?`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCostNotFound
	}
	return err
}
