package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrDepartmentNotFound indicates that a department row does not exist.
var ErrDepartmentNotFound = errors.New("department not found")

// DepartmentRepo encapsulates all database queries for departments.
type DepartmentRepo struct {
	db *sql.DB
}

// NewDepartmentRepo constructs a DepartmentRepo bound to the given database.
func NewDepartmentRepo(db *sql.DB) *DepartmentRepo { return &DepartmentRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *DepartmentRepo) DB() *sql.DB { return r.db }

// Create inserts a department and populates its generated ID.
func (r *DepartmentRepo) Create(ctx context.Context, d *model.Department) error {
	const q = `INSERT INTO departments (name, direction) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Direction)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a department by id. Returns ErrDepartmentNotFound when no
// row matches.
func (r *DepartmentRepo) GetByID(ctx context.Context, id uint64) (*model.Department, error) {
	const q = `SELECT id, name, direction FROM departments WHERE id = ?`
	var d model.Department
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.Direction); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns all departments ordered by id.
func (r *DepartmentRepo) List(ctx context.Context) ([]*model.Department, error) {
	const q = `SELECT id, name, direction FROM departments ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Department, 0)
	for rows.Next() {
		d := new(model.Department)
		if err := rows.Scan(&d.ID, &d.Name, &d.Direction); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name and direction. Returns ErrDepartmentNotFound when
// no row was touched.
func (r *DepartmentRepo) Update(ctx context.Context, d *model.Department) error {
	const q = `UPDATE departments SET name = ?, direction = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Direction, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish missing rows from no-op updates.
		if _, err := r.GetByID(ctx, d.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a department. Returns ErrDepartmentNotFound when absent
// and ErrConflict when reservations still reference the unit (MySQL error
// 1451, foreign key restriction).
func (r *DepartmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// ExistsForUpdateTx verifies the department exists inside the caller's
// transaction and row-locks it (FOR UPDATE). The locked department row is
// the serialization anchor for reservation writes: two concurrent creates
// on the same department queue up here instead of both passing the overlap
// check. Returns ErrUnknownDepartment when the id does not resolve.
func (r *DepartmentRepo) ExistsForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var got uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM departments WHERE id = ? FOR UPDATE`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnknownDepartment
	}
	return err
}
