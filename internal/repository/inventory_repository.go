package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrInventoryNotFound indicates that an inventory item does not exist.
var ErrInventoryNotFound = errors.New("inventory item not found")

// InventoryRepo provides persistence for the furnishings tracked per unit.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns an InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// DB exposes the underlying sql.DB for starting transactions.
func (r *InventoryRepo) DB() *sql.DB { return r.db }

// CreateTx inserts an inventory item within the caller's transaction, after
// the owning department has been validated in the same transaction.
func (r *InventoryRepo) CreateTx(ctx context.Context, tx *sql.Tx, it *model.InventoryItem) error {
	const q = `INSERT INTO inventory_items (name, quantity, department_id) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, it.Name, it.Quantity, it.DepartmentID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetByID fetches a single inventory item.
func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (*model.InventoryItem, error) {
	var it model.InventoryItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, quantity, department_id FROM inventory_items WHERE id = ?`, id).
		Scan(&it.ID, &it.Name, &it.Quantity, &it.DepartmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListByDepartment returns the items recorded for one unit.
func (r *InventoryRepo) ListByDepartment(ctx context.Context, departmentID uint64) ([]*model.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, quantity, department_id FROM inventory_items WHERE department_id = ? ORDER BY id`,
		departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.InventoryItem, 0)
	for rows.Next() {
		var it model.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.DepartmentID); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites an item's name and quantity.
func (r *InventoryRepo) Update(ctx context.Context, it *model.InventoryItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory_items SET name = ?, quantity = ? WHERE id = ?`,
		it.Name, it.Quantity, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var got uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM inventory_items WHERE id = ?`, it.ID).Scan(&got); errors.Is(err, sql.ErrNoRows) {
			return ErrInventoryNotFound
		}
	}
	return nil
}

// Delete removes an inventory item.
func (r *InventoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInventoryNotFound
	}
	return nil
}
