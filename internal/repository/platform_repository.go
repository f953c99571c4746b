package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrPlatformNotFound indicates that a booking platform row does not exist.
var ErrPlatformNotFound = errors.New("platform not found")

// PlatformRepo encapsulates all database queries for booking platforms.
type PlatformRepo struct {
	db *sql.DB
}

// NewPlatformRepo constructs a PlatformRepo bound to the given database.
func NewPlatformRepo(db *sql.DB) *PlatformRepo { return &PlatformRepo{db: db} }

// Create inserts a platform and populates its generated ID. A duplicate
// name (MySQL 1062) is reported as ErrPlatformExists.
func (r *PlatformRepo) Create(ctx context.Context, p *model.BookingPlatform) error {
	const q = `INSERT INTO booking_platforms (name, url, icon) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.URL, p.Icon)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrPlatformExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a platform by id. Returns ErrPlatformNotFound when no row
// matches.
func (r *PlatformRepo) GetByID(ctx context.Context, id uint64) (*model.BookingPlatform, error) {
	const q = `SELECT id, name, url, icon FROM booking_platforms WHERE id = ?`
	var p model.BookingPlatform
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.URL, &p.Icon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlatformNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all platforms ordered by name.
func (r *PlatformRepo) List(ctx context.Context) ([]*model.BookingPlatform, error) {
	const q = `SELECT id, name, url, icon FROM booking_platforms ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.BookingPlatform, 0)
	for rows.Next() {
		p := new(model.BookingPlatform)
		if err := rows.Scan(&p.ID, &p.Name, &p.URL, &p.Icon); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the platform row. Duplicate names surface as
// ErrPlatformExists, missing rows as ErrPlatformNotFound.
func (r *PlatformRepo) Update(ctx context.Context, p *model.BookingPlatform) error {
	const q = `UPDATE booking_platforms SET name = ?, url = ?, icon = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.URL, p.Icon, p.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrPlatformExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a platform. Returns ErrPlatformNotFound when absent.
func (r *PlatformRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM booking_platforms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

// ExistsTx verifies the platform exists inside the caller's transaction.
// Returns ErrUnknownPlatform when the id does not resolve.
func (r *PlatformRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var got uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM booking_platforms WHERE id = ?`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnknownPlatform
	}
	return err
}
