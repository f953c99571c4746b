package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrBlacklistNotFound indicates that a blacklist entry does not exist.
var ErrBlacklistNotFound = errors.New("blacklist entry not found")

// BlacklistRepo provides persistence for banned-guest records.
type BlacklistRepo struct {
	db *sql.DB
}

// NewBlacklistRepo returns a BlacklistRepo bound to the given database.
func NewBlacklistRepo(db *sql.DB) *BlacklistRepo { return &BlacklistRepo{db: db} }

func scanBlacklist(s rowScanner) (*model.BlacklistEntry, error) {
	var (
		e     model.BlacklistEntry
		phone sql.NullString
	)
	if err := s.Scan(&e.ID, &e.GuestName, &phone, &e.Reason, &e.DateAdded); err != nil {
		return nil, err
	}
	if phone.Valid {
		p := phone.String
		e.GuestPhone = &p
	}
	return &e, nil
}

// Create inserts a banned-guest record.
func (r *BlacklistRepo) Create(ctx context.Context, e *model.BlacklistEntry) error {
	const q = `INSERT INTO blacklist (guest_name, guest_phone, reason, date_added) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.GuestName, e.GuestPhone, e.Reason, e.DateAdded)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches a single blacklist entry.
func (r *BlacklistRepo) GetByID(ctx context.Context, id uint64) (*model.BlacklistEntry, error) {
	e, err := scanBlacklist(r.db.QueryRowContext(ctx,
		`SELECT id, guest_name, guest_phone, reason, date_added FROM blacklist WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlacklistNotFound
	}
	return e, err
}

// List returns every blacklist entry, newest first.
func (r *BlacklistRepo) List(ctx context.Context) ([]*model.BlacklistEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, guest_name, guest_phone, reason, date_added FROM blacklist ORDER BY date_added DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.BlacklistEntry, 0)
	for rows.Next() {
		e, err := scanBlacklist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a blacklist entry.
func (r *BlacklistRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blacklist WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlacklistNotFound
	}
	return nil
}
