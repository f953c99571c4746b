package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrUserNotFound indicates that no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

const userCols = `id, name, email, username, password_hash, role`

// UserRepo provides persistence for operator accounts.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func scanUser(s rowScanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.Role); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account. The password must already be hashed.
// Duplicate username or email surfaces as ErrDuplicateUser.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (name, email, username, password_hash, role) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.Username, u.PasswordHash, u.Role)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateUser
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByUsername fetches an account by its login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches an account by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// List returns every account ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name, email, username, role and, when non-empty, the
// password hash of an account.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	var (
		res sql.Result
		err error
	)
	if u.PasswordHash != "" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET name = ?, email = ?, username = ?, password_hash = ?, role = ? WHERE id = ?`,
			u.Name, u.Email, u.Username, u.PasswordHash, u.Role, u.ID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET name = ?, email = ?, username = ?, role = ? WHERE id = ?`,
			u.Name, u.Email, u.Username, u.Role, u.ID)
	}
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateUser
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var got uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ?`, u.ID).Scan(&got); errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
	}
	return nil
}

// Delete removes an account and revokes every refresh token it owns.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = ?`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
