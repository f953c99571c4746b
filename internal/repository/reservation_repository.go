package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/rental-backoffice/internal/booking"
	"github.com/iliyamo/rental-backoffice/internal/model"
)

// ErrReservationNotFound indicates that a reservation row does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// reservationCols is the column list every reservation query selects, kept
// in one place so scans stay in sync.
const reservationCols = `id, guest_name, guest_phone, check_in, check_out, people_count, beds,
       origin_platform_id, amount_usd, amount_ars, total_revenue_ars, down_payment_ars,
       amount_due, payment_status, is_blocked_on_other_platforms, department_id,
       created_at, updated_at`

// ReservationRepo provides persistence for reservations and the read-side
// aggregation over their cost rows. Write paths are Tx-suffixed: the
// lifecycle handler owns one transaction per logical operation and the
// overlap decision, referential checks and the final insert or update all
// run inside it.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying sql.DB for starting transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(s rowScanner) (*model.Reservation, error) {
	var (
		res        model.Reservation
		phone      sql.NullString
		platformID sql.NullInt64
		amountUSD  sql.NullFloat64
		status     string
	)
	err := s.Scan(
		&res.ID, &res.GuestName, &phone, &res.CheckIn, &res.CheckOut, &res.PeopleCount, &res.Beds,
		&platformID, &amountUSD, &res.AmountARS, &res.TotalRevenueARS, &res.DownPaymentARS,
		&res.AmountDue, &status, &res.IsBlockedOnOtherPlatforms, &res.DepartmentID,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		p := phone.String
		res.GuestPhone = &p
	}
	if platformID.Valid {
		pid := uint64(platformID.Int64)
		res.OriginPlatformID = &pid
	}
	if amountUSD.Valid {
		usd := amountUSD.Float64
		res.AmountUSD = &usd
	}
	res.PaymentStatus = booking.PaymentStatus(status)
	return &res, nil
}

// CreateTx inserts a reservation within the caller's transaction and reads
// the row back so generated fields (id, timestamps) are populated. The
// caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (guest_name, guest_phone, check_in, check_out, people_count, beds,
	            origin_platform_id, amount_usd, amount_ars, total_revenue_ars, down_payment_ars,
	            amount_due, payment_status, is_blocked_on_other_platforms, department_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.GuestName, res.GuestPhone, res.CheckIn, res.CheckOut, res.PeopleCount, res.Beds,
		res.OriginPlatformID, res.AmountUSD, res.AmountARS, res.TotalRevenueARS, res.DownPaymentARS,
		res.AmountDue, string(res.PaymentStatus), res.IsBlockedOnOtherPlatforms, res.DepartmentID,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	stored, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, res.ID))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// GetByID fetches a reservation outside any transaction. Returns
// ErrReservationNotFound when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetForUpdateTx fetches a reservation within the caller's transaction and
// row-locks it so the update's read-merge-write sequence is serialized.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	res, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// List returns all reservations ordered by check-in descending. When
// departmentID is non-zero the listing is restricted to that department.
func (r *ReservationRepo) List(ctx context.Context, departmentID uint64) ([]*model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations`
	args := []any{}
	if departmentID != 0 {
		q += ` WHERE department_id = ?`
		args = append(args, departmentID)
	}
	q += ` ORDER BY check_in DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RangesForUpdateTx loads every stay interval of a department inside the
// caller's transaction, row-locking the matched reservations (FOR UPDATE).
// Together with the department row lock this makes the check-then-write
// sequence serializable: a concurrent create on the same department blocks
// until this transaction commits, so both can never pass the overlap check.
func (r *ReservationRepo) RangesForUpdateTx(ctx context.Context, tx *sql.Tx, departmentID uint64) ([]booking.DateRange, error) {
	const q = `SELECT id, check_in, check_out FROM reservations WHERE department_id = ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []booking.DateRange
	for rows.Next() {
		var dr booking.DateRange
		if err := rows.Scan(&dr.ReservationID, &dr.CheckIn, &dr.CheckOut); err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTx overwrites every mutable column of a reservation within the
// caller's transaction and reads the row back so timestamps reflect the
// stored state.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations SET
	           guest_name = ?, guest_phone = ?, check_in = ?, check_out = ?, people_count = ?, beds = ?,
	           origin_platform_id = ?, amount_usd = ?, amount_ars = ?, total_revenue_ars = ?,
	           down_payment_ars = ?, amount_due = ?, payment_status = ?,
	           is_blocked_on_other_platforms = ?, department_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q,
		res.GuestName, res.GuestPhone, res.CheckIn, res.CheckOut, res.PeopleCount, res.Beds,
		res.OriginPlatformID, res.AmountUSD, res.AmountARS, res.TotalRevenueARS,
		res.DownPaymentARS, res.AmountDue, string(res.PaymentStatus),
		res.IsBlockedOnOtherPlatforms, res.DepartmentID, res.ID,
	); err != nil {
		return err
	}
	stored, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, res.ID))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// DeleteTx removes a reservation and its cost rows within the caller's
// transaction. Costs never outlive their reservation; the cascade is part
// of the delete contract rather than left to dangling foreign keys.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_costs WHERE reservation_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// SumCosts returns the total of all cost rows referencing a reservation,
// zero when there are none. Read-only.
func (r *ReservationRepo) SumCosts(ctx context.Context, reservationID uint64) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount), 0) FROM reservation_costs WHERE reservation_id = ?`
	var total float64
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(&total)
	return total, err
}

// ExistsTx verifies the reservation exists inside the caller's transaction.
func (r *ReservationRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var got uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	return err
}
