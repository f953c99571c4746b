// Package booking holds the reservation domain logic that does not touch the
// database: financial normalization of multi-currency inputs, date-range
// overlap detection and net-profit aggregation. Keeping these rules in a
// plain package lets handlers stay thin and makes the money math testable
// without a running MySQL instance.
package booking

import "errors"

// PaymentStatus enumerates the settlement state of a reservation.
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusDeposit  PaymentStatus = "deposit"
	StatusComplete PaymentStatus = "complete"
)

// ValidStatus reports whether s is one of the known payment states.
func ValidStatus(s PaymentStatus) bool {
	switch s {
	case StatusPending, StatusDeposit, StatusComplete:
		return true
	}
	return false
}

// ErrMissingAmount is returned when neither amount_usd nor amount_ars can
// resolve to a non-null ledger amount on creation.
var ErrMissingAmount = errors.New("must supply at least one of amount_usd or amount_ars")

// ErrNullAmountRejected is returned when an update explicitly sets amount_ars
// to null without a compensating amount_usd. The stored amount can never
// become null.
var ErrNullAmountRejected = errors.New("amount_ars cannot be set to null")

// ErrDepositExceedsTotal is returned when a down payment is greater than the
// total revenue it is paid against.
var ErrDepositExceedsTotal = errors.New("down payment cannot exceed total revenue")

// FinanceInput carries the raw money fields of a reservation creation
// request. Pointers distinguish omitted fields from explicit zeros.
type FinanceInput struct {
	AmountUSD       *float64
	AmountARS       *float64
	TotalRevenueARS *float64
	DownPaymentARS  *float64
	Status          PaymentStatus
}

// FinancePatch carries the money fields of a partial update. Opt values keep
// the three-way distinction between omitted, null and set that the update
// contract requires.
type FinancePatch struct {
	AmountUSD       OptFloat
	AmountARS       OptFloat
	TotalRevenueARS OptFloat
	DownPaymentARS  OptFloat
	Status          PaymentStatus // empty means not part of the payload
}

// Ledger is the canonical, fully resolved financial state of a reservation.
// After Normalize or ApplyPatch every field is consistent: amount_due and
// payment status always match total revenue and down payment.
type Ledger struct {
	AmountUSD       *float64
	AmountARS       float64
	TotalRevenueARS float64
	DownPaymentARS  float64
	AmountDue       float64
	Status          PaymentStatus
}

// Normalizer converts raw reservation money inputs into a Ledger using a
// fixed USD to ARS conversion rate. The rate is injected so tests and a
// future live-rate source can vary it per call site.
type Normalizer struct {
	USDToARS float64
}

// Normalize resolves the creation-path ledger.
//
// A non-zero amount_usd overrides any caller-supplied amount_ars; otherwise
// amount_ars must be present and non-zero. Total revenue defaults to the
// resolved amount_ars when the caller did not supply one. Settlement follows
// a strict precedence: an explicit complete status wins over any down-payment
// math, a non-zero down payment wins over plain pending, and the default is
// pending with the full amount due.
func (n Normalizer) Normalize(in FinanceInput) (Ledger, error) {
	led := Ledger{Status: in.Status}
	if led.Status == "" {
		led.Status = StatusPending
	}

	switch {
	case in.AmountUSD != nil && *in.AmountUSD != 0:
		usd := *in.AmountUSD
		led.AmountUSD = &usd
		led.AmountARS = usd * n.USDToARS
	case in.AmountARS == nil || *in.AmountARS == 0:
		return Ledger{}, ErrMissingAmount
	default:
		led.AmountARS = *in.AmountARS
	}

	if in.TotalRevenueARS != nil {
		led.TotalRevenueARS = *in.TotalRevenueARS
	} else {
		led.TotalRevenueARS = led.AmountARS
	}

	return n.settle(led, in.DownPaymentARS)
}

// ApplyPatch merges a partial update into the current ledger and re-resolves
// it under the same precedence rules as Normalize.
//
// amount_ars is only recomputed from amount_usd when amount_usd is part of
// the payload; setting amount_usd to null clears the USD figure but keeps the
// stored amount_ars. Setting total_revenue_ars to null re-derives it from the
// current amount_ars. Setting down_payment_ars to null drops the deposit and
// the reservation falls back to pending with the full amount due.
func (n Normalizer) ApplyPatch(cur Ledger, p FinancePatch) (Ledger, error) {
	switch {
	case p.AmountUSD.Set && p.AmountUSD.Valid:
		usd := p.AmountUSD.Value
		cur.AmountUSD = &usd
		cur.AmountARS = usd * n.USDToARS
	case p.AmountARS.Set && !p.AmountARS.Valid:
		return Ledger{}, ErrNullAmountRejected
	default:
		if p.AmountUSD.Set {
			cur.AmountUSD = nil
		}
		if p.AmountARS.Set {
			cur.AmountARS = p.AmountARS.Value
		}
	}

	if p.TotalRevenueARS.Set {
		if p.TotalRevenueARS.Valid {
			cur.TotalRevenueARS = p.TotalRevenueARS.Value
		} else {
			cur.TotalRevenueARS = cur.AmountARS
		}
	}

	var down *float64
	if p.DownPaymentARS.Set {
		if p.DownPaymentARS.Valid {
			down = &p.DownPaymentARS.Value
		}
	} else if cur.DownPaymentARS != 0 {
		d := cur.DownPaymentARS
		down = &d
	}

	if p.Status != "" {
		cur.Status = p.Status
	}

	return n.settle(cur, down)
}

// settle resolves amount_due, down_payment and payment status against the
// ledger's total revenue. complete > deposit > pending.
func (n Normalizer) settle(led Ledger, down *float64) (Ledger, error) {
	switch {
	case led.Status == StatusComplete:
		// Full settlement discards any deposit bookkeeping.
		led.AmountDue = 0
		led.DownPaymentARS = 0
	case down != nil && *down != 0:
		if *down > led.TotalRevenueARS {
			return Ledger{}, ErrDepositExceedsTotal
		}
		led.DownPaymentARS = *down
		led.AmountDue = led.TotalRevenueARS - *down
		led.Status = StatusDeposit
	default:
		led.DownPaymentARS = 0
		led.AmountDue = led.TotalRevenueARS
		led.Status = StatusPending
	}
	return led, nil
}
