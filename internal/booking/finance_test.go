package booking

import (
	"errors"
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 0.001 }

func TestNormalize(t *testing.T) {
	n := Normalizer{USDToARS: 1200}

	tests := []struct {
		name    string
		in      FinanceInput
		want    Ledger
		wantErr error
	}{
		{
			name: "usd converts and fills total revenue",
			in:   FinanceInput{AmountUSD: fp(100)},
			want: Ledger{AmountUSD: fp(100), AmountARS: 120000, TotalRevenueARS: 120000, AmountDue: 120000, Status: StatusPending},
		},
		{
			name: "usd overrides caller-supplied ars",
			in:   FinanceInput{AmountUSD: fp(50), AmountARS: fp(99999)},
			want: Ledger{AmountUSD: fp(50), AmountARS: 60000, TotalRevenueARS: 60000, AmountDue: 60000, Status: StatusPending},
		},
		{
			name: "plain ars with no deposit stays pending",
			in:   FinanceInput{AmountARS: fp(50000)},
			want: Ledger{AmountARS: 50000, TotalRevenueARS: 50000, AmountDue: 50000, Status: StatusPending},
		},
		{
			name: "down payment flips status to deposit",
			in:   FinanceInput{AmountARS: fp(50000), DownPaymentARS: fp(20000), Status: StatusPending},
			want: Ledger{AmountARS: 50000, TotalRevenueARS: 50000, DownPaymentARS: 20000, AmountDue: 30000, Status: StatusDeposit},
		},
		{
			name:    "deposit greater than total revenue fails",
			in:      FinanceInput{AmountARS: fp(40000), TotalRevenueARS: fp(50000), DownPaymentARS: fp(60000)},
			wantErr: ErrDepositExceedsTotal,
		},
		{
			name: "complete status discards the supplied deposit",
			in:   FinanceInput{AmountARS: fp(80000), DownPaymentARS: fp(10000), Status: StatusComplete},
			want: Ledger{AmountARS: 80000, TotalRevenueARS: 80000, DownPaymentARS: 0, AmountDue: 0, Status: StatusComplete},
		},
		{
			name: "caller-supplied total revenue is kept",
			in:   FinanceInput{AmountARS: fp(50000), TotalRevenueARS: fp(70000)},
			want: Ledger{AmountARS: 50000, TotalRevenueARS: 70000, AmountDue: 70000, Status: StatusPending},
		},
		{
			name:    "no amount at all fails",
			in:      FinanceInput{},
			wantErr: ErrMissingAmount,
		},
		{
			name:    "zero ars without usd fails",
			in:      FinanceInput{AmountARS: fp(0)},
			wantErr: ErrMissingAmount,
		},
		{
			name: "zero usd falls through to ars",
			in:   FinanceInput{AmountUSD: fp(0), AmountARS: fp(30000)},
			want: Ledger{AmountARS: 30000, TotalRevenueARS: 30000, AmountDue: 30000, Status: StatusPending},
		},
		{
			name: "deposit equal to total leaves nothing due",
			in:   FinanceInput{AmountARS: fp(50000), DownPaymentARS: fp(50000)},
			want: Ledger{AmountARS: 50000, TotalRevenueARS: 50000, DownPaymentARS: 50000, AmountDue: 0, Status: StatusDeposit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			assertLedger(t, got, tt.want)
		})
	}
}

func TestApplyPatch(t *testing.T) {
	n := Normalizer{USDToARS: 1200}

	// A reservation as it would sit in the store after creation.
	base := Ledger{AmountARS: 50000, TotalRevenueARS: 50000, DownPaymentARS: 20000, AmountDue: 30000, Status: StatusDeposit}

	tests := []struct {
		name    string
		cur     Ledger
		patch   FinancePatch
		want    Ledger
		wantErr error
	}{
		{
			name:  "empty patch re-settles to the same state",
			cur:   base,
			patch: FinancePatch{},
			want:  base,
		},
		{
			name:  "usd in payload recomputes ars and total stays",
			cur:   Ledger{AmountARS: 50000, TotalRevenueARS: 50000, AmountDue: 50000, Status: StatusPending},
			patch: FinancePatch{AmountUSD: OptFloat{Set: true, Valid: true, Value: 100}},
			want:  Ledger{AmountUSD: fp(100), AmountARS: 120000, TotalRevenueARS: 50000, AmountDue: 50000, Status: StatusPending},
		},
		{
			name:    "explicit null ars is rejected",
			cur:     base,
			patch:   FinancePatch{AmountARS: OptFloat{Set: true}},
			wantErr: ErrNullAmountRejected,
		},
		{
			name: "null ars is fine when usd compensates",
			cur:  base,
			patch: FinancePatch{
				AmountUSD: OptFloat{Set: true, Valid: true, Value: 60},
				AmountARS: OptFloat{Set: true},
			},
			want: Ledger{AmountUSD: fp(60), AmountARS: 72000, TotalRevenueARS: 50000, DownPaymentARS: 20000, AmountDue: 30000, Status: StatusDeposit},
		},
		{
			name:  "null usd clears the usd figure only",
			cur:   Ledger{AmountUSD: fp(100), AmountARS: 120000, TotalRevenueARS: 120000, AmountDue: 120000, Status: StatusPending},
			patch: FinancePatch{AmountUSD: OptFloat{Set: true}},
			want:  Ledger{AmountARS: 120000, TotalRevenueARS: 120000, AmountDue: 120000, Status: StatusPending},
		},
		{
			name:  "null total revenue re-derives from ars",
			cur:   Ledger{AmountARS: 50000, TotalRevenueARS: 90000, AmountDue: 90000, Status: StatusPending},
			patch: FinancePatch{TotalRevenueARS: OptFloat{Set: true}},
			want:  Ledger{AmountARS: 50000, TotalRevenueARS: 50000, AmountDue: 50000, Status: StatusPending},
		},
		{
			name:    "raising the deposit past the total fails",
			cur:     base,
			patch:   FinancePatch{DownPaymentARS: OptFloat{Set: true, Valid: true, Value: 60000}},
			wantErr: ErrDepositExceedsTotal,
		},
		{
			name:    "shrinking the total below the stored deposit fails",
			cur:     base,
			patch:   FinancePatch{TotalRevenueARS: OptFloat{Set: true, Valid: true, Value: 10000}},
			wantErr: ErrDepositExceedsTotal,
		},
		{
			name:  "null deposit falls back to pending with full amount due",
			cur:   base,
			patch: FinancePatch{DownPaymentARS: OptFloat{Set: true}},
			want:  Ledger{AmountARS: 50000, TotalRevenueARS: 50000, AmountDue: 50000, Status: StatusPending},
		},
		{
			name:  "marking complete zeroes deposit and amount due",
			cur:   base,
			patch: FinancePatch{Status: StatusComplete},
			want:  Ledger{AmountARS: 50000, TotalRevenueARS: 50000, DownPaymentARS: 0, AmountDue: 0, Status: StatusComplete},
		},
		{
			name:  "new deposit recomputes amount due",
			cur:   base,
			patch: FinancePatch{DownPaymentARS: OptFloat{Set: true, Valid: true, Value: 45000}},
			want:  Ledger{AmountARS: 50000, TotalRevenueARS: 50000, DownPaymentARS: 45000, AmountDue: 5000, Status: StatusDeposit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.ApplyPatch(tt.cur, tt.patch)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ApplyPatch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyPatch() unexpected error: %v", err)
			}
			assertLedger(t, got, tt.want)
		})
	}
}

func assertLedger(t *testing.T, got, want Ledger) {
	t.Helper()
	if (got.AmountUSD == nil) != (want.AmountUSD == nil) {
		t.Errorf("AmountUSD nil mismatch: got %v, want %v", got.AmountUSD, want.AmountUSD)
	} else if got.AmountUSD != nil && !approx(*got.AmountUSD, *want.AmountUSD) {
		t.Errorf("AmountUSD = %v, want %v", *got.AmountUSD, *want.AmountUSD)
	}
	if !approx(got.AmountARS, want.AmountARS) {
		t.Errorf("AmountARS = %v, want %v", got.AmountARS, want.AmountARS)
	}
	if !approx(got.TotalRevenueARS, want.TotalRevenueARS) {
		t.Errorf("TotalRevenueARS = %v, want %v", got.TotalRevenueARS, want.TotalRevenueARS)
	}
	if !approx(got.DownPaymentARS, want.DownPaymentARS) {
		t.Errorf("DownPaymentARS = %v, want %v", got.DownPaymentARS, want.DownPaymentARS)
	}
	if !approx(got.AmountDue, want.AmountDue) {
		t.Errorf("AmountDue = %v, want %v", got.AmountDue, want.AmountDue)
	}
	if got.Status != want.Status {
		t.Errorf("Status = %q, want %q", got.Status, want.Status)
	}
}
