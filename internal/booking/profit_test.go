package booking

import "testing"

func TestNetProfit(t *testing.T) {
	tests := []struct {
		name         string
		totalRevenue float64
		amountARS    float64
		totalCost    float64
		wantIncome   float64
		wantProfit   float64
	}{
		{name: "revenue minus costs", totalRevenue: 100000, amountARS: 100000, totalCost: 25000, wantIncome: 100000, wantProfit: 75000},
		{name: "no costs keeps full income", totalRevenue: 100000, amountARS: 100000, wantIncome: 100000, wantProfit: 100000},
		{name: "falls back to amount_ars when no total recorded", amountARS: 80000, totalCost: 5000, wantIncome: 80000, wantProfit: 75000},
		{name: "costs above income go negative", totalRevenue: 10000, amountARS: 10000, totalCost: 12000, wantIncome: 10000, wantProfit: -2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetProfit(7, tt.totalRevenue, tt.amountARS, tt.totalCost)
			if got.ReservationID != 7 {
				t.Errorf("ReservationID = %d, want 7", got.ReservationID)
			}
			if got.Income != tt.wantIncome {
				t.Errorf("Income = %v, want %v", got.Income, tt.wantIncome)
			}
			if got.Cost != tt.totalCost {
				t.Errorf("Cost = %v, want %v", got.Cost, tt.totalCost)
			}
			if got.Profit != tt.wantProfit {
				t.Errorf("Profit = %v, want %v", got.Profit, tt.wantProfit)
			}
		})
	}
}
