package booking

// ProfitReport aggregates a reservation's revenue against its operational
// costs. Income prefers total_revenue_ars and falls back to amount_ars when
// no total was ever recorded.
type ProfitReport struct {
	ReservationID uint64  `json:"reservation_id"`
	Income        float64 `json:"income"`
	Cost          float64 `json:"cost"`
	Profit        float64 `json:"profit"`
}

// NetProfit builds the profit report for one reservation. totalCost is the
// sum of all cost rows referencing the reservation, zero when there are none.
func NetProfit(reservationID uint64, totalRevenueARS, amountARS, totalCost float64) ProfitReport {
	income := totalRevenueARS
	if income == 0 {
		income = amountARS
	}
	return ProfitReport{
		ReservationID: reservationID,
		Income:        income,
		Cost:          totalCost,
		Profit:        income - totalCost,
	}
}
