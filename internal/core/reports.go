package core

import (
	"context"
	"time"

	"spacecore/internal/aggregate"
	"spacecore/pkg/domain"
)

// DeskRevenue ranks one desk by booking revenue.
type DeskRevenue struct {
	Desk     Desk    `json:"desk"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// OccupancySummary rolls up unit occupancy across the portfolio.
type OccupancySummary struct {
	Total       int     `json:"total"`
	Occupied    int     `json:"occupied"`
	Vacant      int     `json:"vacant"`
	Maintenance int     `json:"maintenance"`
	Rate        float64 `json:"rate"` // occupied as percent of total
}

func completedPayment(p Payment) bool { return p.Status == domain.PaymentStatusCompleted }

// RevenueTotal sums completed payments.
func (s *Service) RevenueTotal(ctx context.Context) (float64, error) {
	var total float64
	err := s.store.View(ctx, func(view TransactionView) error {
		total = aggregate.SumWhere(view.ListPayments(), completedPayment, func(p Payment) float64 { return p.Amount })
		return nil
	})
	return total, err
}

// RevenueSeries buckets completed payments by paid-at over [from, to], one
// zero-filled bucket per period.
func (s *Service) RevenueSeries(ctx context.Context, period aggregate.Period, from, to time.Time) ([]aggregate.Bucket, error) {
	var out []aggregate.Bucket
	err := s.store.View(ctx, func(view TransactionView) error {
		var completed []Payment
		for _, p := range view.ListPayments() {
			if completedPayment(p) {
				completed = append(completed, p)
			}
		}
		out = aggregate.SeriesRange(completed,
			func(p Payment) time.Time { return p.PaidAt },
			func(p Payment) float64 { return p.Amount },
			period, from, to)
		return nil
	})
	return out, err
}

// MonthlyRevenue returns the twelve-month revenue calendar for a year.
func (s *Service) MonthlyRevenue(ctx context.Context, year int) ([]aggregate.Bucket, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 1, 0, 0, 0, 0, time.UTC)
	return s.RevenueSeries(ctx, aggregate.PeriodMonth, from, to)
}

// PaymentStatusBreakdown groups payment amounts by workflow status.
func (s *Service) PaymentStatusBreakdown(ctx context.Context) ([]aggregate.Group, error) {
	var out []aggregate.Group
	err := s.store.View(ctx, func(view TransactionView) error {
		out = aggregate.DistributionSum(view.ListPayments(),
			func(p Payment) string { return string(p.Status) },
			func(p Payment) float64 { return p.Amount })
		return nil
	})
	return out, err
}

// PaymentKindBreakdown groups payment amounts by what they settle.
func (s *Service) PaymentKindBreakdown(ctx context.Context) ([]aggregate.Group, error) {
	var out []aggregate.Group
	err := s.store.View(ctx, func(view TransactionView) error {
		out = aggregate.DistributionSum(view.ListPayments(),
			func(p Payment) string { return string(p.Kind) },
			func(p Payment) float64 { return p.Amount })
		return nil
	})
	return out, err
}

// ExpensesByCategory groups expense amounts by category.
func (s *Service) ExpensesByCategory(ctx context.Context) ([]aggregate.Group, error) {
	var out []aggregate.Group
	err := s.store.View(ctx, func(view TransactionView) error {
		out = aggregate.DistributionSum(view.ListExpenses(),
			func(e Expense) string { return e.Category },
			func(e Expense) float64 { return e.Amount })
		return nil
	})
	return out, err
}

// TopDesksByRevenue ranks desks by total booking revenue, descending; ties
// keep desk collection order.
func (s *Service) TopDesksByRevenue(ctx context.Context, n int) ([]DeskRevenue, error) {
	var out []DeskRevenue
	err := s.store.View(ctx, func(view TransactionView) error {
		desks := view.ListDesks()
		revenue := make(map[string]*DeskRevenue, len(desks))
		for _, desk := range desks {
			revenue[desk.ID] = &DeskRevenue{Desk: desk}
		}
		for _, booking := range view.ListBookings() {
			if r, ok := revenue[booking.DeskID]; ok {
				r.Revenue += booking.TotalPrice
				r.Bookings++
			}
		}
		ranked := make([]DeskRevenue, 0, len(desks))
		for _, desk := range desks {
			ranked = append(ranked, *revenue[desk.ID])
		}
		out = aggregate.TopN(ranked, func(r DeskRevenue) float64 { return r.Revenue }, n)
		return nil
	})
	return out, err
}

// Occupancy summarizes unit occupancy across all properties.
func (s *Service) Occupancy(ctx context.Context) (OccupancySummary, error) {
	var out OccupancySummary
	err := s.store.View(ctx, func(view TransactionView) error {
		for _, unit := range view.ListUnits() {
			out.Total++
			switch unit.Status {
			case domain.UnitStatusOccupied:
				out.Occupied++
			case domain.UnitStatusMaintenance:
				out.Maintenance++
			default:
				out.Vacant++
			}
		}
		if out.Total > 0 {
			out.Rate = float64(out.Occupied) / float64(out.Total) * 100
		}
		return nil
	})
	return out, err
}

// MaintenanceBacklog counts maintenance requests per status.
func (s *Service) MaintenanceBacklog(ctx context.Context) ([]aggregate.Group, error) {
	var out []aggregate.Group
	err := s.store.View(ctx, func(view TransactionView) error {
		out = aggregate.Distribution(view.ListMaintenanceRequests(),
			func(m MaintenanceRequest) string { return string(m.Status) })
		return nil
	})
	return out, err
}
