package services

import (
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/models"
)

// InvoiceStats aggregates an invoice period for the stats endpoint.
type InvoiceStats struct {
	TotalInvoices int64   `json:"total_invoices"`
	TotalAmount   float64 `json:"total_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	UnpaidAmount  float64 `json:"unpaid_amount"`
	PaidCount     int64   `json:"paid_count"`
	PartialCount  int64   `json:"partial_count"`
	UnpaidCount   int64   `json:"unpaid_count"`
	PendingCount  int64   `json:"pending_count"`
	OverdueCount  int64   `json:"overdue_count"`
}

// DashboardStats aggregates the dashboard view.
type DashboardStats struct {
	TotalInvoices int64   `json:"total_invoices"`
	TotalSales    float64 `json:"total_sales"`
	PaidAmount    float64 `json:"paid_amount"`
	UnpaidAmount  float64 `json:"unpaid_amount"`
	TodayInvoices int64   `json:"today_invoices"`
	TodaySales    float64 `json:"today_sales"`
	MonthInvoices int64   `json:"month_invoices"`
	MonthSales    float64 `json:"month_sales"`
}

// SalesReportRow is one day of the sales report.
type SalesReportRow struct {
	Date         time.Time `json:"date"`
	InvoiceCount int64     `json:"invoice_count"`
	TotalSales   float64   `json:"total_sales"`
	PaidAmount   float64   `json:"paid_amount"`
}

// PeriodStart maps a named period to its first day. Bounds are computed
// here and passed as parameters so the SQL stays portable between
// sqlite and postgres. Unknown periods fall back to the current month.
func PeriodStart(period string, now time.Time) time.Time {
	today := models.DateOnly(now)
	switch period {
	case "today":
		return today
	case "week":
		return today.AddDate(0, 0, -7)
	case "year":
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default: // month
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// Stats computes the invoice statistics for one period.
func (s *InvoiceService) Stats(userID uint, period string, now time.Time) (*InvoiceStats, error) {
	since := PeriodStart(period, now)

	var sums struct {
		TotalInvoices int64
		TotalAmount   float64
		PaidAmount    float64
	}
	err := s.db.Model(&models.Invoice{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Select("COUNT(*) AS total_invoices, COALESCE(SUM(total), 0) AS total_amount, COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	stats := &InvoiceStats{
		TotalInvoices: sums.TotalInvoices,
		TotalAmount:   sums.TotalAmount,
		PaidAmount:    sums.PaidAmount,
		UnpaidAmount:  sums.TotalAmount - sums.PaidAmount,
	}

	var byStatus []struct {
		Status models.InvoiceStatus
		Count  int64
	}
	err = s.db.Model(&models.Invoice{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		switch row.Status {
		case models.InvoiceStatusPaid:
			stats.PaidCount = row.Count
		case models.InvoiceStatusPartial:
			stats.PartialCount = row.Count
		case models.InvoiceStatusUnpaid:
			stats.UnpaidCount = row.Count
		case models.InvoiceStatusPending:
			stats.PendingCount = row.Count
		}
	}

	err = s.db.Model(&models.Invoice{}).
		Where("user_id = ? AND date >= ? AND due_date < ? AND status <> ?",
			userID, since, models.DateOnly(now), models.InvoiceStatusPaid).
		Count(&stats.OverdueCount).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Dashboard computes the headline numbers shown on the dashboard.
func (s *InvoiceService) Dashboard(userID uint, now time.Time) (*DashboardStats, error) {
	today := models.DateOnly(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	type sums struct {
		Count int64
		Total float64
		Paid  float64
	}
	scan := func(dest *sums, where string, args ...any) error {
		return s.db.Model(&models.Invoice{}).
			Where("user_id = ?", userID).
			Where(where, args...).
			Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total, COALESCE(SUM(paid_amount), 0) AS paid").
			Scan(dest).Error
	}

	var all, day, month sums
	if err := scan(&all, "1 = 1"); err != nil {
		return nil, err
	}
	if err := scan(&day, "date = ?", today); err != nil {
		return nil, err
	}
	if err := scan(&month, "date >= ?", monthStart); err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalInvoices: all.Count,
		TotalSales:    all.Total,
		PaidAmount:    all.Paid,
		UnpaidAmount:  all.Total - all.Paid,
		TodayInvoices: day.Count,
		TodaySales:    day.Total,
		MonthInvoices: month.Count,
		MonthSales:    month.Total,
	}, nil
}

// SalesReport groups invoices per day between from and to (inclusive).
func (s *InvoiceService) SalesReport(userID uint, from, to time.Time) ([]SalesReportRow, error) {
	rows := []SalesReportRow{}
	err := s.db.Model(&models.Invoice{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, models.DateOnly(from), models.DateOnly(to)).
		Select("date, COUNT(*) AS invoice_count, COALESCE(SUM(total), 0) AS total_sales, COALESCE(SUM(paid_amount), 0) AS paid_amount").
		Group("date").
		Order("date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
