package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

var ErrStatsUnavailable = errors.New("dashboard stats unavailable")

const monthBucketCount = 12

// monthLabel keys the 12-month time series ("Jan 06" style).
const monthLabelFormat = "Jan 06"

type MonthBucket struct {
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DashboardStats struct {
	HoursWeek          float64 `json:"hours_week"`
	HoursMonth         float64 `json:"hours_month"`
	HoursYear          float64 `json:"hours_year"`
	BillableHoursMonth float64 `json:"billable_hours_month"`

	UnpaidTotal  float64 `json:"unpaid_total"`
	OverdueTotal float64 `json:"overdue_total"`

	MonthlyRevenue  float64 `json:"monthly_revenue"`
	YearlyRevenue   float64 `json:"yearly_revenue"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	NetIncome       float64 `json:"net_income"`

	ActiveProjects int `json:"active_projects"`
	ClientCount    int `json:"client_count"`

	Series          []MonthBucket `json:"series"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`

	GeneratedAt time.Time `json:"generated_at"`
}

// DashboardService aggregates company-wide stats. Reads run in parallel
// and join before the compute step. A failed refresh keeps the previous
// snapshot: the dashboard shows stale-but-valid numbers instead of an
// error, and only errors when no snapshot exists yet.
type DashboardService struct {
	entryRepo   repository.TimeEntryRepository
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository

	mu       sync.RWMutex
	lastGood map[string]*DashboardStats
}

func NewDashboardService(
	entryRepo repository.TimeEntryRepository,
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
) *DashboardService {
	return &DashboardService{
		entryRepo:   entryRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		lastGood:    make(map[string]*DashboardStats),
	}
}

func (s *DashboardService) Stats(ctx context.Context, companyID string) (*DashboardStats, error) {
	now := time.Now()
	spanStart := earliestWindow(now)

	var (
		entries  []*model.TimeEntry
		paid     []*model.Invoice
		unpaid   []*model.Invoice
		expenses []*model.Expense
		projects int
		clients  int
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = s.entryRepo.Since(companyID, spanStart)
		return err
	})
	g.Go(func() (err error) {
		paid, err = s.invoiceRepo.PaidSince(companyID, seriesAnchor(now))
		return err
	})
	g.Go(func() (err error) {
		unpaid, err = s.invoiceRepo.Unpaid(companyID)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.expenseRepo.Since(companyID, seriesAnchor(now))
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.projectRepo.CountActive(companyID)
		return err
	})
	g.Go(func() (err error) {
		clients, err = s.clientRepo.Count(companyID)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("dashboard refresh failed, serving previous snapshot", "error", err, "company_id", companyID)

		s.mu.RLock()
		stale := s.lastGood[companyID]
		s.mu.RUnlock()
		if stale != nil {
			return stale, nil
		}
		return nil, ErrStatsUnavailable
	}

	stats := ComputeStats(entries, paid, unpaid, expenses, projects, clients, now)

	s.mu.Lock()
	s.lastGood[companyID] = stats
	s.mu.Unlock()

	return stats, nil
}

// ComputeStats is the pure aggregation step over already-fetched rows.
func ComputeStats(
	entries []*model.TimeEntry,
	paid []*model.Invoice,
	unpaid []*model.Invoice,
	expenses []*model.Expense,
	activeProjects, clientCount int,
	now time.Time,
) *DashboardStats {
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)
	yearStart := startOfYear(now)

	stats := &DashboardStats{
		ActiveProjects: activeProjects,
		ClientCount:    clientCount,
		GeneratedAt:    now,
	}

	var weekSec, monthSec, yearSec, billableSec int64
	for _, entry := range entries {
		if entry.DurationSeconds == nil {
			continue
		}
		sec := *entry.DurationSeconds
		if !entry.StartTime.Before(yearStart) {
			yearSec += sec
		}
		if !entry.StartTime.Before(monthStart) {
			monthSec += sec
			if entry.Task != nil {
				billableSec += sec
			}
		}
		if !entry.StartTime.Before(weekStart) {
			weekSec += sec
		}
	}
	stats.HoursWeek = roundHours(weekSec)
	stats.HoursMonth = roundHours(monthSec)
	stats.HoursYear = roundHours(yearSec)
	stats.BillableHoursMonth = roundHours(billableSec)

	counts := map[string]int{}
	for _, invoice := range unpaid {
		stats.UnpaidTotal += invoice.Total
		if invoice.Overdue(now) {
			stats.OverdueTotal += invoice.Total
			counts["overdue"]++
		}
		counts[invoice.Status]++
	}

	// 12 fixed buckets anchored 11 months back at day 1, keyed by label.
	// Rows whose label matches no bucket fall outside the window and are
	// dropped.
	anchor := seriesAnchor(now)
	buckets := make([]MonthBucket, monthBucketCount)
	index := make(map[string]int, monthBucketCount)
	for i := 0; i < monthBucketCount; i++ {
		label := anchor.AddDate(0, i, 0).Format(monthLabelFormat)
		buckets[i] = MonthBucket{Label: label}
		index[label] = i
	}

	for _, invoice := range paid {
		counts["paid"]++
		if !invoice.CreatedAt.Before(monthStart) {
			stats.MonthlyRevenue += invoice.Total
		}
		if !invoice.CreatedAt.Before(yearStart) {
			stats.YearlyRevenue += invoice.Total
		}
		if i, ok := index[invoice.CreatedAt.Format(monthLabelFormat)]; ok {
			buckets[i].Revenue += invoice.Total
		}
	}

	for _, expense := range expenses {
		if !expense.Date.Before(monthStart) {
			stats.MonthlyExpenses += expense.Amount
		}
		if i, ok := index[expense.Date.Format(monthLabelFormat)]; ok {
			buckets[i].Expenses += expense.Amount
		}
	}

	for i := range buckets {
		buckets[i].Profit = buckets[i].Revenue - buckets[i].Expenses
	}
	stats.Series = buckets
	stats.NetIncome = stats.MonthlyRevenue - stats.MonthlyExpenses

	for _, status := range []string{
		model.InvoiceStatusDraft,
		model.InvoiceStatusSent,
		model.InvoiceStatusPartial,
		model.InvoiceStatusPaid,
		"overdue",
	} {
		if counts[status] > 0 {
			stats.StatusBreakdown = append(stats.StatusBreakdown, StatusCount{Status: status, Count: counts[status]})
		}
	}

	return stats
}

func roundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*10) / 10
}

func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -daysSinceMonday)
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func startOfYear(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// seriesAnchor is the first bucket's start: day 1 of the month 11 months
// before now.
func seriesAnchor(now time.Time) time.Time {
	firstOfMonth := startOfMonth(now)
	return firstOfMonth.AddDate(0, -11, 0)
}

// earliestWindow is the oldest timestamp any window can reach; the week
// window can cross into the previous year in early January.
func earliestWindow(now time.Time) time.Time {
	weekStart := startOfWeek(now)
	yearStart := startOfYear(now)
	if weekStart.Before(yearStart) {
		return weekStart
	}
	return yearStart
}
