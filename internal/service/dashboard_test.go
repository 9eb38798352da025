package service

import (
	"testing"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
)

// Wednesday June 17 2026. Week starts Monday June 15, month June 1,
// year Jan 1, series anchor July 1 2025.
var statsNow = time.Date(2026, time.June, 17, 12, 0, 0, 0, time.UTC)

func closedEntry(start time.Time, seconds int64, task string) *model.TimeEntry {
	e := &model.TimeEntry{StartTime: start, DurationSeconds: &seconds}
	if task != "" {
		e.Task = &task
	}
	return e
}

func paidInvoice(total float64, created time.Time) *model.Invoice {
	return &model.Invoice{Status: model.InvoiceStatusPaid, Total: total, CreatedAt: created}
}

func TestComputeStatsHourWindows(t *testing.T) {
	entries := []*model.TimeEntry{
		// This week, billable task.
		closedEntry(time.Date(2026, time.June, 16, 9, 0, 0, 0, time.UTC), 3600, "design"),
		// Earlier this month, no task.
		closedEntry(time.Date(2026, time.June, 2, 9, 0, 0, 0, time.UTC), 1800, ""),
		// Earlier this year.
		closedEntry(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), 7200, "dev"),
		// Still running, no duration yet; must not count.
		{StartTime: time.Date(2026, time.June, 17, 11, 0, 0, 0, time.UTC), Running: true},
	}

	stats := ComputeStats(entries, nil, nil, nil, 0, 0, statsNow)

	if stats.HoursWeek != 1.0 {
		t.Errorf("HoursWeek = %v, want 1.0", stats.HoursWeek)
	}
	if stats.HoursMonth != 1.5 {
		t.Errorf("HoursMonth = %v, want 1.5", stats.HoursMonth)
	}
	if stats.HoursYear != 3.5 {
		t.Errorf("HoursYear = %v, want 3.5", stats.HoursYear)
	}
	if stats.BillableHoursMonth != 1.0 {
		t.Errorf("BillableHoursMonth = %v, want 1.0", stats.BillableHoursMonth)
	}
}

func TestComputeStatsUnpaidAndOverdue(t *testing.T) {
	unpaid := []*model.Invoice{
		{Status: model.InvoiceStatusSent, Total: 500, DueDate: statsNow.AddDate(0, 0, -3)},
		{Status: model.InvoiceStatusSent, Total: 200, DueDate: statsNow.AddDate(0, 0, 10)},
		{Status: model.InvoiceStatusDraft, Total: 100, DueDate: statsNow.AddDate(0, 0, -30)},
		{Status: model.InvoiceStatusPartial, Total: 50, DueDate: statsNow.AddDate(0, 0, 5)},
	}

	stats := ComputeStats(nil, nil, unpaid, nil, 0, 0, statsNow)

	if stats.UnpaidTotal != 850 {
		t.Errorf("UnpaidTotal = %v, want 850", stats.UnpaidTotal)
	}
	// Only the sent invoice past due counts; drafts never go overdue.
	if stats.OverdueTotal != 500 {
		t.Errorf("OverdueTotal = %v, want 500", stats.OverdueTotal)
	}
}

func TestComputeStatsRevenueWindows(t *testing.T) {
	paid := []*model.Invoice{
		paidInvoice(1000, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)),
		paidInvoice(400, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)),
		// Last year: in the 12-month series but not in yearly revenue.
		paidInvoice(300, time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)),
	}
	expenses := []*model.Expense{
		{Amount: 150, Date: time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{Amount: 80, Date: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)},
	}

	stats := ComputeStats(nil, paid, nil, expenses, 0, 0, statsNow)

	if stats.MonthlyRevenue != 1000 {
		t.Errorf("MonthlyRevenue = %v, want 1000", stats.MonthlyRevenue)
	}
	if stats.YearlyRevenue != 1400 {
		t.Errorf("YearlyRevenue = %v, want 1400", stats.YearlyRevenue)
	}
	if stats.MonthlyExpenses != 150 {
		t.Errorf("MonthlyExpenses = %v, want 150", stats.MonthlyExpenses)
	}
	if stats.NetIncome != 850 {
		t.Errorf("NetIncome = %v, want 850", stats.NetIncome)
	}
}

func TestComputeStatsSeriesBuckets(t *testing.T) {
	paid := []*model.Invoice{
		// First bucket, on the anchor day itself.
		paidInvoice(100, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)),
		// Current month, last bucket.
		paidInvoice(900, time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)),
		// Before the anchor: dropped from the series entirely.
		paidInvoice(9999, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)),
	}
	expenses := []*model.Expense{
		{Amount: 40, Date: time.Date(2026, time.June, 4, 0, 0, 0, 0, time.UTC)},
	}

	stats := ComputeStats(nil, paid, nil, expenses, 0, 0, statsNow)

	if len(stats.Series) != 12 {
		t.Fatalf("series length = %d, want 12", len(stats.Series))
	}
	if stats.Series[0].Label != "Jul 25" {
		t.Errorf("first bucket label = %q, want %q", stats.Series[0].Label, "Jul 25")
	}
	if stats.Series[11].Label != "Jun 26" {
		t.Errorf("last bucket label = %q, want %q", stats.Series[11].Label, "Jun 26")
	}
	if stats.Series[0].Revenue != 100 {
		t.Errorf("first bucket revenue = %v, want 100", stats.Series[0].Revenue)
	}
	if stats.Series[11].Revenue != 900 {
		t.Errorf("last bucket revenue = %v, want 900", stats.Series[11].Revenue)
	}
	if stats.Series[11].Expenses != 40 {
		t.Errorf("last bucket expenses = %v, want 40", stats.Series[11].Expenses)
	}
	if stats.Series[11].Profit != 860 {
		t.Errorf("last bucket profit = %v, want 860", stats.Series[11].Profit)
	}

	var total float64
	for _, b := range stats.Series {
		total += b.Revenue
	}
	if total != 1000 {
		t.Errorf("series revenue sum = %v, want 1000 (out-of-window invoice must be dropped)", total)
	}
}

func TestComputeStatsStatusBreakdown(t *testing.T) {
	unpaid := []*model.Invoice{
		{Status: model.InvoiceStatusSent, Total: 500, DueDate: statsNow.AddDate(0, 0, -3)},
		{Status: model.InvoiceStatusSent, Total: 200, DueDate: statsNow.AddDate(0, 0, 10)},
		{Status: model.InvoiceStatusDraft, Total: 100, DueDate: statsNow},
	}
	paid := []*model.Invoice{
		paidInvoice(1000, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)),
	}

	stats := ComputeStats(nil, paid, unpaid, nil, 0, 0, statsNow)

	want := []StatusCount{
		{Status: "draft", Count: 1},
		{Status: "sent", Count: 2},
		{Status: "paid", Count: 1},
		{Status: "overdue", Count: 1},
	}
	if len(stats.StatusBreakdown) != len(want) {
		t.Fatalf("breakdown = %+v, want %+v", stats.StatusBreakdown, want)
	}
	for i, w := range want {
		got := stats.StatusBreakdown[i]
		if got.Status != w.Status || got.Count != w.Count {
			t.Errorf("breakdown[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// Wednesday.
		{time.Date(2026, time.June, 17, 12, 0, 0, 0, time.UTC), time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)},
		// Monday maps to itself at midnight.
		{time.Date(2026, time.June, 15, 23, 0, 0, 0, time.UTC), time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the week that started six days back.
		{time.Date(2026, time.June, 21, 1, 0, 0, 0, time.UTC), time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := startOfWeek(c.now)
		if !got.Equal(c.want) {
			t.Errorf("startOfWeek(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestEarliestWindowCrossesYearBoundary(t *testing.T) {
	// Friday Jan 2 2026: the week began Monday Dec 29 2025.
	jan := time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC)
	got := earliestWindow(jan)
	want := time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("earliestWindow = %v, want %v", got, want)
	}

	// Mid-year the year start is older than the week start.
	got = earliestWindow(statsNow)
	want = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("earliestWindow = %v, want %v", got, want)
	}
}

func TestRoundHours(t *testing.T) {
	cases := []struct {
		seconds int64
		want    float64
	}{
		{0, 0},
		{1800, 0.5},
		{3600, 1.0},
		{5400, 1.5},
		{5940, 1.7},
		{90, 0},
	}
	for _, c := range cases {
		if got := roundHours(c.seconds); got != c.want {
			t.Errorf("roundHours(%d) = %v, want %v", c.seconds, got, c.want)
		}
	}
}
