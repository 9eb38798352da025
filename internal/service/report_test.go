package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
)

func TestSumTimeByProject(t *testing.T) {
	sec := func(n int64) *int64 { return &n }
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	entries := []*model.TimeEntry{
		{ProjectID: "p1", StartTime: start, DurationSeconds: sec(3600)},
		{ProjectID: "p1", StartTime: start, DurationSeconds: sec(1800)},
		{ProjectID: "p2", StartTime: start, DurationSeconds: sec(7200)},
		// Open entry has no duration and is skipped.
		{ProjectID: "p2", StartTime: start, Running: true},
		// Entry against a project that was deleted afterwards.
		{ProjectID: "gone", StartTime: start, DurationSeconds: sec(3600)},
	}
	projects := []*model.Project{
		{ID: "p1", Name: "Website", HourlyRate: 80},
		{ID: "p2", Name: "App", HourlyRate: 100},
	}

	rows := SumTimeByProject(entries, projects)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	if rows[0].ProjectName != "App" || rows[0].Hours != 2.0 || rows[0].Billable != 200 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].ProjectName != "Website" || rows[1].Hours != 1.5 || rows[1].Billable != 120 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[2].ProjectName != "(deleted project)" || rows[2].Billable != 0 {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestSumTimeByProjectTieOrder(t *testing.T) {
	sec := int64(3600)
	entries := []*model.TimeEntry{
		{ProjectID: "p2", DurationSeconds: &sec},
		{ProjectID: "p1", DurationSeconds: &sec},
	}
	projects := []*model.Project{
		{ID: "p1", Name: "Alpha"},
		{ID: "p2", Name: "Beta"},
	}

	rows := SumTimeByProject(entries, projects)
	if rows[0].ProjectName != "Alpha" || rows[1].ProjectName != "Beta" {
		t.Errorf("equal hours must sort by name: got %q, %q", rows[0].ProjectName, rows[1].ProjectName)
	}
}

func TestSumExpensesByCategory(t *testing.T) {
	expenses := []*model.Expense{
		{Category: "software", Amount: 29.99},
		{Category: "travel", Amount: 120},
		{Category: "software", Amount: 12},
		{Category: "office", Amount: 45.50},
	}

	rows := SumExpensesByCategory(expenses)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	// Fixed category order, zero-spend categories omitted.
	want := []CategoryExpenseRow{
		{Category: "office", Amount: 45.50, Count: 1},
		{Category: "travel", Amount: 120, Count: 1},
		{Category: "software", Amount: 41.99, Count: 2},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestSumExpensesByCategoryEmpty(t *testing.T) {
	rows := SumExpensesByCategory(nil)
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %+v", rows)
	}
}

func TestWriteTimeCSV(t *testing.T) {
	sec := int64(5400)
	entryRepo := newMockEntryRepo()
	entryRepo.entries["e1"] = &model.TimeEntry{
		ID: "e1", CompanyID: "company-1", ProjectID: "p1",
		StartTime: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), DurationSeconds: &sec,
	}
	svc := NewReportService(entryRepo, &stubExpenseRepo{}, &stubProjectRepo{projects: []*model.Project{
		{ID: "p1", CompanyID: "company-1", Name: "Website", HourlyRate: 80},
	}})

	var buf bytes.Buffer
	err := svc.WriteTimeCSV(&buf, "company-1", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want 2: %q", len(lines), buf.String())
	}
	if lines[0] != "project,hours,billable_amount" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Website,1.5,120.00" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteExpenseCSV(t *testing.T) {
	svc := NewReportService(newMockEntryRepo(), &stubExpenseRepo{expenses: []*model.Expense{
		{CompanyID: "company-1", Category: "travel", Amount: 120, Date: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	}}, &stubProjectRepo{})

	var buf bytes.Buffer
	err := svc.WriteExpenseCSV(&buf, "company-1", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want 2: %q", len(lines), buf.String())
	}
	if lines[1] != "travel,120.00,1" {
		t.Errorf("row = %q", lines[1])
	}
}
