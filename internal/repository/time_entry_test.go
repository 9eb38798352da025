package repository

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
)

func newEntry(id string, start time.Time, running bool) *model.TimeEntry {
	return &model.TimeEntry{
		ID:        id,
		UserID:    "user-1",
		CompanyID: "company-1",
		ProjectID: "project-1",
		StartTime: start,
		Running:   running,
		CreatedAt: start,
	}
}

func TestTimeEntryOneRunningPerUser(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewTimeEntryRepository(database)

	start := time.Now().UTC()
	if err := repo.Create(newEntry("e1", start, true)); err != nil {
		t.Fatalf("Failed to create first running entry: %v", err)
	}

	err := repo.Create(newEntry("e2", start.Add(time.Second), true))
	if err == nil {
		t.Fatal("second running entry for the same user must fail")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unique") {
		t.Errorf("expected a unique constraint error, got %v", err)
	}

	// A closed entry is allowed alongside the running one.
	closed := newEntry("e3", start.Add(-time.Hour), false)
	end := start.Add(-30 * time.Minute)
	sec := int64(1800)
	closed.EndTime = &end
	closed.DurationSeconds = &sec
	if err := repo.Create(closed); err != nil {
		t.Fatalf("Failed to create closed entry: %v", err)
	}
}

func TestTimeEntryStopGuard(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewTimeEntryRepository(database)

	start := time.Now().UTC()
	if err := repo.Create(newEntry("e1", start, true)); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	end := start.Add(time.Hour)
	if err := repo.Stop("e1", end, 3600); err != nil {
		t.Fatalf("Failed to stop entry: %v", err)
	}

	// A racing second stop affects zero rows.
	err := repo.Stop("e1", end.Add(time.Minute), 3660)
	if !errors.Is(err, ErrTimeEntryNotFound) {
		t.Fatalf("expected ErrTimeEntryNotFound on double stop, got %v", err)
	}

	stopped, err := repo.ByID("user-1", "e1")
	if err != nil {
		t.Fatalf("Failed to load entry: %v", err)
	}
	if stopped.Running {
		t.Error("entry still marked running after stop")
	}
	if stopped.DurationSeconds == nil || *stopped.DurationSeconds != 3600 {
		t.Errorf("duration = %v, want 3600 (the second stop must not rewrite it)", stopped.DurationSeconds)
	}
}

func TestTimeEntryRunningLookup(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewTimeEntryRepository(database)

	_, err := repo.Running("user-1")
	if !errors.Is(err, ErrTimeEntryNotFound) {
		t.Fatalf("expected ErrTimeEntryNotFound for idle user, got %v", err)
	}

	start := time.Now().UTC()
	if err := repo.Create(newEntry("e1", start, true)); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	entry, err := repo.Running("user-1")
	if err != nil {
		t.Fatalf("Failed to find running entry: %v", err)
	}
	if entry.ID != "e1" {
		t.Errorf("running entry = %q, want e1", entry.ID)
	}
}

func TestTimeEntrySince(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewTimeEntryRepository(database)

	cutoff := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	sec := int64(60)
	for _, e := range []*model.TimeEntry{
		newEntry("old", cutoff.AddDate(0, -1, 0), false),
		newEntry("boundary", cutoff, false),
		newEntry("recent", cutoff.AddDate(0, 0, 5), false),
	} {
		e.DurationSeconds = &sec
		if err := repo.Create(e); err != nil {
			t.Fatalf("Failed to create entry %s: %v", e.ID, err)
		}
	}

	entries, err := repo.Since("company-1", cutoff)
	if err != nil {
		t.Fatalf("Failed to query entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (boundary is inclusive)", len(entries))
	}
	if entries[0].ID != "boundary" || entries[1].ID != "recent" {
		t.Errorf("order = %q, %q; want boundary, recent", entries[0].ID, entries[1].ID)
	}
}

func TestTimeEntryDeleteGuardsRunning(t *testing.T) {
	database := setupTestDB(t)
	seedTenant(t, database)
	repo := NewTimeEntryRepository(database)

	start := time.Now().UTC()
	if err := repo.Create(newEntry("e1", start, true)); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	err := repo.Delete("user-1", "e1")
	if !errors.Is(err, ErrTimeEntryNotFound) {
		t.Fatalf("deleting a running entry must fail, got %v", err)
	}

	if err := repo.Stop("e1", start.Add(time.Minute), 60); err != nil {
		t.Fatalf("Failed to stop entry: %v", err)
	}
	if err := repo.Delete("user-1", "e1"); err != nil {
		t.Fatalf("Failed to delete stopped entry: %v", err)
	}
}
