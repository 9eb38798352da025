package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

var (
	ErrProjectRequired     = errors.New("a project must be selected before starting the timer")
	ErrTimerAlreadyRunning = errors.New("a timer is already running")
	ErrTimerNotRunning     = errors.New("no timer is running")
)

// TimerService is the idle/running state machine. The state lives in the
// time_entries table: the user is running exactly when a row with
// running=true exists, so a restart recovers state from the store.
type TimerService struct {
	entryRepo repository.TimeEntryRepository
}

func NewTimerService(entryRepo repository.TimeEntryRepository) *TimerService {
	return &TimerService{entryRepo: entryRepo}
}

// Start moves Idle -> Running. The pre-check gives a friendly error for
// the common case; a racing second start loses at the partial unique
// index and is reported the same way.
func (s *TimerService) Start(userID, companyID, projectID, task string, billable bool) (*model.TimeEntry, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, ErrProjectRequired
	}

	_, err := s.entryRepo.Running(userID)
	if err == nil {
		return nil, ErrTimerAlreadyRunning
	}
	if !errors.Is(err, repository.ErrTimeEntryNotFound) {
		return nil, fmt.Errorf("failed to check running entry: %w", err)
	}

	now := time.Now()
	entry := &model.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: companyID,
		ProjectID: projectID,
		StartTime: now,
		Running:   true,
		Billable:  billable,
		CreatedAt: now,
	}
	if task = strings.TrimSpace(task); task != "" {
		entry.Task = &task
	}

	err = s.entryRepo.Create(entry)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTimerAlreadyRunning
		}
		return nil, fmt.Errorf("failed to start timer: %w", err)
	}

	return entry, nil
}

// Stop moves Running -> Idle: computes the whole-second duration, closes
// the row, and returns the closed entry.
func (s *TimerService) Stop(userID string) (*model.TimeEntry, error) {
	entry, err := s.entryRepo.Running(userID)
	if errors.Is(err, repository.ErrTimeEntryNotFound) {
		return nil, ErrTimerNotRunning
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find running entry: %w", err)
	}

	end := time.Now()
	duration := int64(end.Sub(entry.StartTime).Round(time.Second) / time.Second)
	if duration < 0 {
		duration = 0
	}

	err = s.entryRepo.Stop(entry.ID, end, duration)
	if errors.Is(err, repository.ErrTimeEntryNotFound) {
		// Another stop won the race; the machine is already idle.
		return nil, ErrTimerNotRunning
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stop timer: %w", err)
	}

	entry.EndTime = &end
	entry.DurationSeconds = &duration
	entry.Running = false
	return entry, nil
}

// Running recovers the running entry on load, resuming from its start
// time. Idle users get (nil, nil), so calling this any number of times
// without a running row is a no-op.
func (s *TimerService) Running(userID string) (*model.TimeEntry, error) {
	entry, err := s.entryRepo.Running(userID)
	if errors.Is(err, repository.ErrTimeEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query running entry: %w", err)
	}
	return entry, nil
}

// Elapsed recomputes display time for a running entry.
func (s *TimerService) Elapsed(entry *model.TimeEntry, now time.Time) time.Duration {
	return entry.Elapsed(now)
}

// isUniqueViolation matches constraint errors from both supported
// drivers without importing either.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
