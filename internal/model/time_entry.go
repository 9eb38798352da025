package model

import "time"

// TimeEntry is a single tracked work session. At most one entry per user
// may have Running=true; the schema enforces this with a partial unique
// index so racing starts cannot both win.
type TimeEntry struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	CompanyID       string     `db:"company_id" json:"company_id"`
	ProjectID       string     `db:"project_id" json:"project_id"`
	Task            *string    `db:"task" json:"task,omitempty"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         *time.Time `db:"end_time" json:"end_time,omitempty"`
	DurationSeconds *int64     `db:"duration_seconds" json:"duration_seconds,omitempty"`
	Running         bool       `db:"running" json:"running"`
	Billable        bool       `db:"billable" json:"billable"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Elapsed returns the time accumulated so far. For a running entry this is
// now minus start; for a closed entry it is the stored duration.
func (e *TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.Running {
		return now.Sub(e.StartTime)
	}
	if e.DurationSeconds != nil {
		return time.Duration(*e.DurationSeconds) * time.Second
	}
	return 0
}
