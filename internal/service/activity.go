package service

import (
	"fmt"
	"sort"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

const (
	activitySourceLimit = 10
	activityFeedLimit   = 8
)

// ActivityService builds the recent-activity feed from time entries and
// invoices. Nothing is persisted; the feed is rebuilt on every load.
type ActivityService struct {
	entryRepo   repository.TimeEntryRepository
	invoiceRepo repository.InvoiceRepository
}

func NewActivityService(entryRepo repository.TimeEntryRepository, invoiceRepo repository.InvoiceRepository) *ActivityService {
	return &ActivityService{
		entryRepo:   entryRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *ActivityService) Feed(companyID string) ([]*model.Activity, error) {
	entries, err := s.entryRepo.Recent(companyID, activitySourceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent time entries: %w", err)
	}

	invoices, err := s.invoiceRepo.Recent(companyID, activitySourceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent invoices: %w", err)
	}

	return MergeActivities(entries, invoices), nil
}

// MergeActivities emits events from both sources, merges them into one
// list sorted newest first, and truncates to the feed size. The sort is
// stable, so timestamp ties keep source+insertion order and the output
// is reproducible for identical inputs.
func MergeActivities(entries []*model.TimeEntry, invoices []*model.Invoice) []*model.Activity {
	activities := make([]*model.Activity, 0, 2*len(entries)+len(invoices))

	for _, entry := range entries {
		if entry.EndTime != nil {
			activities = append(activities, &model.Activity{
				Type:        model.ActivityTimerStopped,
				Description: "Stopped timer" + taskSuffix(entry),
				Timestamp:   *entry.EndTime,
				SourceID:    entry.ID,
			})
		}
		activities = append(activities, &model.Activity{
			Type:        model.ActivityTimerStarted,
			Description: "Started timer" + taskSuffix(entry),
			Timestamp:   entry.StartTime,
			SourceID:    entry.ID,
		})
	}

	for _, invoice := range invoices {
		activity := &model.Activity{SourceID: invoice.ID}
		switch invoice.Status {
		case model.InvoiceStatusPaid:
			activity.Type = model.ActivityInvoicePaid
			activity.Description = fmt.Sprintf("Invoice %s paid", invoice.Number)
			activity.Timestamp = invoice.UpdatedAt
		case model.InvoiceStatusSent:
			activity.Type = model.ActivityInvoiceSent
			activity.Description = fmt.Sprintf("Invoice %s sent", invoice.Number)
			activity.Timestamp = invoice.CreatedAt
		default:
			activity.Type = model.ActivityInvoiceCreated
			activity.Description = fmt.Sprintf("Invoice %s created", invoice.Number)
			activity.Timestamp = invoice.CreatedAt
		}
		activities = append(activities, activity)
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	if len(activities) > activityFeedLimit {
		activities = activities[:activityFeedLimit]
	}
	return activities
}

func taskSuffix(entry *model.TimeEntry) string {
	if entry.Task != nil && *entry.Task != "" {
		return ": " + *entry.Task
	}
	return ""
}
