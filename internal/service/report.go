package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/freelancehub/freelancehub/internal/model"
	"github.com/freelancehub/freelancehub/internal/repository"
)

type ProjectTimeRow struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
	Billable    float64 `json:"billable_amount"`
}

type CategoryExpenseRow struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

// ReportService produces the time-by-project and expenses-by-category
// breakdowns and their CSV exports.
type ReportService struct {
	entryRepo   repository.TimeEntryRepository
	expenseRepo repository.ExpenseRepository
	projectRepo repository.ProjectRepository
}

func NewReportService(
	entryRepo repository.TimeEntryRepository,
	expenseRepo repository.ExpenseRepository,
	projectRepo repository.ProjectRepository,
) *ReportService {
	return &ReportService{
		entryRepo:   entryRepo,
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
	}
}

// TimeByProject sums closed entries per project since the given time.
// The billable amount applies the project's hourly rate to its hours.
func (s *ReportService) TimeByProject(companyID string, since time.Time) ([]ProjectTimeRow, error) {
	entries, err := s.entryRepo.Since(companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}

	projects, err := s.projectRepo.Projects(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	return SumTimeByProject(entries, projects), nil
}

// SumTimeByProject is the pure aggregation; rows sort by hours
// descending so the busiest project leads.
func SumTimeByProject(entries []*model.TimeEntry, projects []*model.Project) []ProjectTimeRow {
	byID := make(map[string]*model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	seconds := make(map[string]int64)
	for _, entry := range entries {
		if entry.DurationSeconds == nil {
			continue
		}
		seconds[entry.ProjectID] += *entry.DurationSeconds
	}

	rows := make([]ProjectTimeRow, 0, len(seconds))
	for projectID, sec := range seconds {
		row := ProjectTimeRow{
			ProjectID:   projectID,
			ProjectName: "(deleted project)",
			Hours:       roundHours(sec),
		}
		if p, ok := byID[projectID]; ok {
			row.ProjectName = p.Name
			row.Billable = row.Hours * p.HourlyRate
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Hours != rows[j].Hours {
			return rows[i].Hours > rows[j].Hours
		}
		return rows[i].ProjectName < rows[j].ProjectName
	})
	return rows
}

func (s *ReportService) ExpensesByCategory(companyID string, since time.Time) ([]CategoryExpenseRow, error) {
	expenses, err := s.expenseRepo.Since(companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return SumExpensesByCategory(expenses), nil
}

// SumExpensesByCategory keeps the fixed category order so reports line
// up run to run; categories with no spend are omitted.
func SumExpensesByCategory(expenses []*model.Expense) []CategoryExpenseRow {
	amounts := make(map[string]float64)
	counts := make(map[string]int)
	for _, expense := range expenses {
		amounts[expense.Category] += expense.Amount
		counts[expense.Category]++
	}

	rows := make([]CategoryExpenseRow, 0, len(amounts))
	for _, category := range model.ExpenseCategories {
		if counts[category] == 0 {
			continue
		}
		rows = append(rows, CategoryExpenseRow{
			Category: category,
			Amount:   amounts[category],
			Count:    counts[category],
		})
	}
	return rows
}

// WriteTimeCSV streams the time report as CSV.
func (s *ReportService) WriteTimeCSV(w io.Writer, companyID string, since time.Time) error {
	rows, err := s.TimeByProject(companyID, since)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"project", "hours", "billable_amount"}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ProjectName,
			strconv.FormatFloat(row.Hours, 'f', 1, 64),
			strconv.FormatFloat(row.Billable, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExpenseCSV streams the expense report as CSV.
func (s *ReportService) WriteExpenseCSV(w io.Writer, companyID string, since time.Time) error {
	rows, err := s.ExpensesByCategory(companyID, since)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "amount", "count"}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Category,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			strconv.Itoa(row.Count),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
