package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/freelancehub/freelancehub/internal/db"
	"github.com/freelancehub/freelancehub/internal/model"
)

// setupTestDB opens a per-test in-memory sqlite database and applies the
// real migrations, so tests exercise the actual schema including its
// unique indexes.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		t.Skipf("Skipping test, sqlite unavailable: %v", err)
	}
	// A single connection keeps the shared memory database alive for the
	// duration of the test.
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { database.Close() })
	return database
}

// seedTenant creates the user/company/client/project rows the business
// tables reference.
func seedTenant(t *testing.T, database *sqlx.DB) {
	t.Helper()
	now := time.Now().UTC()

	err := NewUserRepository(database).Create(&model.User{
		ID:        "user-1",
		Email:     "owner@test.local",
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	err = NewCompanyRepository(database).Create(&model.Company{
		ID:        "company-1",
		Name:      "Test Studio",
		Currency:  "USD",
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to seed company: %v", err)
	}

	err = NewClientRepository(database).Create(&model.Client{
		ID:        "client-1",
		CompanyID: "company-1",
		Name:      "Acme",
		Email:     "billing@acme.test",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}

	err = NewProjectRepository(database).Create(&model.Project{
		ID:        "project-1",
		CompanyID: "company-1",
		Name:      "Website",
		Status:    model.ProjectStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}
}
