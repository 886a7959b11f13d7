package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func strPtr(s string) *string      { return &s }
func f64Ptr(f float64) *float64    { return &f }
func listPtr(s []string) *[]string { return &s }

func TestUserUpdateFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	update := UserUpdate{
		Bio:        strPtr("gopher"),
		HourlyRate: f64Ptr(85),
		Skills:     listPtr([]string{"go", "mongodb"}),
	}

	assert.Equal(t, bson.M{
		"updated_at":  now,
		"bio":         "gopher",
		"hourly_rate": 85.0,
		"skills":      []string{"go", "mongodb"},
	}, update.Fields(now))
}

func TestEmptyUpdateStillTouchesUpdatedAt(t *testing.T) {
	now := time.Now().UTC()

	assert.Equal(t, bson.M{"updated_at": now}, UserUpdate{}.Fields(now))
	assert.Equal(t, bson.M{"updated_at": now}, JobUpdate{}.Fields(now))
	assert.Equal(t, bson.M{"updated_at": now}, ProjectUpdate{}.Fields(now))
}

func TestJobUpdateFields(t *testing.T) {
	now := time.Now().UTC()

	update := JobUpdate{
		Title:     strPtr("Senior Backend Engineer"),
		SalaryMin: f64Ptr(90000),
		Status:    strPtr("closed"),
	}

	fields := update.Fields(now)
	assert.Equal(t, "Senior Backend Engineer", fields["title"])
	assert.Equal(t, 90000.0, fields["salary_min"])
	assert.Equal(t, "closed", fields["status"])
	assert.Equal(t, now, fields["updated_at"])
	assert.NotContains(t, fields, "description")
	assert.NotContains(t, fields, "employer_id")
}

func TestProjectUpdateFields(t *testing.T) {
	now := time.Now().UTC()

	fields := ProjectUpdate{
		BudgetType: strPtr("fixed"),
		BudgetMax:  f64Ptr(5000),
	}.Fields(now)

	assert.Equal(t, "fixed", fields["budget_type"])
	assert.Equal(t, 5000.0, fields["budget_max"])
	assert.NotContains(t, fields, "client_id")
}

func TestNewJobDefaults(t *testing.T) {
	now := time.Now().UTC()
	job := JobCreate{Title: "Backend Engineer", Description: "Build APIs"}.NewJob("owner-1", now)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "owner-1", job.EmployerID)
	assert.Equal(t, StatusActive, job.Status)
	assert.Zero(t, job.Views)
	assert.Zero(t, job.ApplicantsCount)
	assert.Equal(t, now, job.CreatedAt)
	assert.Equal(t, now, job.UpdatedAt)
	assert.NotNil(t, job.Requirements)
	assert.NotNil(t, job.Skills)
}

func TestNewProjectDefaults(t *testing.T) {
	now := time.Now().UTC()
	project := ProjectCreate{Title: "Logo design", Description: "Need a logo"}.NewProject("client-1", now)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "client-1", project.ClientID)
	assert.Equal(t, StatusActive, project.Status)
	assert.Zero(t, project.Views)
	assert.Zero(t, project.ProposalsCount)
}

func TestNewEngagementDefaults(t *testing.T) {
	now := time.Now().UTC()

	app := ApplicationCreate{JobID: "job-1"}.NewApplication("seeker-1", now)
	assert.Equal(t, StatusPending, app.Status)
	assert.Equal(t, "job-1", app.JobID)
	assert.Equal(t, "seeker-1", app.ApplicantID)

	prop := ProposalCreate{ProjectID: "proj-1", ProposedBudget: 1200}.NewProposal("fl-1", now)
	assert.Equal(t, StatusPending, prop.Status)
	assert.Equal(t, "proj-1", prop.ProjectID)
	assert.Equal(t, "fl-1", prop.FreelancerID)
	assert.Equal(t, 1200.0, prop.ProposedBudget)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("NewID produced empty or repeated id %q", id)
		}
		seen[id] = true
	}
}
