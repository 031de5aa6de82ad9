package seeder

import (
	"context"
	"fmt"

	"talentflow/internal/database"
	"talentflow/internal/domain/pipeline"
)

type RequisitionsSeeder struct{}

func (RequisitionsSeeder) Name() string { return "requisitions" }

// Demo requisitions carry fixed ids so reruns stay idempotent and the
// applications seeder can reference them.
const (
	DemoBackendRequisitionID = "6f1d2a40-9c31-4c1e-8f7a-0f38f4f1c201"
	DemoDataRequisitionID    = "6f1d2a40-9c31-4c1e-8f7a-0f38f4f1c202"
)

type demoRequisition struct {
	ID          string
	Title       string
	Department  string
	Location    string
	Description string
	Mode        string
}

var demoRequisitions = []demoRequisition{
	{
		ID:          DemoBackendRequisitionID,
		Title:       "Backend Engineer",
		Department:  "Engineering",
		Location:    "Remote",
		Description: "Go and PostgreSQL services, 3+ years experience, bachelor degree preferred.",
		Mode:        "flexible",
	},
	{
		ID:          DemoDataRequisitionID,
		Title:       "Data Analyst",
		Department:  "Analytics",
		Location:    "Jakarta",
		Description: "SQL, Python and dashboarding, 2+ years experience.",
		Mode:        "smart",
	},
}

func (RequisitionsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "requisitions",
		"id", "title", "department", "location", "description",
		"workflow_mode", "requisition_status", "current_step", "is_active", "created_at"); err != nil {
		return err
	}

	return database.WithinTx(ctx, db, func(tx database.Tx) error {
		for _, it := range demoRequisitions {
			if _, ok := pipeline.ParseWorkflowMode(it.Mode); !ok {
				return fmt.Errorf("requisition %s: unknown workflow mode %q", it.ID, it.Mode)
			}
			_, err := tx.Exec(
				ctx,
				`INSERT INTO requisitions (id, title, department, location, description, workflow_mode)
				 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
				it.ID, it.Title, it.Department, it.Location, it.Description, it.Mode,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
