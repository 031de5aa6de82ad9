package seeder

import (
	"context"

	"talentflow/internal/database"
)

type ApplicationsSeeder struct{}

func (ApplicationsSeeder) Name() string { return "applications" }

func (ApplicationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "applications",
		"id", "requisition_id", "candidate_name", "candidate_email",
		"candidate_phone", "resume_ref", "source", "status", "applied_at"); err != nil {
		return err
	}

	items := []struct {
		ID     string
		Req    string
		Name   string
		Email  string
		Phone  string
		Resume string
		Source string
	}{
		{
			ID:     "2b8e6c10-5d44-4a9b-bb31-e52a7c0d9a01",
			Req:    DemoBackendRequisitionID,
			Name:   "Ana Costa",
			Email:  "ana.costa@example.com",
			Phone:  "+62 811 0000 001",
			Resume: "ana-costa.txt",
			Source: "careers_page",
		},
		{
			ID:     "2b8e6c10-5d44-4a9b-bb31-e52a7c0d9a02",
			Req:    DemoBackendRequisitionID,
			Name:   "Budi Santoso",
			Email:  "budi.santoso@example.com",
			Phone:  "+62 811 0000 002",
			Resume: "budi-santoso.pdf",
			Source: "referral",
		},
		{
			ID:     "2b8e6c10-5d44-4a9b-bb31-e52a7c0d9a03",
			Req:    DemoDataRequisitionID,
			Name:   "Clara Wijaya",
			Email:  "clara.wijaya@example.com",
			Phone:  "",
			Resume: "",
			Source: "talent_board",
		},
	}

	return database.WithinTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO applications (id, requisition_id, candidate_name, candidate_email, candidate_phone, resume_ref, source)
				 VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
				it.ID, it.Req, it.Name, it.Email, it.Phone, it.Resume, it.Source,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
