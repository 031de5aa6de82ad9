package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talentflow/internal/database"
	"talentflow/internal/domain/pipeline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRequisitionNotFound = errors.New("requisition not found")

type Requisition struct {
	ID           uuid.UUID
	Title        string
	Department   string
	Location     string
	Description  string
	WorkflowMode pipeline.WorkflowMode
	Status       pipeline.RequisitionStatus
	CurrentStep  int
	IsActive     bool
	CreatedAt    time.Time
}

type RequisitionRepository interface {
	Create(ctx context.Context, r Requisition) (Requisition, error)
	FindByID(ctx context.Context, id uuid.UUID) (Requisition, error)
	List(ctx context.Context) ([]Requisition, error)
	// Approve flips pending_approval to approved and activates the
	// requisition. Returns false when the row was not in pending_approval.
	Approve(ctx context.Context, id uuid.UUID) (bool, error)
	// UpdateStep writes the new step. Guarded on approved so a stale caller
	// cannot move an unapproved requisition.
	UpdateStep(ctx context.Context, id uuid.UUID, step int) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	// DeleteCascade removes the requisition and everything hanging off it
	// (applications, assessments, assignments, interview slots) in one
	// transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type PostgresRequisitionRepository struct {
	db database.DB
}

func NewPostgresRequisitionRepository(db database.DB) *PostgresRequisitionRepository {
	return &PostgresRequisitionRepository{db: db}
}

const requisitionColumns = `id, title, department, location, description, workflow_mode, requisition_status, current_step, is_active, created_at`

func (r *PostgresRequisitionRepository) Create(ctx context.Context, req Requisition) (Requisition, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO requisitions (id, title, department, location, description, workflow_mode, requisition_status, current_step, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+requisitionColumns,
		req.ID, req.Title, req.Department, req.Location, req.Description,
		string(req.WorkflowMode), string(req.Status), req.CurrentStep, req.IsActive, req.CreatedAt,
	)
	return scanRequisition(row)
}

func (r *PostgresRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (Requisition, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1`, id)
	req, err := scanRequisition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Requisition{}, ErrRequisitionNotFound
		}
		return Requisition{}, err
	}
	return req, nil
}

func (r *PostgresRequisitionRepository) List(ctx context.Context) ([]Requisition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requisitionColumns+` FROM requisitions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Requisition, 0)
	for rows.Next() {
		req, err := scanRequisitionRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRequisitionRepository) Approve(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE requisitions
		 SET requisition_status = $1, is_active = TRUE
		 WHERE id = $2 AND requisition_status = $3`,
		string(pipeline.RequisitionApproved), id, string(pipeline.RequisitionPendingApproval),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRequisitionRepository) UpdateStep(ctx context.Context, id uuid.UUID, step int) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE requisitions
		 SET current_step = $1
		 WHERE id = $2 AND requisition_status = $3`,
		step, id, string(pipeline.RequisitionApproved),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresRequisitionRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`UPDATE requisitions SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequisitionNotFound
	}
	return nil
}

func (r *PostgresRequisitionRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmts := []string{
		`DELETE FROM assessment_assignments WHERE application_id IN (SELECT id FROM applications WHERE requisition_id = $1)`,
		`DELETE FROM assessments WHERE requisition_id = $1`,
		`DELETE FROM interview_slots WHERE requisition_id = $1`,
		`DELETE FROM applications WHERE requisition_id = $1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}

	n, err := tx.Exec(ctx, `DELETE FROM requisitions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequisitionNotFound
	}
	return tx.Commit(ctx)
}

func scanRequisition(row database.Row) (Requisition, error) {
	var req Requisition
	var mode, status string
	if err := row.Scan(&req.ID, &req.Title, &req.Department, &req.Location, &req.Description,
		&mode, &status, &req.CurrentStep, &req.IsActive, &req.CreatedAt); err != nil {
		return Requisition{}, err
	}
	req.WorkflowMode = pipeline.WorkflowMode(mode)
	req.Status = pipeline.RequisitionStatus(status)
	return req, nil
}

func scanRequisitionRows(rows database.Rows) (Requisition, error) {
	var req Requisition
	var mode, status string
	if err := rows.Scan(&req.ID, &req.Title, &req.Department, &req.Location, &req.Description,
		&mode, &status, &req.CurrentStep, &req.IsActive, &req.CreatedAt); err != nil {
		return Requisition{}, err
	}
	req.WorkflowMode = pipeline.WorkflowMode(mode)
	req.Status = pipeline.RequisitionStatus(status)
	return req, nil
}
