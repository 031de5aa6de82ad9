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

var ErrApplicationNotFound = errors.New("application not found")

type Application struct {
	ID             uuid.UUID
	RequisitionID  uuid.UUID
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	ResumeRef      string
	Source         string
	Status         pipeline.ApplicationStatus
	AIFitScore     *int
	AppliedAt      time.Time
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (Application, error)
	FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]Application, error)
	FindByRequisitionAndStatus(ctx context.Context, requisitionID uuid.UUID, status pipeline.ApplicationStatus) ([]Application, error)
	// UpdateStatus is a plain overwrite; whoever writes last wins.
	UpdateStatus(ctx context.Context, id uuid.UUID, status pipeline.ApplicationStatus) (Application, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score int) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, requisition_id, candidate_name, candidate_email, COALESCE(candidate_phone, ''), COALESCE(resume_ref, ''), COALESCE(source, ''), status, ai_fit_score, applied_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) (Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, requisition_id, candidate_name, candidate_email, candidate_phone, resume_ref, source, status, ai_fit_score, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+applicationColumns,
		a.ID, a.RequisitionID, a.CandidateName, a.CandidateEmail, a.CandidatePhone,
		a.ResumeRef, a.Source, string(a.Status), a.AIFitScore, a.AppliedAt,
	)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]Application, error) {
	return r.queryApplications(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE requisition_id = $1 ORDER BY applied_at ASC`,
		requisitionID)
}

func (r *PostgresApplicationRepository) FindByRequisitionAndStatus(ctx context.Context, requisitionID uuid.UUID, status pipeline.ApplicationStatus) ([]Application, error) {
	return r.queryApplications(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE requisition_id = $1 AND status = $2 ORDER BY applied_at ASC`,
		requisitionID, string(status))
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status pipeline.ApplicationStatus) (Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2 RETURNING `+applicationColumns,
		string(status), id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET ai_fit_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0)
	for rows.Next() {
		var a Application
		var status string
		if err := rows.Scan(&a.ID, &a.RequisitionID, &a.CandidateName, &a.CandidateEmail,
			&a.CandidatePhone, &a.ResumeRef, &a.Source, &status, &a.AIFitScore, &a.AppliedAt); err != nil {
			return nil, err
		}
		a.Status = pipeline.ApplicationStatus(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (Application, error) {
	var a Application
	var status string
	if err := row.Scan(&a.ID, &a.RequisitionID, &a.CandidateName, &a.CandidateEmail,
		&a.CandidatePhone, &a.ResumeRef, &a.Source, &status, &a.AIFitScore, &a.AppliedAt); err != nil {
		return Application{}, err
	}
	a.Status = pipeline.ApplicationStatus(status)
	return a, nil
}
