package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"talentflow/internal/database"
	"talentflow/internal/domain/pipeline"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAssessmentAssigned = errors.New("assessment already assigned")
)

type Question struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Points        int      `json:"points"`
}

type Assessment struct {
	ID                uuid.UUID
	RequisitionID     uuid.UUID
	Title             string
	Description       string
	Instructions      string
	DurationMinutes   int
	PassingScore      int
	Difficulty        string
	ProctoringEnabled bool
	Questions         []Question
	CreatedAt         time.Time
}

type AssessmentAssignment struct {
	ID            uuid.UUID
	AssessmentID  uuid.UUID
	ApplicationID uuid.UUID
	Deadline      time.Time
	AssignedAt    time.Time
}

type AssessmentRepository interface {
	Create(ctx context.Context, a Assessment) (Assessment, error)
	FindByID(ctx context.Context, id uuid.UUID) (Assessment, error)
	FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]Assessment, error)
	HasAssignments(ctx context.Context, assessmentID uuid.UUID) (bool, error)
	// Assign creates one assignment per application and moves every one of
	// those applications to the given status inside a single transaction.
	// An assignment without its status flip would be an inconsistent state,
	// so neither happens unless both do.
	Assign(ctx context.Context, assessmentID uuid.UUID, applicationIDs []uuid.UUID, deadline time.Time, status pipeline.ApplicationStatus) ([]AssessmentAssignment, error)
	ListAssignments(ctx context.Context, assessmentID uuid.UUID) ([]AssessmentAssignment, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

const assessmentColumns = `id, requisition_id, title, COALESCE(description, ''), COALESCE(instructions, ''), duration_minutes, passing_score, difficulty, proctoring_enabled, questions, created_at`

func (r *PostgresAssessmentRepository) Create(ctx context.Context, a Assessment) (Assessment, error) {
	qjson, err := json.Marshal(a.Questions)
	if err != nil {
		return Assessment{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO assessments (id, requisition_id, title, description, instructions, duration_minutes, passing_score, difficulty, proctoring_enabled, questions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+assessmentColumns,
		a.ID, a.RequisitionID, a.Title, a.Description, a.Instructions,
		a.DurationMinutes, a.PassingScore, a.Difficulty, a.ProctoringEnabled, qjson, a.CreatedAt,
	)
	return scanAssessment(row)
}

func (r *PostgresAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (Assessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, id)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Assessment{}, ErrAssessmentNotFound
		}
		return Assessment{}, err
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]Assessment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE requisition_id = $1 ORDER BY created_at DESC`,
		requisitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		var a Assessment
		var qjson []byte
		if err := rows.Scan(&a.ID, &a.RequisitionID, &a.Title, &a.Description, &a.Instructions,
			&a.DurationMinutes, &a.PassingScore, &a.Difficulty, &a.ProctoringEnabled, &qjson, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(qjson, &a.Questions); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) HasAssignments(ctx context.Context, assessmentID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM assessment_assignments WHERE assessment_id = $1`, assessmentID)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresAssessmentRepository) Assign(ctx context.Context, assessmentID uuid.UUID, applicationIDs []uuid.UUID, deadline time.Time, status pipeline.ApplicationStatus) ([]AssessmentAssignment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	out := make([]AssessmentAssignment, 0, len(applicationIDs))
	for _, appID := range applicationIDs {
		asg := AssessmentAssignment{
			ID:            uuid.New(),
			AssessmentID:  assessmentID,
			ApplicationID: appID,
			Deadline:      deadline,
			AssignedAt:    now,
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO assessment_assignments (id, assessment_id, application_id, deadline, assigned_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			asg.ID, asg.AssessmentID, asg.ApplicationID, asg.Deadline, asg.AssignedAt,
		); err != nil {
			return nil, err
		}
		n, err := tx.Exec(ctx,
			`UPDATE applications SET status = $1 WHERE id = $2`, string(status), appID)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrApplicationNotFound
		}
		out = append(out, asg)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) ListAssignments(ctx context.Context, assessmentID uuid.UUID) ([]AssessmentAssignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, assessment_id, application_id, deadline, assigned_at
		 FROM assessment_assignments WHERE assessment_id = $1 ORDER BY assigned_at ASC`,
		assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AssessmentAssignment, 0)
	for rows.Next() {
		var asg AssessmentAssignment
		if err := rows.Scan(&asg.ID, &asg.AssessmentID, &asg.ApplicationID, &asg.Deadline, &asg.AssignedAt); err != nil {
			return nil, err
		}
		out = append(out, asg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanAssessment(row database.Row) (Assessment, error) {
	var a Assessment
	var qjson []byte
	if err := row.Scan(&a.ID, &a.RequisitionID, &a.Title, &a.Description, &a.Instructions,
		&a.DurationMinutes, &a.PassingScore, &a.Difficulty, &a.ProctoringEnabled, &qjson, &a.CreatedAt); err != nil {
		return Assessment{}, err
	}
	if err := json.Unmarshal(qjson, &a.Questions); err != nil {
		return Assessment{}, err
	}
	return a, nil
}
