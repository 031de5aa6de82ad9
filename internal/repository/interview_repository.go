package repository

import (
	"context"
	"encoding/json"
	"time"

	"talentflow/internal/database"

	"github.com/google/uuid"
)

type InterviewSlot struct {
	ID             uuid.UUID
	RequisitionID  uuid.UUID
	ApplicationID  uuid.UUID
	ScheduledDate  time.Time
	ScheduledTime  string
	InterviewType  string
	InterviewerIDs []uuid.UUID
	Notes          string
	Status         string
	CreatedAt      time.Time
}

// InterviewWarning is a persisted proctoring warning from a live session.
type InterviewWarning struct {
	ID            uuid.UUID
	SessionID     uuid.UUID
	ApplicationID uuid.UUID
	Kind          string
	Message       string
	RaisedAt      time.Time
}

type InterviewRepository interface {
	CreateSlot(ctx context.Context, s InterviewSlot) (InterviewSlot, error)
	FindSlotsByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]InterviewSlot, error)
	FindSlotsByDate(ctx context.Context, requisitionID uuid.UUID, date time.Time) ([]InterviewSlot, error)
	RecordWarning(ctx context.Context, w InterviewWarning) error
	FindWarningsByApplication(ctx context.Context, applicationID uuid.UUID) ([]InterviewWarning, error)
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

const slotColumns = `id, requisition_id, application_id, scheduled_date, scheduled_time, interview_type, interviewer_ids, COALESCE(notes, ''), status, created_at`

func (r *PostgresInterviewRepository) CreateSlot(ctx context.Context, s InterviewSlot) (InterviewSlot, error) {
	ids, err := json.Marshal(s.InterviewerIDs)
	if err != nil {
		return InterviewSlot{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO interview_slots (id, requisition_id, application_id, scheduled_date, scheduled_time, interview_type, interviewer_ids, notes, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+slotColumns,
		s.ID, s.RequisitionID, s.ApplicationID, s.ScheduledDate, s.ScheduledTime,
		s.InterviewType, ids, s.Notes, s.Status, s.CreatedAt,
	)
	return scanSlot(row)
}

func (r *PostgresInterviewRepository) FindSlotsByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]InterviewSlot, error) {
	return r.querySlots(ctx,
		`SELECT `+slotColumns+` FROM interview_slots WHERE requisition_id = $1 ORDER BY scheduled_date ASC, scheduled_time ASC`,
		requisitionID)
}

func (r *PostgresInterviewRepository) FindSlotsByDate(ctx context.Context, requisitionID uuid.UUID, date time.Time) ([]InterviewSlot, error) {
	return r.querySlots(ctx,
		`SELECT `+slotColumns+` FROM interview_slots WHERE requisition_id = $1 AND scheduled_date = $2 ORDER BY scheduled_time ASC`,
		requisitionID, date)
}

func (r *PostgresInterviewRepository) RecordWarning(ctx context.Context, w InterviewWarning) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO interview_warnings (id, session_id, application_id, kind, message, raised_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.SessionID, w.ApplicationID, w.Kind, w.Message, w.RaisedAt,
	)
	return err
}

func (r *PostgresInterviewRepository) FindWarningsByApplication(ctx context.Context, applicationID uuid.UUID) ([]InterviewWarning, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, application_id, kind, message, raised_at
		 FROM interview_warnings WHERE application_id = $1 ORDER BY raised_at ASC`,
		applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]InterviewWarning, 0)
	for rows.Next() {
		var w InterviewWarning
		if err := rows.Scan(&w.ID, &w.SessionID, &w.ApplicationID, &w.Kind, &w.Message, &w.RaisedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresInterviewRepository) querySlots(ctx context.Context, query string, args ...any) ([]InterviewSlot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]InterviewSlot, 0)
	for rows.Next() {
		var s InterviewSlot
		var ids []byte
		if err := rows.Scan(&s.ID, &s.RequisitionID, &s.ApplicationID, &s.ScheduledDate, &s.ScheduledTime,
			&s.InterviewType, &ids, &s.Notes, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(ids, &s.InterviewerIDs); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSlot(row database.Row) (InterviewSlot, error) {
	var s InterviewSlot
	var ids []byte
	if err := row.Scan(&s.ID, &s.RequisitionID, &s.ApplicationID, &s.ScheduledDate, &s.ScheduledTime,
		&s.InterviewType, &ids, &s.Notes, &s.Status, &s.CreatedAt); err != nil {
		return InterviewSlot{}, err
	}
	if err := json.Unmarshal(ids, &s.InterviewerIDs); err != nil {
		return InterviewSlot{}, err
	}
	return s, nil
}
