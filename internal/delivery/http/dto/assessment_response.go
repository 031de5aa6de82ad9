package dto

import (
	"time"

	"talentflow/internal/repository"
	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

type QuestionResponse struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Points        int      `json:"points"`
}

type AssessmentResponse struct {
	ID                uuid.UUID          `json:"id"`
	RequisitionID     uuid.UUID          `json:"requisition_id"`
	Title             string             `json:"title"`
	Description       string             `json:"description,omitempty"`
	Instructions      string             `json:"instructions,omitempty"`
	DurationMinutes   int                `json:"duration_minutes"`
	PassingScore      int                `json:"passing_score"`
	Difficulty        string             `json:"difficulty"`
	ProctoringEnabled bool               `json:"proctoring_enabled"`
	Questions         []QuestionResponse `json:"questions"`
	CreatedAt         time.Time          `json:"created_at"`
}

type AssignmentResponse struct {
	ID            uuid.UUID `json:"id"`
	AssessmentID  uuid.UUID `json:"assessment_id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Deadline      time.Time `json:"deadline"`
	AssignedAt    time.Time `json:"assigned_at"`
}

type AssignReportResponse struct {
	Assessment  AssessmentResponse   `json:"assessment"`
	Assignments []AssignmentResponse `json:"assignments"`
}

func FromQuestion(q repository.Question) QuestionResponse {
	return QuestionResponse{
		Text:          q.Text,
		Type:          q.Type,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
	}
}

func FromQuestions(qs []repository.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuestion(q))
	}
	return out
}

func FromAssessment(a usecase.AssessmentItem) AssessmentResponse {
	return AssessmentResponse{
		ID:                a.ID,
		RequisitionID:     a.RequisitionID,
		Title:             a.Title,
		Description:       a.Description,
		Instructions:      a.Instructions,
		DurationMinutes:   a.DurationMinutes,
		PassingScore:      a.PassingScore,
		Difficulty:        a.Difficulty,
		ProctoringEnabled: a.ProctoringEnabled,
		Questions:         FromQuestions(a.Questions),
		CreatedAt:         a.CreatedAt,
	}
}

func FromAssignReport(r usecase.AssignReport) AssignReportResponse {
	assignments := make([]AssignmentResponse, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		assignments = append(assignments, AssignmentResponse{
			ID:            a.ID,
			AssessmentID:  a.AssessmentID,
			ApplicationID: a.ApplicationID,
			Deadline:      a.Deadline,
			AssignedAt:    a.AssignedAt,
		})
	}
	return AssignReportResponse{
		Assessment:  FromAssessment(r.Assessment),
		Assignments: assignments,
	}
}
