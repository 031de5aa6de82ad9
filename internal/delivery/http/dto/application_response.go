package dto

import (
	"time"

	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID `json:"id"`
	RequisitionID  uuid.UUID `json:"requisition_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	CandidatePhone string    `json:"candidate_phone,omitempty"`
	ResumeRef      string    `json:"resume_ref,omitempty"`
	Source         string    `json:"source,omitempty"`
	Status         string    `json:"status"`
	AIFitScore     *int      `json:"ai_fit_score"`
	AppliedAt      time.Time `json:"applied_at"`
}

type StatusChangeResponse struct {
	Application ApplicationResponse `json:"application"`
	Recommended bool                `json:"recommended"`
}

type BulkFailureResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Reason        string    `json:"reason"`
}

type BulkStatusResponse struct {
	Requested int                   `json:"requested"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Failures  []BulkFailureResponse `json:"failures"`
}

func FromApplication(a usecase.ApplicationItem) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		RequisitionID:  a.RequisitionID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		CandidatePhone: a.CandidatePhone,
		ResumeRef:      a.ResumeRef,
		Source:         a.Source,
		Status:         string(a.Status),
		AIFitScore:     a.AIFitScore,
		AppliedAt:      a.AppliedAt,
	}
}

func FromApplications(items []usecase.ApplicationItem) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromApplication(a))
	}
	return out
}

func FromStatusChange(ch usecase.StatusChange) StatusChangeResponse {
	return StatusChangeResponse{
		Application: FromApplication(ch.Application),
		Recommended: ch.Recommended,
	}
}

func FromBulkReport(r usecase.BulkStatusReport) BulkStatusResponse {
	failures := make([]BulkFailureResponse, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, BulkFailureResponse{ApplicationID: f.ApplicationID, Reason: f.Reason})
	}
	return BulkStatusResponse{
		Requested: r.Requested,
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
		Failures:  failures,
	}
}
