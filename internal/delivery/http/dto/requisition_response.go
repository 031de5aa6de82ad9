package dto

import (
	"time"

	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

type RequisitionResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Department   string    `json:"department"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	WorkflowMode string    `json:"workflow_mode"`
	Status       string    `json:"status"`
	CurrentStep  int       `json:"current_step"`
	StepName     string    `json:"step_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromRequisition(r usecase.RequisitionItem) RequisitionResponse {
	return RequisitionResponse{
		ID:           r.ID,
		Title:        r.Title,
		Department:   r.Department,
		Location:     r.Location,
		Description:  r.Description,
		WorkflowMode: string(r.WorkflowMode),
		Status:       string(r.Status),
		CurrentStep:  r.CurrentStep,
		StepName:     r.StepName,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
	}
}

func FromRequisitions(items []usecase.RequisitionItem) []RequisitionResponse {
	out := make([]RequisitionResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromRequisition(r))
	}
	return out
}
