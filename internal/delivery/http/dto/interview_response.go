package dto

import (
	"time"

	"talentflow/internal/infrastructure/directory"
	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID             uuid.UUID   `json:"id"`
	RequisitionID  uuid.UUID   `json:"requisition_id"`
	ApplicationID  uuid.UUID   `json:"application_id"`
	ScheduledDate  string      `json:"scheduled_date"`
	ScheduledTime  string      `json:"scheduled_time"`
	InterviewType  string      `json:"interview_type"`
	InterviewerIDs []uuid.UUID `json:"interviewer_ids"`
	Notes          string      `json:"notes,omitempty"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
}

type AvailabilityResponse struct {
	Date      string   `json:"date"`
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
}

type WeekResponse struct {
	Dates []string `json:"dates"`
}

type InterviewerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role,omitempty"`
}

func FromSlot(s usecase.SlotItem) SlotResponse {
	return SlotResponse{
		ID:             s.ID,
		RequisitionID:  s.RequisitionID,
		ApplicationID:  s.ApplicationID,
		ScheduledDate:  s.ScheduledDate.Format("2006-01-02"),
		ScheduledTime:  s.ScheduledTime,
		InterviewType:  string(s.InterviewType),
		InterviewerIDs: s.InterviewerIDs,
		Notes:          s.Notes,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}
}

func FromSlots(items []usecase.SlotItem) []SlotResponse {
	out := make([]SlotResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromSlot(s))
	}
	return out
}

func FromWeekDates(dates []time.Time) WeekResponse {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return WeekResponse{Dates: out}
}

func FromInterviewers(items []directory.Interviewer) []InterviewerResponse {
	out := make([]InterviewerResponse, 0, len(items))
	for _, i := range items {
		out = append(out, InterviewerResponse{
			ID:         i.ID,
			Name:       i.Name,
			Email:      i.Email,
			Department: i.Department,
			Role:       i.Role,
		})
	}
	return out
}
