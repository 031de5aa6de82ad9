package dto

import (
	"talentflow/internal/interview"

	"github.com/google/uuid"
)

type SessionResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Question      string    `json:"question,omitempty"`
	QuestionIndex int       `json:"question_index"`
	QuestionTotal int       `json:"question_total"`
	Finished      bool      `json:"finished"`
}

type WarningResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	At      string `json:"at"`
}

func FromSession(s *interview.Session) SessionResponse {
	out := SessionResponse{
		ID:            s.ID,
		ApplicationID: s.ApplicationID,
		Finished:      s.Finished(),
		QuestionTotal: s.QuestionCount(),
	}
	if q, idx, ok := s.CurrentQuestion(); ok {
		out.Question = q.Text
		out.QuestionIndex = idx
	}
	return out
}

func FromWarnings(ws []interview.Warning) []WarningResponse {
	out := make([]WarningResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, WarningResponse{
			Kind:    w.Kind,
			Message: w.Message,
			At:      w.At.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}
