package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Steps of the hiring pipeline, in order. A requisition's current step is
// always one of these values.
const (
	StepRequisition = 0
	StepPosting     = 1
	StepSourcing    = 2
	StepScreening   = 3
	StepAssessment  = 4
	StepInterview   = 5
	StepRanking     = 6
	StepOffer       = 7
	StepBackground  = 8
	StepOnboarding  = 9

	MinStep = StepRequisition
	MaxStep = StepOnboarding
)

var stepNames = [...]string{
	"Requisition",
	"Posting",
	"Sourcing",
	"Screening",
	"Assessment",
	"Interview",
	"Ranking",
	"Offer",
	"Background Check",
	"Onboarding",
}

var ErrUnknownStep = errors.New("unknown pipeline step")

func StepName(step int) (string, error) {
	if step < MinStep || step > MaxStep {
		return "", fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	return stepNames[step], nil
}

func ValidStep(step int) bool {
	return step >= MinStep && step <= MaxStep
}

type WorkflowMode string

const (
	ModeMandatory WorkflowMode = "mandatory"
	ModeFlexible  WorkflowMode = "flexible"
	ModeSmart     WorkflowMode = "smart"
)

func ParseWorkflowMode(s string) (WorkflowMode, bool) {
	switch WorkflowMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMandatory:
		return ModeMandatory, true
	case ModeFlexible:
		return ModeFlexible, true
	case ModeSmart:
		return ModeSmart, true
	}
	return "", false
}

type RequisitionStatus string

const (
	RequisitionPendingApproval RequisitionStatus = "pending_approval"
	RequisitionApproved        RequisitionStatus = "approved"
)

type ApplicationStatus string

const (
	StatusReceived           ApplicationStatus = "received"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusRejected           ApplicationStatus = "rejected"
	StatusAssessment         ApplicationStatus = "assessment"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewCompleted ApplicationStatus = "interview_completed"
)

var applicationStatuses = map[ApplicationStatus]bool{
	StatusReceived:           true,
	StatusUnderReview:        true,
	StatusShortlisted:        true,
	StatusRejected:           true,
	StatusAssessment:         true,
	StatusInterviewScheduled: true,
	StatusInterviewCompleted: true,
}

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	st := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	if applicationStatuses[st] {
		return st, true
	}
	return "", false
}

// recommendedTransitions is advisory only. Observed reviewer behavior allows
// any status to be set to any other, so writes are never rejected based on
// this table; it feeds the `recommended` flag on status-change responses.
var recommendedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusReceived:           {StatusUnderReview, StatusShortlisted, StatusRejected},
	StatusUnderReview:        {StatusShortlisted, StatusRejected},
	StatusShortlisted:        {StatusUnderReview, StatusAssessment, StatusInterviewScheduled, StatusRejected},
	StatusAssessment:         {StatusShortlisted, StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusInterviewCompleted, StatusRejected},
	StatusInterviewCompleted: {},
	StatusRejected:           {},
}

func IsRecommendedTransition(from, to ApplicationStatus) bool {
	if from == to {
		return true
	}
	for _, s := range recommendedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TerminalStatus reports statuses that forward workflow actions treat as
// final even though writes remain unguarded.
func TerminalStatus(s ApplicationStatus) bool {
	return s == StatusRejected || s == StatusInterviewCompleted
}
