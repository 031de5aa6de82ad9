package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/pkg/questiongen"

	"github.com/google/uuid"
)

// Walks one requisition from creation through assessment assignment the way
// an operator would drive it.
func TestHiringWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()

	reqRepo := newMemRequisitionRepo()
	appRepo := newMemApplicationRepo()
	asmRepo := newMemAssessmentRepo(appRepo)
	resumes := &memResumeSource{texts: map[string]string{"cv-ana": testResume}}

	reqUC := NewRequisitionUsecase(reqRepo, nil)
	appUC := NewApplicationUsecase(appRepo, reqRepo, 4, nil)
	scoringUC := NewScoringUsecase(appRepo, reqRepo, resumes, newMemScoreCache(), nil)
	asmUC := NewAssessmentUsecase(asmRepo, appRepo, reqRepo, questiongen.NewBank(7), nil)

	// Open the requisition.
	r, err := reqUC.Create(ctx, CreateRequisitionInput{
		Title:        "Backend Engineer",
		Department:   "Engineering",
		Location:     "Remote",
		Description:  "We need a Go and PostgreSQL backend engineer with 3+ years of experience.",
		WorkflowMode: "flexible",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Status != pipeline.RequisitionPendingApproval || r.CurrentStep != pipeline.StepRequisition {
		t.Fatalf("fresh requisition in wrong state: %+v", r)
	}

	// Nothing moves before approval.
	if _, err := reqUC.Advance(ctx, r.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("advance before approval must fail, got %v", err)
	}

	if r, err = reqUC.Approve(ctx, r.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// Step through posting into sourcing.
	for r.CurrentStep < pipeline.StepSourcing {
		if r, err = reqUC.Advance(ctx, r.ID); err != nil {
			t.Fatalf("Advance at step %d: %v", r.CurrentStep, err)
		}
	}
	if r.StepName != "Sourcing" {
		t.Fatalf("step name = %q at step %d", r.StepName, r.CurrentStep)
	}

	// A candidate applies while sourcing is open.
	app, err := appUC.Submit(ctx, SubmitApplicationInput{
		RequisitionID:  r.ID,
		CandidateName:  "Ana Costa",
		CandidateEmail: "ana@example.com",
		ResumeRef:      "cv-ana",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if app.Status != pipeline.StatusReceived {
		t.Fatalf("new application status = %q", app.Status)
	}

	// Move into screening and score the pool.
	if r, err = reqUC.Advance(ctx, r.ID); err != nil {
		t.Fatalf("Advance to screening: %v", err)
	}
	res, err := scoringUC.ScoreApplication(ctx, app.ID)
	if err != nil {
		t.Fatalf("ScoreApplication: %v", err)
	}
	if res.Breakdown.OverallScore < 0 || res.Breakdown.OverallScore > 100 {
		t.Fatalf("score out of range: %d", res.Breakdown.OverallScore)
	}

	// Shortlist via the bulk path, then enter the assessment step.
	report, err := appUC.BulkSetStatus(ctx, []uuid.UUID{app.ID}, "shortlisted")
	if err != nil {
		t.Fatalf("BulkSetStatus: %v", err)
	}
	if report.Succeeded != 1 || report.Failed != 0 {
		t.Fatalf("bulk report = %+v", report)
	}
	if r, err = reqUC.Advance(ctx, r.ID); err != nil {
		t.Fatalf("Advance to assessment: %v", err)
	}
	if r.CurrentStep != pipeline.StepAssessment {
		t.Fatalf("current step = %d, want %d", r.CurrentStep, pipeline.StepAssessment)
	}

	// Configure and send the assessment to the shortlist.
	qs, err := asmUC.GenerateQuestions(ctx, r.ID, "medium")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if len(qs) != questiongen.QuestionCount(questiongen.DifficultyMedium) {
		t.Fatalf("medium set has %d questions", len(qs))
	}
	created, err := asmUC.Create(ctx, r.ID, AssessmentSettings{
		Title:           "Backend Engineer Assessment",
		DurationMinutes: 60,
		PassingScore:    60,
		Difficulty:      "medium",
	}, qs)
	if err != nil {
		t.Fatalf("Create assessment: %v", err)
	}

	assignReport, err := asmUC.Assign(ctx, created.ID, 48)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(assignReport.Assignments) != 1 {
		t.Fatalf("expected exactly one assignment, got %d", len(assignReport.Assignments))
	}
	asg := assignReport.Assignments[0]
	if asg.ApplicationID != app.ID {
		t.Fatalf("assignment for %s, want %s", asg.ApplicationID, app.ID)
	}
	if d := asg.Deadline.Sub(asg.AssignedAt.Add(48 * time.Hour)); d < -time.Minute || d > time.Minute {
		t.Fatalf("deadline %v not 48h after assignment", asg.Deadline)
	}

	got, err := appUC.Get(ctx, app.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != pipeline.StatusAssessment {
		t.Fatalf("application status after assign = %q", got.Status)
	}

	// Drive the requisition to the end and close it out.
	for r.CurrentStep < pipeline.StepOnboarding {
		if r, err = reqUC.Advance(ctx, r.ID); err != nil {
			t.Fatalf("Advance at step %d: %v", r.CurrentStep, err)
		}
	}
	if r, err = reqUC.Complete(ctx, r.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if r.IsActive {
		t.Fatalf("completed requisition still active")
	}
}

// The scheduling flow rejects an empty panel but asks for nothing beyond a
// single interviewer.
func TestInterviewSchedulingEndToEnd(t *testing.T) {
	ctx := context.Background()

	reqRepo := newMemRequisitionRepo()
	appRepo := newMemApplicationRepo()
	reqUC := NewRequisitionUsecase(reqRepo, nil)
	appUC := NewApplicationUsecase(appRepo, reqRepo, 2, nil)
	ivUC := NewInterviewUsecase(newMemInterviewRepo(), appRepo, nil, nil)

	r, err := reqUC.Create(ctx, validRequisitionInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	app, err := appUC.Submit(ctx, SubmitApplicationInput{
		RequisitionID:  r.ID,
		CandidateName:  "Ana Costa",
		CandidateEmail: "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	in := ScheduleInput{
		ApplicationID: app.ID,
		Date:          testWeekday,
		Time:          "14:30",
		Type:          "technical",
	}
	if _, err := ivUC.Schedule(ctx, in); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty interviewer set must be rejected, got %v", err)
	}

	in.InterviewerIDs = []uuid.UUID{uuid.New()}
	slot, err := ivUC.Schedule(ctx, in)
	if err != nil {
		t.Fatalf("Schedule with one interviewer: %v", err)
	}
	if slot.Status != SlotStatusScheduled {
		t.Fatalf("slot status = %q", slot.Status)
	}

	_, afternoon, err := ivUC.AvailableSlots(ctx, r.ID, testWeekday)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	for _, s := range afternoon {
		if s == "14:30" {
			t.Fatalf("booked slot still offered")
		}
	}
}
