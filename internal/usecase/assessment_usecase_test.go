package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/pkg/questiongen"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

// assessmentHarness wires a requisition with n applications, shortlisting
// the first `shortlist` of them.
func assessmentHarness(t *testing.T, n, shortlist int) (*Assessment, *memAssessmentRepo, uuid.UUID, []uuid.UUID) {
	t.Helper()
	reqRepo := newMemRequisitionRepo()
	appRepo := newMemApplicationRepo()
	reqUC := NewRequisitionUsecase(reqRepo, nil)
	appUC := NewApplicationUsecase(appRepo, reqRepo, 4, nil)

	r, err := reqUC.Create(context.Background(), validRequisitionInput())
	if err != nil {
		t.Fatalf("Create requisition: %v", err)
	}

	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		a, err := appUC.Submit(context.Background(), SubmitApplicationInput{
			RequisitionID:  r.ID,
			CandidateName:  "Candidate",
			CandidateEmail: "candidate@example.com",
		})
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		ids = append(ids, a.ID)
	}
	for i := 0; i < shortlist; i++ {
		if _, err := appUC.SetStatus(context.Background(), ids[i], "shortlisted"); err != nil {
			t.Fatalf("shortlist %d: %v", i, err)
		}
	}

	asmRepo := newMemAssessmentRepo(appRepo)
	asmUC := NewAssessmentUsecase(asmRepo, appRepo, reqRepo, questiongen.NewBank(1), nil)
	return asmUC, asmRepo, r.ID, ids
}

func validSettings() AssessmentSettings {
	return AssessmentSettings{
		Title:           "Backend Skill Assessment",
		DurationMinutes: 60,
		PassingScore:    60,
		Difficulty:      "medium",
	}
}

func TestGenerateQuestions(t *testing.T) {
	asmUC, _, reqID, _ := assessmentHarness(t, 0, 0)

	for _, tc := range []struct {
		difficulty string
		want       int
	}{
		{"easy", 5},
		{"medium", 8},
		{"hard", 12},
	} {
		qs, err := asmUC.GenerateQuestions(context.Background(), reqID, tc.difficulty)
		if err != nil {
			t.Fatalf("GenerateQuestions(%s): %v", tc.difficulty, err)
		}
		if len(qs) != tc.want {
			t.Fatalf("difficulty %s produced %d questions, want %d", tc.difficulty, len(qs), tc.want)
		}
		for i, q := range qs {
			if q.Text == "" {
				t.Fatalf("question %d has no text", i)
			}
			if q.Points <= 0 {
				t.Fatalf("question %d has no points", i)
			}
		}
	}

	if _, err := asmUC.GenerateQuestions(context.Background(), reqID, "brutal"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown difficulty should be rejected, got %v", err)
	}
}

func TestCreateAssessmentValidation(t *testing.T) {
	asmUC, _, reqID, _ := assessmentHarness(t, 0, 0)
	questions := []repository.Question{{Text: "Explain goroutines.", Type: questiongen.TypeText, Points: 10}}

	cases := []struct {
		name   string
		mutate func(*AssessmentSettings)
	}{
		{"duration too short", func(s *AssessmentSettings) { s.DurationMinutes = 10 }},
		{"duration too long", func(s *AssessmentSettings) { s.DurationMinutes = 200 }},
		{"negative passing score", func(s *AssessmentSettings) { s.PassingScore = -1 }},
		{"passing score over 100", func(s *AssessmentSettings) { s.PassingScore = 101 }},
		{"unknown difficulty", func(s *AssessmentSettings) { s.Difficulty = "impossible" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			if _, err := asmUC.Create(context.Background(), reqID, s, questions); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	if _, err := asmUC.Create(context.Background(), reqID, validSettings(), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty question set should be rejected")
	}

	created, err := asmUC.Create(context.Background(), reqID, AssessmentSettings{
		DurationMinutes: 60,
		PassingScore:    60,
		Difficulty:      "medium",
	}, questions)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Skill Assessment" {
		t.Fatalf("blank title should fall back to default, got %q", created.Title)
	}
}

func TestAssignToShortlisted(t *testing.T) {
	asmUC, asmRepo, reqID, ids := assessmentHarness(t, 3, 1)

	qs, err := asmUC.GenerateQuestions(context.Background(), reqID, "medium")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	created, err := asmUC.Create(context.Background(), reqID, validSettings(), qs)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	before := time.Now().UTC()
	report, err := asmUC.Assign(context.Background(), created.ID, 48)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(report.Assignments) != 1 {
		t.Fatalf("expected exactly 1 assignment, got %d", len(report.Assignments))
	}
	asg := report.Assignments[0]
	if asg.ApplicationID != ids[0] {
		t.Fatalf("assignment went to %s, want shortlisted %s", asg.ApplicationID, ids[0])
	}

	wantDeadline := asg.AssignedAt.Add(48 * time.Hour)
	if d := asg.Deadline.Sub(wantDeadline); d < -time.Minute || d > time.Minute {
		t.Fatalf("deadline %v not 48h after assignment %v", asg.Deadline, asg.AssignedAt)
	}
	if asg.Deadline.Before(before.Add(47 * time.Hour)) {
		t.Fatalf("deadline %v is too early", asg.Deadline)
	}

	// Assigned applications flip to the assessment status in the same step.
	apps, err := asmRepo.apps.FindByRequisitionAndStatus(context.Background(), reqID, pipeline.StatusAssessment)
	if err != nil {
		t.Fatalf("FindByRequisitionAndStatus: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != ids[0] {
		t.Fatalf("expected only %s in assessment status, got %+v", ids[0], apps)
	}
}

func TestAssignNoEligibleCandidates(t *testing.T) {
	asmUC, asmRepo, reqID, _ := assessmentHarness(t, 3, 0)

	qs, err := asmUC.GenerateQuestions(context.Background(), reqID, "easy")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	created, err := asmUC.Create(context.Background(), reqID, validSettings(), qs)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = asmUC.Assign(context.Background(), created.ID, 48)
	if !errors.Is(err, ErrNoEligibleCandidates) {
		t.Fatalf("expected ErrNoEligibleCandidates, got %v", err)
	}

	// Nothing may be written when nobody is eligible.
	asgs, err := asmRepo.ListAssignments(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ListAssignments: %v", err)
	}
	if len(asgs) != 0 {
		t.Fatalf("expected zero assignments after failed send, got %d", len(asgs))
	}
}

func TestAssignImmutableAfterSend(t *testing.T) {
	asmUC, _, reqID, _ := assessmentHarness(t, 2, 2)

	qs, err := asmUC.GenerateQuestions(context.Background(), reqID, "medium")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	created, err := asmUC.Create(context.Background(), reqID, validSettings(), qs)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := asmUC.Assign(context.Background(), created.ID, 24); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	if _, err := asmUC.Assign(context.Background(), created.ID, 24); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second Assign should hit immutability guard, got %v", err)
	}
}

func TestAssignValidation(t *testing.T) {
	asmUC, _, reqID, _ := assessmentHarness(t, 1, 1)

	qs, err := asmUC.GenerateQuestions(context.Background(), reqID, "medium")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	created, err := asmUC.Create(context.Background(), reqID, validSettings(), qs)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := asmUC.Assign(context.Background(), created.ID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero deadline hours should be rejected, got %v", err)
	}
	if _, err := asmUC.Assign(context.Background(), uuid.New(), 24); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown assessment should be ErrNotFound, got %v", err)
	}
}
