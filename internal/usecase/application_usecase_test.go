package usecase

import (
	"context"
	"errors"
	"testing"

	"talentflow/internal/domain/pipeline"

	"github.com/google/uuid"
)

func seedApplications(t *testing.T, n int) (*Application, *memApplicationRepo, []uuid.UUID) {
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
	return appUC, appRepo, ids
}

func TestSubmitValidation(t *testing.T) {
	appUC := NewApplicationUsecase(newMemApplicationRepo(), newMemRequisitionRepo(), 2, nil)

	if _, err := appUC.Submit(context.Background(), SubmitApplicationInput{
		CandidateName: "x", CandidateEmail: "y",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing requisition id: expected ErrValidation, got %v", err)
	}
	if _, err := appUC.Submit(context.Background(), SubmitApplicationInput{
		RequisitionID: uuid.New(), CandidateEmail: "y@example.com",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name: expected ErrValidation, got %v", err)
	}
	if _, err := appUC.Submit(context.Background(), SubmitApplicationInput{
		RequisitionID: uuid.New(), CandidateName: "x", CandidateEmail: "y@example.com",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown requisition: expected ErrNotFound, got %v", err)
	}
}

func TestSetStatusOverwrites(t *testing.T) {
	appUC, _, ids := seedApplications(t, 1)
	id := ids[0]

	ch, err := appUC.SetStatus(context.Background(), id, "shortlisted")
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if ch.Application.Status != pipeline.StatusShortlisted {
		t.Fatalf("status = %s", ch.Application.Status)
	}
	if !ch.Recommended {
		t.Fatalf("received -> shortlisted should be a recommended transition")
	}

	// Any status to any other is allowed; off-table moves are only flagged.
	ch, err = appUC.SetStatus(context.Background(), id, "received")
	if err != nil {
		t.Fatalf("SetStatus backward: %v", err)
	}
	if ch.Recommended {
		t.Fatalf("shortlisted -> received should not be flagged as recommended")
	}
	if ch.Application.Status != pipeline.StatusReceived {
		t.Fatalf("status = %s, want received", ch.Application.Status)
	}
}

func TestSetStatusValidation(t *testing.T) {
	appUC, _, ids := seedApplications(t, 1)

	if _, err := appUC.SetStatus(context.Background(), ids[0], "hired"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status: expected ErrValidation, got %v", err)
	}
	if _, err := appUC.SetStatus(context.Background(), uuid.New(), "shortlisted"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown application: expected ErrNotFound, got %v", err)
	}
}

func TestBulkSetStatusAllSucceed(t *testing.T) {
	appUC, repo, ids := seedApplications(t, 5)

	report, err := appUC.BulkSetStatus(context.Background(), ids, "under_review")
	if err != nil {
		t.Fatalf("BulkSetStatus: %v", err)
	}
	if report.Requested != 5 || report.Succeeded != 5 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	for _, id := range ids {
		a, _ := repo.FindByID(context.Background(), id)
		if a.Status != pipeline.StatusUnderReview {
			t.Fatalf("application %s status = %s", id, a.Status)
		}
	}
}

func TestBulkSetStatusPartialFailure(t *testing.T) {
	appUC, repo, ids := seedApplications(t, 4)

	// One unknown id in the batch.
	bad := uuid.New()
	batch := append(append([]uuid.UUID{}, ids...), bad)

	report, err := appUC.BulkSetStatus(context.Background(), batch, "shortlisted")
	if err != nil {
		t.Fatalf("BulkSetStatus: %v", err)
	}
	if report.Requested != 5 || report.Succeeded != 4 || report.Failed != 1 {
		t.Fatalf("report = %+v, want 5/4/1", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].ApplicationID != bad {
		t.Fatalf("failures = %+v", report.Failures)
	}
	for _, id := range ids {
		a, _ := repo.FindByID(context.Background(), id)
		if a.Status != pipeline.StatusShortlisted {
			t.Fatalf("valid member %s not updated: %s", id, a.Status)
		}
	}
}

func TestBulkSetStatusDeterministicAggregate(t *testing.T) {
	appUC, repo, ids := seedApplications(t, 6)
	repo.failOn[ids[2]] = true
	repo.failOn[ids[4]] = true

	// Same id set, several runs: completion order may differ, the
	// aggregate must not.
	for run := 0; run < 5; run++ {
		report, err := appUC.BulkSetStatus(context.Background(), ids, "under_review")
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if report.Succeeded != 4 || report.Failed != 2 {
			t.Fatalf("run %d: report = %+v, want 4/2", run, report)
		}
	}
}

func TestBulkSetStatusValidation(t *testing.T) {
	appUC, _, ids := seedApplications(t, 1)

	if _, err := appUC.BulkSetStatus(context.Background(), nil, "shortlisted"); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty set: expected ErrValidation, got %v", err)
	}
	if _, err := appUC.BulkSetStatus(context.Background(), ids, "nonsense"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status: expected ErrValidation, got %v", err)
	}
}
