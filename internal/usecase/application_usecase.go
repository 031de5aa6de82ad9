package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/pkg/workerpool"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

type SubmitApplicationInput struct {
	RequisitionID  uuid.UUID
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	ResumeRef      string
	Source         string
}

type ApplicationItem struct {
	ID             uuid.UUID
	RequisitionID  uuid.UUID
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	ResumeRef      string
	Source         string
	Status         pipeline.ApplicationStatus
	AIFitScore     *int
	AppliedAt      time.Time
}

// StatusChange is the result of one status write. Recommended reflects the
// advisory transition table only; the write itself is never blocked.
type StatusChange struct {
	Application ApplicationItem
	Recommended bool
}

type BulkFailure struct {
	ApplicationID uuid.UUID
	Reason        string
}

// BulkStatusReport surfaces partial success instead of collapsing the batch
// to a single pass/fail.
type BulkStatusReport struct {
	Requested int
	Succeeded int
	Failed    int
	Failures  []BulkFailure
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, in SubmitApplicationInput) (ApplicationItem, error)
	Get(ctx context.Context, id uuid.UUID) (ApplicationItem, error)
	ListByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]ApplicationItem, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (StatusChange, error)
	BulkSetStatus(ctx context.Context, ids []uuid.UUID, status string) (BulkStatusReport, error)
}

type Application struct {
	apps    repository.ApplicationRepository
	reqs    repository.RequisitionRepository
	workers int
	log     *log.Logger
}

func NewApplicationUsecase(apps repository.ApplicationRepository, reqs repository.RequisitionRepository, workers int, logger *log.Logger) *Application {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Application{apps: apps, reqs: reqs, workers: workers, log: logger}
}

func (u *Application) Submit(ctx context.Context, in SubmitApplicationInput) (ApplicationItem, error) {
	if in.RequisitionID == uuid.Nil {
		return ApplicationItem{}, fmt.Errorf("%w: missing requisition_id", ErrValidation)
	}
	name := strings.TrimSpace(in.CandidateName)
	email := strings.TrimSpace(in.CandidateEmail)
	if name == "" || email == "" {
		return ApplicationItem{}, fmt.Errorf("%w: missing candidate name or email", ErrValidation)
	}

	if _, err := u.reqs.FindByID(ctx, in.RequisitionID); err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return ApplicationItem{}, fmt.Errorf("%w: requisition %s", ErrNotFound, in.RequisitionID)
		}
		return ApplicationItem{}, ErrInternal
	}

	created, err := u.apps.Create(ctx, repository.Application{
		ID:             uuid.New(),
		RequisitionID:  in.RequisitionID,
		CandidateName:  name,
		CandidateEmail: email,
		CandidatePhone: strings.TrimSpace(in.CandidatePhone),
		ResumeRef:      strings.TrimSpace(in.ResumeRef),
		Source:         strings.TrimSpace(in.Source),
		Status:         pipeline.StatusReceived,
		AppliedAt:      time.Now().UTC(),
	})
	if err != nil {
		return ApplicationItem{}, ErrInternal
	}

	u.log.Printf("component=applications action=submit id=%s requisition=%s", created.ID, created.RequisitionID)
	return toApplicationItem(created), nil
}

func (u *Application) Get(ctx context.Context, id uuid.UUID) (ApplicationItem, error) {
	a, err := u.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ApplicationItem{}, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return ApplicationItem{}, ErrInternal
	}
	return toApplicationItem(a), nil
}

func (u *Application) ListByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]ApplicationItem, error) {
	items, err := u.apps.FindByRequisition(ctx, requisitionID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]ApplicationItem, 0, len(items))
	for _, a := range items {
		out = append(out, toApplicationItem(a))
	}
	return out, nil
}

// SetStatus overwrites the status unconditionally; last write wins. The
// advisory transition table only decorates the result.
func (u *Application) SetStatus(ctx context.Context, id uuid.UUID, status string) (StatusChange, error) {
	st, ok := pipeline.ParseApplicationStatus(status)
	if !ok {
		return StatusChange{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if id == uuid.Nil {
		return StatusChange{}, fmt.Errorf("%w: missing application id", ErrValidation)
	}

	prev, err := u.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return StatusChange{}, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return StatusChange{}, ErrInternal
	}

	updated, err := u.apps.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return StatusChange{}, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return StatusChange{}, ErrInternal
	}

	u.log.Printf("component=applications action=set_status id=%s from=%s to=%s", id, prev.Status, st)
	return StatusChange{
		Application: toApplicationItem(updated),
		Recommended: pipeline.IsRecommendedTransition(prev.Status, st),
	}, nil
}

// BulkSetStatus fans the member updates out over the worker pool. Dispatch
// order is undefined; the report is deterministic for a given id set
// because each member either lands or fails independently.
func (u *Application) BulkSetStatus(ctx context.Context, ids []uuid.UUID, status string) (BulkStatusReport, error) {
	st, ok := pipeline.ParseApplicationStatus(status)
	if !ok {
		return BulkStatusReport{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if len(ids) == 0 {
		return BulkStatusReport{}, fmt.Errorf("%w: empty id set", ErrValidation)
	}

	pool := workerpool.New(u.workers, len(ids))
	out := pool.Run(ctx)

	var mu sync.Mutex
	failures := make([]BulkFailure, 0)

	for _, id := range ids {
		id := id
		pool.Submit(func(ctx context.Context) error {
			if id == uuid.Nil {
				mu.Lock()
				failures = append(failures, BulkFailure{ApplicationID: id, Reason: "missing application id"})
				mu.Unlock()
				return fmt.Errorf("nil application id")
			}
			if _, err := u.apps.UpdateStatus(ctx, id, st); err != nil {
				reason := "update failed"
				if errors.Is(err, repository.ErrApplicationNotFound) {
					reason = "application not found"
				}
				mu.Lock()
				failures = append(failures, BulkFailure{ApplicationID: id, Reason: reason})
				mu.Unlock()
				return err
			}
			return nil
		})
	}
	pool.Close()

	report := BulkStatusReport{Requested: len(ids)}
	for r := range out {
		if r.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}

	mu.Lock()
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].ApplicationID.String() < failures[j].ApplicationID.String()
	})
	report.Failures = failures
	mu.Unlock()

	u.log.Printf("component=applications action=bulk_set_status status=%s requested=%d succeeded=%d failed=%d",
		st, report.Requested, report.Succeeded, report.Failed)
	return report, nil
}

func toApplicationItem(a repository.Application) ApplicationItem {
	return ApplicationItem{
		ID:             a.ID,
		RequisitionID:  a.RequisitionID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		CandidatePhone: a.CandidatePhone,
		ResumeRef:      a.ResumeRef,
		Source:         a.Source,
		Status:         a.Status,
		AIFitScore:     a.AIFitScore,
		AppliedAt:      a.AppliedAt,
	}
}
