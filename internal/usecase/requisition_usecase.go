package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

type CreateRequisitionInput struct {
	Title        string
	Department   string
	Location     string
	Description  string
	WorkflowMode string
}

type RequisitionItem struct {
	ID           uuid.UUID
	Title        string
	Department   string
	Location     string
	Description  string
	WorkflowMode pipeline.WorkflowMode
	Status       pipeline.RequisitionStatus
	CurrentStep  int
	StepName     string
	IsActive     bool
	CreatedAt    time.Time
}

type RequisitionUsecase interface {
	Create(ctx context.Context, in CreateRequisitionInput) (RequisitionItem, error)
	Get(ctx context.Context, id uuid.UUID) (RequisitionItem, error)
	List(ctx context.Context) ([]RequisitionItem, error)
	Approve(ctx context.Context, id uuid.UUID) (RequisitionItem, error)
	Advance(ctx context.Context, id uuid.UUID) (RequisitionItem, error)
	Revert(ctx context.Context, id uuid.UUID) (RequisitionItem, error)
	Complete(ctx context.Context, id uuid.UUID) (RequisitionItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Requisition struct {
	repo repository.RequisitionRepository
	log  *log.Logger
}

func NewRequisitionUsecase(repo repository.RequisitionRepository, logger *log.Logger) *Requisition {
	if logger == nil {
		logger = log.Default()
	}
	return &Requisition{repo: repo, log: logger}
}

func (u *Requisition) Create(ctx context.Context, in CreateRequisitionInput) (RequisitionItem, error) {
	var missing []string
	req := func(field, v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			missing = append(missing, field)
		}
		return v
	}

	title := req("title", in.Title)
	department := req("department", in.Department)
	location := req("location", in.Location)
	description := req("description", in.Description)
	if len(missing) > 0 {
		return RequisitionItem{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	mode, ok := pipeline.ParseWorkflowMode(in.WorkflowMode)
	if !ok {
		return RequisitionItem{}, fmt.Errorf("%w: unknown workflow_mode %q", ErrValidation, in.WorkflowMode)
	}

	created, err := u.repo.Create(ctx, repository.Requisition{
		ID:           uuid.New(),
		Title:        title,
		Department:   department,
		Location:     location,
		Description:  description,
		WorkflowMode: mode,
		Status:       pipeline.RequisitionPendingApproval,
		CurrentStep:  pipeline.StepRequisition,
		IsActive:     false,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return RequisitionItem{}, ErrInternal
	}

	u.log.Printf("component=requisition action=create id=%s mode=%s", created.ID, created.WorkflowMode)
	return toRequisitionItem(created), nil
}

func (u *Requisition) Get(ctx context.Context, id uuid.UUID) (RequisitionItem, error) {
	r, err := u.find(ctx, id)
	if err != nil {
		return RequisitionItem{}, err
	}
	return toRequisitionItem(r), nil
}

func (u *Requisition) List(ctx context.Context) ([]RequisitionItem, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]RequisitionItem, 0, len(items))
	for _, r := range items {
		out = append(out, toRequisitionItem(r))
	}
	return out, nil
}

func (u *Requisition) Approve(ctx context.Context, id uuid.UUID) (RequisitionItem, error) {
	r, err := u.find(ctx, id)
	if err != nil {
		return RequisitionItem{}, err
	}
	if r.Status != pipeline.RequisitionPendingApproval {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s already approved", ErrInvalidTransition, id)
	}

	ok, err := u.repo.Approve(ctx, id)
	if err != nil {
		return RequisitionItem{}, ErrInternal
	}
	if !ok {
		// Lost a race with another approval.
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s already approved", ErrInvalidTransition, id)
	}

	u.log.Printf("component=requisition action=approve id=%s", id)
	return u.Get(ctx, id)
}

func (u *Requisition) Advance(ctx context.Context, id uuid.UUID) (RequisitionItem, error) {
	r, err := u.find(ctx, id)
	if err != nil {
		return RequisitionItem{}, err
	}
	if r.Status != pipeline.RequisitionApproved {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s is not approved", ErrInvalidTransition, id)
	}
	if r.CurrentStep >= pipeline.MaxStep {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s is at the final step; initiate onboarding instead", ErrInvalidTransition, id)
	}

	next := r.CurrentStep + 1
	ok, err := u.repo.UpdateStep(ctx, id, next)
	if err != nil {
		return RequisitionItem{}, ErrInternal
	}
	if !ok {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s is not approved", ErrInvalidTransition, id)
	}

	u.log.Printf("component=requisition action=advance id=%s step=%d", id, next)
	return u.Get(ctx, id)
}

func (u *Requisition) Revert(ctx context.Context, id uuid.UUID) (RequisitionItem, error) {
	r, err := u.find(ctx, id)
	if err != nil {
		return RequisitionItem{}, err
	}
	if r.Status != pipeline.RequisitionApproved {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s is not approved", ErrInvalidTransition, id)
	}
	if r.CurrentStep <= pipeline.MinStep {
		// Reverting at step 0 is a no-op, not an error.
		return toRequisitionItem(r), nil
	}

	prev := r.CurrentStep - 1
	ok, err := u.repo.UpdateStep(ctx, id, prev)
	if err != nil {
		return RequisitionItem{}, ErrInternal
	}
	if !ok {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s is not approved", ErrInvalidTransition, id)
	}

	u.log.Printf("component=requisition action=revert id=%s step=%d", id, prev)
	return u.Get(ctx, id)
}

// Complete marks the requisition terminal once onboarding has been
// initiated at the final step. The record stays readable; only Delete
// removes it.
func (u *Requisition) Complete(ctx context.Context, id uuid.UUID) (RequisitionItem, error) {
	r, err := u.find(ctx, id)
	if err != nil {
		return RequisitionItem{}, err
	}
	if r.Status != pipeline.RequisitionApproved {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s is not approved", ErrInvalidTransition, id)
	}
	if r.CurrentStep != pipeline.MaxStep {
		return RequisitionItem{}, fmt.Errorf("%w: requisition %s has not reached onboarding", ErrInvalidTransition, id)
	}

	if err := u.repo.MarkCompleted(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return RequisitionItem{}, fmt.Errorf("%w: requisition %s", ErrNotFound, id)
		}
		return RequisitionItem{}, ErrInternal
	}

	u.log.Printf("component=requisition action=complete id=%s", id)
	return u.Get(ctx, id)
}

func (u *Requisition) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return fmt.Errorf("%w: requisition %s", ErrNotFound, id)
		}
		return ErrInternal
	}
	u.log.Printf("component=requisition action=delete id=%s", id)
	return nil
}

func (u *Requisition) find(ctx context.Context, id uuid.UUID) (repository.Requisition, error) {
	r, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return repository.Requisition{}, fmt.Errorf("%w: requisition %s", ErrNotFound, id)
		}
		return repository.Requisition{}, ErrInternal
	}
	return r, nil
}

func toRequisitionItem(r repository.Requisition) RequisitionItem {
	name, _ := pipeline.StepName(r.CurrentStep)
	return RequisitionItem{
		ID:           r.ID,
		Title:        r.Title,
		Department:   r.Department,
		Location:     r.Location,
		Description:  r.Description,
		WorkflowMode: r.WorkflowMode,
		Status:       r.Status,
		CurrentStep:  r.CurrentStep,
		StepName:     name,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
	}
}
