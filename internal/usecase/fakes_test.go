package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/domain/scoring"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

type memRequisitionRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]repository.Requisition
	apps  *memApplicationRepo
}

func newMemRequisitionRepo() *memRequisitionRepo {
	return &memRequisitionRepo{items: make(map[uuid.UUID]repository.Requisition)}
}

func (m *memRequisitionRepo) Create(ctx context.Context, r repository.Requisition) (repository.Requisition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[r.ID] = r
	return r, nil
}

func (m *memRequisitionRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.Requisition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return repository.Requisition{}, repository.ErrRequisitionNotFound
	}
	return r, nil
}

func (m *memRequisitionRepo) List(ctx context.Context) ([]repository.Requisition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.Requisition, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRequisitionRepo) Approve(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok || r.Status != pipeline.RequisitionPendingApproval {
		return false, nil
	}
	r.Status = pipeline.RequisitionApproved
	r.IsActive = true
	m.items[id] = r
	return true, nil
}

func (m *memRequisitionRepo) UpdateStep(ctx context.Context, id uuid.UUID, step int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok || r.Status != pipeline.RequisitionApproved {
		return false, nil
	}
	r.CurrentStep = step
	m.items[id] = r
	return true, nil
}

func (m *memRequisitionRepo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return repository.ErrRequisitionNotFound
	}
	r.IsActive = false
	m.items[id] = r
	return nil
}

func (m *memRequisitionRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	_, ok := m.items[id]
	delete(m.items, id)
	m.mu.Unlock()
	if !ok {
		return repository.ErrRequisitionNotFound
	}
	if m.apps != nil {
		m.apps.deleteByRequisition(id)
	}
	return nil
}

type memApplicationRepo struct {
	mu     sync.Mutex
	items  map[uuid.UUID]repository.Application
	order  []uuid.UUID
	failOn map[uuid.UUID]bool
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{
		items:  make(map[uuid.UUID]repository.Application),
		failOn: make(map[uuid.UUID]bool),
	}
}

func (m *memApplicationRepo) Create(ctx context.Context, a repository.Application) (repository.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = a
	m.order = append(m.order, a.ID)
	return a, nil
}

func (m *memApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *memApplicationRepo) FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]repository.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.Application, 0)
	for _, id := range m.order {
		a, ok := m.items[id]
		if ok && a.RequisitionID == requisitionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApplicationRepo) FindByRequisitionAndStatus(ctx context.Context, requisitionID uuid.UUID, status pipeline.ApplicationStatus) ([]repository.Application, error) {
	all, _ := m.FindByRequisition(ctx, requisitionID)
	out := make([]repository.Application, 0)
	for _, a := range all {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status pipeline.ApplicationStatus) (repository.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[id] {
		return repository.Application{}, fmt.Errorf("simulated update failure")
	}
	a, ok := m.items[id]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	a.Status = status
	m.items[id] = a
	return a, nil
}

func (m *memApplicationRepo) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.AIFitScore = &score
	m.items[id] = a
	return nil
}

func (m *memApplicationRepo) deleteByRequisition(requisitionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.items {
		if a.RequisitionID == requisitionID {
			delete(m.items, id)
		}
	}
}

type memAssessmentRepo struct {
	mu          sync.Mutex
	assessments map[uuid.UUID]repository.Assessment
	assignments []repository.AssessmentAssignment
	apps        *memApplicationRepo
}

func newMemAssessmentRepo(apps *memApplicationRepo) *memAssessmentRepo {
	return &memAssessmentRepo{
		assessments: make(map[uuid.UUID]repository.Assessment),
		apps:        apps,
	}
}

func (m *memAssessmentRepo) Create(ctx context.Context, a repository.Assessment) (repository.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[a.ID] = a
	return a, nil
}

func (m *memAssessmentRepo) FindByID(ctx context.Context, id uuid.UUID) (repository.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[id]
	if !ok {
		return repository.Assessment{}, repository.ErrAssessmentNotFound
	}
	return a, nil
}

func (m *memAssessmentRepo) FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]repository.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.Assessment, 0)
	for _, a := range m.assessments {
		if a.RequisitionID == requisitionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssessmentRepo) HasAssignments(ctx context.Context, assessmentID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, asg := range m.assignments {
		if asg.AssessmentID == assessmentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAssessmentRepo) Assign(ctx context.Context, assessmentID uuid.UUID, applicationIDs []uuid.UUID, deadline time.Time, status pipeline.ApplicationStatus) ([]repository.AssessmentAssignment, error) {
	created := make([]repository.AssessmentAssignment, 0, len(applicationIDs))
	for _, appID := range applicationIDs {
		if _, err := m.apps.UpdateStatus(ctx, appID, status); err != nil {
			return nil, err
		}
		created = append(created, repository.AssessmentAssignment{
			ID:            uuid.New(),
			AssessmentID:  assessmentID,
			ApplicationID: appID,
			Deadline:      deadline,
			AssignedAt:    time.Now().UTC(),
		})
	}
	m.mu.Lock()
	m.assignments = append(m.assignments, created...)
	m.mu.Unlock()
	return created, nil
}

func (m *memAssessmentRepo) ListAssignments(ctx context.Context, assessmentID uuid.UUID) ([]repository.AssessmentAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.AssessmentAssignment, 0)
	for _, asg := range m.assignments {
		if asg.AssessmentID == assessmentID {
			out = append(out, asg)
		}
	}
	return out, nil
}

type memInterviewRepo struct {
	mu       sync.Mutex
	slots    []repository.InterviewSlot
	warnings []repository.InterviewWarning
}

func newMemInterviewRepo() *memInterviewRepo {
	return &memInterviewRepo{}
}

func (m *memInterviewRepo) CreateSlot(ctx context.Context, s repository.InterviewSlot) (repository.InterviewSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, s)
	return s, nil
}

func (m *memInterviewRepo) FindSlotsByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]repository.InterviewSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.InterviewSlot, 0)
	for _, s := range m.slots {
		if s.RequisitionID == requisitionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memInterviewRepo) FindSlotsByDate(ctx context.Context, requisitionID uuid.UUID, date time.Time) ([]repository.InterviewSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.InterviewSlot, 0)
	for _, s := range m.slots {
		if s.RequisitionID == requisitionID && s.ScheduledDate.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memInterviewRepo) RecordWarning(ctx context.Context, w repository.InterviewWarning) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, w)
	return nil
}

func (m *memInterviewRepo) FindWarningsByApplication(ctx context.Context, applicationID uuid.UUID) ([]repository.InterviewWarning, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.InterviewWarning, 0)
	for _, w := range m.warnings {
		if w.ApplicationID == applicationID {
			out = append(out, w)
		}
	}
	return out, nil
}

type memResumeSource struct {
	texts map[string]string
}

func (m *memResumeSource) Text(ref string) (string, error) {
	t, ok := m.texts[ref]
	if !ok {
		return "", fmt.Errorf("resume %q not found", ref)
	}
	return t, nil
}

type memScoreCache struct {
	mu    sync.Mutex
	items map[uuid.UUID]scoring.Breakdown
	hits  int
}

func newMemScoreCache() *memScoreCache {
	return &memScoreCache{items: make(map[uuid.UUID]scoring.Breakdown)}
}

func (m *memScoreCache) GetScore(ctx context.Context, id uuid.UUID) (scoring.Breakdown, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if ok {
		m.hits++
	}
	return b, ok
}

func (m *memScoreCache) SetScore(ctx context.Context, id uuid.UUID, b scoring.Breakdown) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = b
}

func (m *memScoreCache) InvalidateScore(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
}
