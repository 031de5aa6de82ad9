package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/pkg/questiongen"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

const (
	MinAssessmentDuration = 15
	MaxAssessmentDuration = 180
)

type AssessmentSettings struct {
	Title             string
	Description       string
	Instructions      string
	DurationMinutes   int
	PassingScore      int
	Difficulty        string
	ProctoringEnabled bool
}

type AssessmentItem struct {
	ID                uuid.UUID
	RequisitionID     uuid.UUID
	Title             string
	Description       string
	Instructions      string
	DurationMinutes   int
	PassingScore      int
	Difficulty        string
	ProctoringEnabled bool
	Questions         []repository.Question
	CreatedAt         time.Time
}

type AssignmentItem struct {
	ID            uuid.UUID
	AssessmentID  uuid.UUID
	ApplicationID uuid.UUID
	Deadline      time.Time
	AssignedAt    time.Time
}

type AssignReport struct {
	Assessment  AssessmentItem
	Assignments []AssignmentItem
}

type AssessmentUsecase interface {
	// GenerateQuestions produces a fresh draft set; nothing is persisted.
	GenerateQuestions(ctx context.Context, requisitionID uuid.UUID, difficulty string) ([]repository.Question, error)
	// Create validates settings and stores the configured assessment with
	// its question set.
	Create(ctx context.Context, requisitionID uuid.UUID, settings AssessmentSettings, questions []repository.Question) (AssessmentItem, error)
	Get(ctx context.Context, id uuid.UUID) (AssessmentItem, error)
	// Assign sends the assessment to every currently shortlisted
	// application under its requisition.
	Assign(ctx context.Context, assessmentID uuid.UUID, deadlineHours int) (AssignReport, error)
}

type Assessment struct {
	assessments repository.AssessmentRepository
	apps        repository.ApplicationRepository
	reqs        repository.RequisitionRepository
	questions   questiongen.Source
	log         *log.Logger
}

func NewAssessmentUsecase(
	assessments repository.AssessmentRepository,
	apps repository.ApplicationRepository,
	reqs repository.RequisitionRepository,
	questions questiongen.Source,
	logger *log.Logger,
) *Assessment {
	if logger == nil {
		logger = log.Default()
	}
	return &Assessment{assessments: assessments, apps: apps, reqs: reqs, questions: questions, log: logger}
}

func (u *Assessment) GenerateQuestions(ctx context.Context, requisitionID uuid.UUID, difficulty string) ([]repository.Question, error) {
	diff, ok := questiongen.ParseDifficulty(difficulty)
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrValidation, difficulty)
	}

	req, err := u.reqs.FindByID(ctx, requisitionID)
	if err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return nil, fmt.Errorf("%w: requisition %s", ErrNotFound, requisitionID)
		}
		return nil, ErrInternal
	}

	generated, err := u.questions.Generate(ctx, questiongen.Request{
		JobTitle:    req.Title,
		Department:  req.Department,
		Description: req.Description,
		Skills:      skillsFromDescription(req.Description),
		Difficulty:  diff,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("%w: generator returned an empty set", ErrInternal)
	}

	out := make([]repository.Question, 0, len(generated))
	for _, q := range generated {
		out = append(out, repository.Question{
			Text:          q.Text,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
		})
	}
	u.log.Printf("component=assessment action=generate requisition=%s difficulty=%s questions=%d", requisitionID, diff, len(out))
	return out, nil
}

func (u *Assessment) Create(ctx context.Context, requisitionID uuid.UUID, settings AssessmentSettings, questions []repository.Question) (AssessmentItem, error) {
	if err := validateSettings(settings); err != nil {
		return AssessmentItem{}, err
	}
	if len(questions) == 0 {
		return AssessmentItem{}, fmt.Errorf("%w: assessment needs at least one question", ErrValidation)
	}

	if _, err := u.reqs.FindByID(ctx, requisitionID); err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return AssessmentItem{}, fmt.Errorf("%w: requisition %s", ErrNotFound, requisitionID)
		}
		return AssessmentItem{}, ErrInternal
	}

	title := strings.TrimSpace(settings.Title)
	if title == "" {
		title = "Skill Assessment"
	}

	created, err := u.assessments.Create(ctx, repository.Assessment{
		ID:                uuid.New(),
		RequisitionID:     requisitionID,
		Title:             title,
		Description:       strings.TrimSpace(settings.Description),
		Instructions:      strings.TrimSpace(settings.Instructions),
		DurationMinutes:   settings.DurationMinutes,
		PassingScore:      settings.PassingScore,
		Difficulty:        strings.ToLower(strings.TrimSpace(settings.Difficulty)),
		ProctoringEnabled: settings.ProctoringEnabled,
		Questions:         questions,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return AssessmentItem{}, ErrInternal
	}

	u.log.Printf("component=assessment action=create id=%s requisition=%s questions=%d", created.ID, requisitionID, len(questions))
	return toAssessmentItem(created), nil
}

func (u *Assessment) Get(ctx context.Context, id uuid.UUID) (AssessmentItem, error) {
	a, err := u.assessments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return AssessmentItem{}, fmt.Errorf("%w: assessment %s", ErrNotFound, id)
		}
		return AssessmentItem{}, ErrInternal
	}
	return toAssessmentItem(a), nil
}

func (u *Assessment) Assign(ctx context.Context, assessmentID uuid.UUID, deadlineHours int) (AssignReport, error) {
	if deadlineHours <= 0 {
		return AssignReport{}, fmt.Errorf("%w: deadline_hours must be positive", ErrValidation)
	}

	assessment, err := u.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return AssignReport{}, fmt.Errorf("%w: assessment %s", ErrNotFound, assessmentID)
		}
		return AssignReport{}, ErrInternal
	}

	// Assigned assessments are immutable; a second send would re-issue the
	// same record to a drifting cohort.
	assigned, err := u.assessments.HasAssignments(ctx, assessmentID)
	if err != nil {
		return AssignReport{}, ErrInternal
	}
	if assigned {
		return AssignReport{}, fmt.Errorf("%w: assessment %s is already assigned; regenerate a fresh draft", ErrInvalidTransition, assessmentID)
	}

	shortlisted, err := u.apps.FindByRequisitionAndStatus(ctx, assessment.RequisitionID, pipeline.StatusShortlisted)
	if err != nil {
		return AssignReport{}, ErrInternal
	}
	if len(shortlisted) == 0 {
		return AssignReport{}, fmt.Errorf("%w: no shortlisted applications under requisition %s", ErrNoEligibleCandidates, assessment.RequisitionID)
	}

	ids := make([]uuid.UUID, 0, len(shortlisted))
	for _, a := range shortlisted {
		ids = append(ids, a.ID)
	}

	deadline := time.Now().UTC().Add(time.Duration(deadlineHours) * time.Hour)
	assignments, err := u.assessments.Assign(ctx, assessmentID, ids, deadline, pipeline.StatusAssessment)
	if err != nil {
		return AssignReport{}, ErrInternal
	}

	out := make([]AssignmentItem, 0, len(assignments))
	for _, asg := range assignments {
		out = append(out, AssignmentItem{
			ID:            asg.ID,
			AssessmentID:  asg.AssessmentID,
			ApplicationID: asg.ApplicationID,
			Deadline:      asg.Deadline,
			AssignedAt:    asg.AssignedAt,
		})
	}

	u.log.Printf("component=assessment action=assign id=%s candidates=%d deadline_hours=%d", assessmentID, len(out), deadlineHours)
	return AssignReport{Assessment: toAssessmentItem(assessment), Assignments: out}, nil
}

func validateSettings(s AssessmentSettings) error {
	if s.DurationMinutes < MinAssessmentDuration || s.DurationMinutes > MaxAssessmentDuration {
		return fmt.Errorf("%w: duration_minutes must be between %d and %d", ErrValidation, MinAssessmentDuration, MaxAssessmentDuration)
	}
	if s.PassingScore < 0 || s.PassingScore > 100 {
		return fmt.Errorf("%w: passing_score must be between 0 and 100", ErrValidation)
	}
	if _, ok := questiongen.ParseDifficulty(s.Difficulty); !ok {
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, s.Difficulty)
	}
	return nil
}

func toAssessmentItem(a repository.Assessment) AssessmentItem {
	return AssessmentItem{
		ID:                a.ID,
		RequisitionID:     a.RequisitionID,
		Title:             a.Title,
		Description:       a.Description,
		Instructions:      a.Instructions,
		DurationMinutes:   a.DurationMinutes,
		PassingScore:      a.PassingScore,
		Difficulty:        a.Difficulty,
		ProctoringEnabled: a.ProctoringEnabled,
		Questions:         a.Questions,
		CreatedAt:         a.CreatedAt,
	}
}
