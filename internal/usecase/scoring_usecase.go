package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/domain/resume"
	"talentflow/internal/domain/scoring"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

// ResumeSource fetches the plain text behind a stored résumé reference.
type ResumeSource interface {
	Text(ref string) (string, error)
}

// ScoreCache is a best-effort breakdown cache. A miss and an unavailable
// cache look the same to the caller.
type ScoreCache interface {
	GetScore(ctx context.Context, applicationID uuid.UUID) (scoring.Breakdown, bool)
	SetScore(ctx context.Context, applicationID uuid.UUID, b scoring.Breakdown)
	InvalidateScore(ctx context.Context, applicationID uuid.UUID)
}

type ScoreResult struct {
	ApplicationID uuid.UUID
	Breakdown     scoring.Breakdown
}

type ScoringUsecase interface {
	ScoreApplication(ctx context.Context, applicationID uuid.UUID) (ScoreResult, error)
	// RankByScore scores every non-rejected application under a
	// requisition and returns them best first.
	RankByScore(ctx context.Context, requisitionID uuid.UUID) ([]ScoreResult, error)
}

type Scoring struct {
	apps    repository.ApplicationRepository
	reqs    repository.RequisitionRepository
	resumes ResumeSource
	cache   ScoreCache
	log     *log.Logger
}

func NewScoringUsecase(apps repository.ApplicationRepository, reqs repository.RequisitionRepository, resumes ResumeSource, cache ScoreCache, logger *log.Logger) *Scoring {
	if logger == nil {
		logger = log.Default()
	}
	return &Scoring{apps: apps, reqs: reqs, resumes: resumes, cache: cache, log: logger}
}

// ScoreApplication computes the weighted fit breakdown for one application.
// A résumé with any usable signal yields a best-effort breakdown with the
// insufficient-data flag; only a résumé with no signal at all is an error.
func (u *Scoring) ScoreApplication(ctx context.Context, applicationID uuid.UUID) (ScoreResult, error) {
	if applicationID == uuid.Nil {
		return ScoreResult{}, fmt.Errorf("%w: missing application id", ErrValidation)
	}

	if u.cache != nil {
		if b, ok := u.cache.GetScore(ctx, applicationID); ok {
			return ScoreResult{ApplicationID: applicationID, Breakdown: b}, nil
		}
	}

	app, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ScoreResult{}, fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
		}
		return ScoreResult{}, ErrInternal
	}

	req, err := u.reqs.FindByID(ctx, app.RequisitionID)
	if err != nil {
		if errors.Is(err, repository.ErrRequisitionNotFound) {
			return ScoreResult{}, fmt.Errorf("%w: requisition %s", ErrNotFound, app.RequisitionID)
		}
		return ScoreResult{}, ErrInternal
	}

	b, err := u.computeBreakdown(app, req)
	if err != nil {
		return ScoreResult{}, err
	}

	if err := u.apps.UpdateScore(ctx, applicationID, b.OverallScore); err != nil {
		return ScoreResult{}, ErrInternal
	}
	if u.cache != nil {
		u.cache.SetScore(ctx, applicationID, b)
	}

	u.log.Printf("component=scoring action=score application=%s overall=%d insufficient=%v",
		applicationID, b.OverallScore, b.InsufficientData)
	return ScoreResult{ApplicationID: applicationID, Breakdown: b}, nil
}

func (u *Scoring) RankByScore(ctx context.Context, requisitionID uuid.UUID) ([]ScoreResult, error) {
	apps, err := u.apps.FindByRequisition(ctx, requisitionID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ScoreResult, 0, len(apps))
	for _, a := range apps {
		if a.Status == pipeline.StatusRejected {
			continue
		}
		res, err := u.ScoreApplication(ctx, a.ID)
		if err != nil {
			if errors.Is(err, ErrInsufficientData) {
				continue
			}
			return nil, err
		}
		out = append(out, res)
	}

	// Stable best-first ordering; ties keep applied order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Breakdown.OverallScore > out[j-1].Breakdown.OverallScore; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (u *Scoring) computeBreakdown(app repository.Application, req repository.Requisition) (scoring.Breakdown, error) {
	text := ""
	if app.ResumeRef != "" && u.resumes != nil {
		t, err := u.resumes.Text(app.ResumeRef)
		if err != nil {
			u.log.Printf("component=scoring action=fetch_resume application=%s status=error err=%v", app.ID, err)
		} else {
			text = t
		}
	}

	features, err := resume.Extract(text)
	if err != nil {
		return scoring.Breakdown{}, fmt.Errorf("%w: application %s has no parsable resume data", ErrInsufficientData, app.ID)
	}

	job := scoring.JobProfile{
		Keywords:       resume.KeywordsFromDescription(req.Description),
		RequiredSkills: resume.KeywordsToSkills(req.Description),
		RequiredYears:  resume.RequiredYearsFromDescription(req.Description),
		RequiredDegree: resume.RequiredDegreeFromDescription(req.Description),
	}
	return scoring.Score(features, job), nil
}

func skillsFromDescription(description string) []string {
	return resume.KeywordsToSkills(description)
}
