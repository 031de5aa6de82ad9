package v1

import (
	"talentflow/internal/delivery/http/handler"
	"talentflow/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers is the full v1 surface, built by the composition root and
// mounted here.
type Handlers struct {
	Requisitions *handler.RequisitionHandler
	Applications *handler.ApplicationHandler
	Scoring      *handler.ScoringHandler
	Assessments  *handler.AssessmentHandler
	Interviews   *handler.InterviewHandler
	Sessions     *handler.SessionHandler
	Operator     *middleware.OperatorMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	protected := r
	if h.Operator != nil {
		protected = r.Group("", h.Operator.Middleware())
	}

	if h.Requisitions != nil {
		h.Requisitions.RegisterRoutes(protected)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected)
	}
	if h.Scoring != nil {
		h.Scoring.RegisterRoutes(protected)
	}
	if h.Assessments != nil {
		h.Assessments.RegisterRoutes(protected)
	}
	if h.Interviews != nil {
		h.Interviews.RegisterRoutes(protected)
	}
	if h.Sessions != nil {
		h.Sessions.RegisterRoutes(protected)
	}
}
