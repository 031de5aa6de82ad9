package handler

import (
	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/pkg/response"
	"talentflow/internal/repository"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

type generateQuestionsRequest struct {
	Difficulty string `json:"difficulty"`
}

type createAssessmentRequest struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Instructions      string                `json:"instructions"`
	DurationMinutes   int                   `json:"duration_minutes"`
	PassingScore      int                   `json:"passing_score"`
	Difficulty        string                `json:"difficulty"`
	ProctoringEnabled bool                  `json:"proctoring_enabled"`
	Questions         []repository.Question `json:"questions"`
}

type assignAssessmentRequest struct {
	DeadlineHours int `json:"deadline_hours"`
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/requisitions/:id/assessments/questions", h.GenerateQuestions)
	r.Post("/requisitions/:id/assessments", h.Create)
	r.Get("/assessments/:id", h.Get)
	r.Post("/assessments/:id/assign", h.Assign)
}

func (h *AssessmentHandler) GenerateQuestions(c fiber.Ctx) error {
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req generateQuestionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	questions, err := h.uc.GenerateQuestions(c.Context(), reqID, req.Difficulty)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "questions generated", dto.FromQuestions(questions))
}

func (h *AssessmentHandler) Create(c fiber.Ctx) error {
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req createAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	item, err := h.uc.Create(c.Context(), reqID, usecase.AssessmentSettings{
		Title:             req.Title,
		Description:       req.Description,
		Instructions:      req.Instructions,
		DurationMinutes:   req.DurationMinutes,
		PassingScore:      req.PassingScore,
		Difficulty:        req.Difficulty,
		ProctoringEnabled: req.ProctoringEnabled,
	}, req.Questions)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "assessment created", dto.FromAssessment(item))
}

func (h *AssessmentHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromAssessment(item))
}

func (h *AssessmentHandler) Assign(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req assignAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	report, err := h.uc.Assign(c.Context(), id, req.DeadlineHours)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "assessment assigned", dto.FromAssignReport(report))
}
