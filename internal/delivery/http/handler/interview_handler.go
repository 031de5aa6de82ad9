package handler

import (
	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/pkg/response"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

type scheduleInterviewRequest struct {
	ApplicationID  uuid.UUID   `json:"application_id"`
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	InterviewerIDs []uuid.UUID `json:"interviewer_ids"`
	Type           string      `json:"type"`
	Notes          string      `json:"notes"`
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/requisitions/:id/interviews", h.Schedule)
	r.Get("/requisitions/:id/interviews", h.ListSlots)
	r.Get("/requisitions/:id/interviews/availability", h.Availability)
	r.Get("/interviews/week", h.Week)
	r.Get("/interviewers", h.ListInterviewers)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	if _, err := pathUUID(c, "id"); err != nil {
		return err
	}

	var req scheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	slot, err := h.uc.Schedule(c.Context(), usecase.ScheduleInput{
		ApplicationID:  req.ApplicationID,
		Date:           req.Date,
		Time:           req.Time,
		InterviewerIDs: req.InterviewerIDs,
		Type:           req.Type,
		Notes:          req.Notes,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "interview scheduled", dto.FromSlot(slot))
}

func (h *InterviewHandler) ListSlots(c fiber.Ctx) error {
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	slots, err := h.uc.ListSlots(c.Context(), reqID)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSlots(slots))
}

func (h *InterviewHandler) Availability(c fiber.Ctx) error {
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	date := c.Query("date")
	morning, afternoon, err := h.uc.AvailableSlots(c.Context(), reqID, date)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AvailabilityResponse{
		Date:      date,
		Morning:   morning,
		Afternoon: afternoon,
	})
}

func (h *InterviewHandler) Week(c fiber.Ctx) error {
	dates, err := h.uc.WeekDates(c.Query("date"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromWeekDates(dates))
}

func (h *InterviewHandler) ListInterviewers(c fiber.Ctx) error {
	items, err := h.uc.ListInterviewers(c.Context(), c.Query("department"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromInterviewers(items))
}
