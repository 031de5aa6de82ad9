package handler

import (
	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/pkg/response"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type submitApplicationRequest struct {
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	CandidatePhone string `json:"candidate_phone"`
	ResumeRef      string `json:"resume_ref"`
	Source         string `json:"source"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type bulkStatusRequest struct {
	ApplicationIDs []uuid.UUID `json:"application_ids"`
	Status         string      `json:"status"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/requisitions/:id/applications", h.Submit)
	r.Get("/requisitions/:id/applications", h.ListByRequisition)
	r.Get("/applications/:id", h.Get)
	r.Put("/applications/:id/status", h.SetStatus)
	r.Post("/applications/bulk-status", h.BulkSetStatus)
}

func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req submitApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	item, err := h.uc.Submit(c.Context(), usecase.SubmitApplicationInput{
		RequisitionID:  reqID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		ResumeRef:      req.ResumeRef,
		Source:         req.Source,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "application submitted", dto.FromApplication(item))
}

func (h *ApplicationHandler) ListByRequisition(c fiber.Ctx) error {
	reqID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.uc.ListByRequisition(c.Context(), reqID)
	if err != nil {
		return err
	}
	if status := c.Query("status"); status != "" {
		filtered := make([]usecase.ApplicationItem, 0, len(items))
		for _, it := range items {
			if string(it.Status) == status {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(items))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(item))
}

func (h *ApplicationHandler) SetStatus(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	change, err := h.uc.SetStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "status updated", dto.FromStatusChange(change))
}

func (h *ApplicationHandler) BulkSetStatus(c fiber.Ctx) error {
	var req bulkStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	report, err := h.uc.BulkSetStatus(c.Context(), req.ApplicationIDs, req.Status)
	if err != nil {
		return err
	}

	// Partial failure still answers 200; the report carries the split.
	return response.Success(c, fiber.StatusOK, "bulk status applied", dto.FromBulkReport(report))
}
