package handler

import (
	"context"

	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/pkg/response"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequisitionHandler struct {
	uc usecase.RequisitionUsecase
}

type createRequisitionRequest struct {
	Title        string `json:"title"`
	Department   string `json:"department"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	WorkflowMode string `json:"workflow_mode"`
}

func NewRequisitionHandler(uc usecase.RequisitionUsecase) *RequisitionHandler {
	return &RequisitionHandler{uc: uc}
}

func (h *RequisitionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/requisitions", h.Create)
	r.Get("/requisitions", h.List)
	r.Get("/requisitions/:id", h.Get)
	r.Post("/requisitions/:id/approve", h.Approve)
	r.Post("/requisitions/:id/advance", h.Advance)
	r.Post("/requisitions/:id/revert", h.Revert)
	r.Post("/requisitions/:id/complete", h.Complete)
	r.Delete("/requisitions/:id", h.Delete)
}

func (h *RequisitionHandler) Create(c fiber.Ctx) error {
	var req createRequisitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	item, err := h.uc.Create(c.Context(), usecase.CreateRequisitionInput{
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Description:  req.Description,
		WorkflowMode: req.WorkflowMode,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "requisition created", dto.FromRequisition(item))
}

func (h *RequisitionHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequisitions(items))
}

func (h *RequisitionHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequisition(item))
}

func (h *RequisitionHandler) Approve(c fiber.Ctx) error {
	return h.mutate(c, h.uc.Approve, "requisition approved")
}

func (h *RequisitionHandler) Advance(c fiber.Ctx) error {
	return h.mutate(c, h.uc.Advance, "workflow advanced")
}

func (h *RequisitionHandler) Revert(c fiber.Ctx) error {
	return h.mutate(c, h.uc.Revert, "workflow reverted")
}

func (h *RequisitionHandler) Complete(c fiber.Ctx) error {
	return h.mutate(c, h.uc.Complete, "requisition completed")
}

func (h *RequisitionHandler) Delete(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "requisition deleted", nil)
}

func (h *RequisitionHandler) mutate(c fiber.Ctx, op func(ctx context.Context, id uuid.UUID) (usecase.RequisitionItem, error), message string) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	item, err := op(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, message, dto.FromRequisition(item))
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}
