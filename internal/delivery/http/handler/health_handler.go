package handler

import (
	"context"
	"time"

	"talentflow/internal/database"
	"talentflow/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/healthz", h.Live)
	r.Get("/readyz", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "ok"})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h == nil || h.db == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database not configured", nil)
	}
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "ready"})
}
