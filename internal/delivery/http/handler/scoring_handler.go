package handler

import (
	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/pkg/response"
	"talentflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScoringHandler struct {
	uc usecase.ScoringUsecase
}

func NewScoringHandler(uc usecase.ScoringUsecase) *ScoringHandler {
	return &ScoringHandler{uc: uc}
}

func (h *ScoringHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/score", h.Score)
	r.Get("/requisitions/:id/ranking", h.Ranking)
}

func (h *ScoringHandler) Score(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.uc.ScoreApplication(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "application scored", dto.FromScoreResult(result))
}

func (h *ScoringHandler) Ranking(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	results, err := h.uc.RankByScore(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromScoreResults(results))
}
