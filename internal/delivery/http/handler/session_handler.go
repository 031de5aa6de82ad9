package handler

import (
	"errors"

	"talentflow/internal/delivery/http/dto"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/interview"
	"talentflow/internal/pkg/response"
	"talentflow/internal/repository"
	"talentflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// defaultSessionQuestions is used when the open request does not say how
// many questions the interview should have.
const defaultSessionQuestions = 5

// SessionHandler owns the live AI interview sessions: opening one for an
// application, inspecting and driving it over REST, and attaching the
// websocket stream.
type SessionHandler struct {
	sessions *interview.Manager
	hub      *ws.Hub
	wsh      *ws.Handler
}

type openSessionRequest struct {
	QuestionCount int `json:"question_count"`
}

type sessionAnswerRequest struct {
	Answer string `json:"answer"`
}

func NewSessionHandler(sessions *interview.Manager, hub *ws.Hub, wsh *ws.Handler) *SessionHandler {
	return &SessionHandler{sessions: sessions, hub: hub, wsh: wsh}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/applications/:id/interview-session", h.Open)
	r.Get("/interview-sessions/:id", h.Get)
	r.Post("/interview-sessions/:id/answer", h.Answer)
	r.Get("/interview-sessions/:id/warnings", h.Warnings)
	r.Delete("/interview-sessions/:id", h.Close)
	if h.wsh != nil {
		r.Get("/interview-sessions/:id/ws", h.wsh.HandleSessionWS)
	}
}

func (h *SessionHandler) Open(c fiber.Ctx) error {
	appID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req openSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	count := req.QuestionCount
	if count <= 0 {
		count = defaultSessionQuestions
	}

	fwd := ws.NewSessionForwarder(h.hub)
	sess, err := h.sessions.Open(c.Context(), appID, count, fwd.Emit)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
		case errors.Is(err, interview.ErrNoQuestions):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No interview questions could be generated", nil, err)
		default:
			return err
		}
	}
	fwd.Bind(sess.ID)

	return response.Success(c, fiber.StatusCreated, "interview session opened", dto.FromSession(sess))
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	sess, err := h.findSession(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSession(sess))
}

func (h *SessionHandler) Answer(c fiber.Ctx) error {
	sess, err := h.findSession(c)
	if err != nil {
		return err
	}

	var req sessionAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	if _, err := sess.SubmitAnswer(c.Context(), req.Answer); err != nil {
		switch {
		case errors.Is(err, interview.ErrFinished):
			return middleware.NewAppError(fiber.StatusConflict, "Interview already finished", nil, err)
		case errors.Is(err, interview.ErrSessionClosed):
			return middleware.NewAppError(fiber.StatusConflict, "Session is closed", nil, err)
		default:
			return err
		}
	}
	return response.Success(c, fiber.StatusOK, "answer recorded", dto.FromSession(sess))
}

func (h *SessionHandler) Warnings(c fiber.Ctx) error {
	sess, err := h.findSession(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromWarnings(sess.Warnings()))
}

func (h *SessionHandler) Close(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.sessions.Close(id); err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Interview session not found", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "interview session closed", nil)
}

func (h *SessionHandler) findSession(c fiber.Ctx) (*interview.Session, error) {
	id, err := pathUUID(c, "id")
	if err != nil {
		return nil, err
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusNotFound, "Interview session not found", nil, err)
	}
	return sess, nil
}
