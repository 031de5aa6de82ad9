package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"talentflow/internal/interview"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	sessions *interview.Manager
	logger   *log.Logger
}

func NewHandler(hub *Hub, sessions *interview.Manager, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{hub: hub, sessions: sessions, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSessionWS attaches the caller to a live interview session. The
// session must already be open; the socket only streams its events and
// carries the candidate's answers back.
func (h *Handler) HandleSessionWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.sessions == nil {
		return fiber.ErrServiceUnavailable
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	live, err := h.sessions.Get(id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "interview session not found")
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Printf("component=ws action=upgrade session=%s status=error err=%v", id, err)
			return
		}

		client := NewClient(h.hub, conn, live, h.logger)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()

		// Late joiners still need to know where the interview stands.
		if q, idx, ok := live.CurrentQuestion(); ok {
			b, err := json.Marshal(interview.Event{
				Type:     "question",
				Question: q.Text,
				Index:    idx,
				Total:    live.QuestionCount(),
			})
			if err == nil {
				select {
				case client.send <- b:
				default:
				}
			}
		}
	})

	return fiberHandler(c)
}
