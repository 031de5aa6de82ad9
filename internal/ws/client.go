package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"talentflow/internal/interview"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// clientMessage is what the candidate's browser sends during a live
// interview: an answer, or a proctoring signal about its own environment.
type clientMessage struct {
	Type   string `json:"type"` // answer | visibility_lost | focus_lost
	Answer string `json:"answer,omitempty"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Client is one websocket connection bound to a single interview session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	session uuid.UUID
	live    *interview.Session
	send    chan []byte
	logger  *log.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, live *interview.Session, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		hub:     hub,
		conn:    conn,
		session: live.ID,
		live:    live,
		send:    make(chan []byte, 64),
		logger:  logger,
	}
}

// ReadPump consumes candidate messages until the connection drops. It is
// the only reader on the connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Printf("component=ws action=read session=%s status=error err=%v", c.session, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.reply(errorMessage{Type: "error", Error: "malformed message"})
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg clientMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch msg.Type {
	case "answer":
		if _, err := c.live.SubmitAnswer(ctx, msg.Answer); err != nil {
			switch {
			case errors.Is(err, interview.ErrFinished):
				c.reply(errorMessage{Type: "error", Error: "interview already finished"})
			case errors.Is(err, interview.ErrSessionClosed):
				c.reply(errorMessage{Type: "error", Error: "session is closed"})
			default:
				c.logger.Printf("component=ws action=answer session=%s status=error err=%v", c.session, err)
				c.reply(errorMessage{Type: "error", Error: "could not record answer"})
			}
		}
	case "visibility_lost":
		c.live.ReportVisibilityLost(ctx)
	case "focus_lost":
		c.live.ReportFocusLost(ctx)
	default:
		c.reply(errorMessage{Type: "error", Error: "unknown message type"})
	}
}

func (c *Client) reply(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

// WritePump forwards hub payloads to the connection and keeps it alive
// with pings. It is the only writer on the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
