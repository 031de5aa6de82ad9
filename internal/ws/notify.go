package ws

import (
	"encoding/json"
	"sync/atomic"

	"talentflow/internal/interview"

	"github.com/google/uuid"
)

// SessionForwarder bridges one session's events onto its hub room. The
// session id only exists once the session is open, so the forwarder is
// created first, handed to the manager as the event callback, and bound
// afterwards. Events arriving before Bind are dropped; nothing emits
// that early.
type SessionForwarder struct {
	hub     *Hub
	session atomic.Pointer[uuid.UUID]
}

func NewSessionForwarder(hub *Hub) *SessionForwarder {
	return &SessionForwarder{hub: hub}
}

func (f *SessionForwarder) Bind(sessionID uuid.UUID) {
	f.session.Store(&sessionID)
}

// Emit matches the onEvent callback interview.Manager.Open expects.
func (f *SessionForwarder) Emit(e interview.Event) {
	if f == nil || f.hub == nil {
		return
	}
	id := f.session.Load()
	if id == nil {
		return
	}
	b, err := json.Marshal(e)
	if err != nil {
		return
	}
	f.hub.Broadcast(*id, b)
}
