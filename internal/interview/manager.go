package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"talentflow/internal/pkg/questiongen"
	"talentflow/internal/repository"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("interview session not found")

// Manager opens and tracks the live AI interview sessions. Sessions are
// in-memory only; closing the manager entry destroys them.
type Manager struct {
	apps      repository.ApplicationRepository
	reqs      repository.RequisitionRepository
	questions questiongen.Source
	tracker   StatusTracker
	sink      WarningSink
	signals   func() SignalSource
	log       *log.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager(
	apps repository.ApplicationRepository,
	reqs repository.RequisitionRepository,
	questions questiongen.Source,
	tracker StatusTracker,
	sink WarningSink,
	signals func() SignalSource,
	logger *log.Logger,
) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		apps:      apps,
		reqs:      reqs,
		questions: questions,
		tracker:   tracker,
		sink:      sink,
		signals:   signals,
		log:       logger,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Open generates the question set for the target application and starts a
// session. Fails without opening anything when no questions can be
// produced.
func (m *Manager) Open(ctx context.Context, applicationID uuid.UUID, questionCount int, onEvent func(Event)) (*Session, error) {
	app, err := m.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, fmt.Errorf("application %s: %w", applicationID, err)
		}
		return nil, err
	}
	req, err := m.reqs.FindByID(ctx, app.RequisitionID)
	if err != nil {
		return nil, err
	}

	qs, err := m.questions.Generate(ctx, questiongen.Request{
		JobTitle:    req.Title,
		Department:  req.Department,
		Description: req.Description,
		Difficulty:  questiongen.DifficultyMedium,
		Count:       questionCount,
	})
	if err != nil || len(qs) == 0 {
		if err == nil {
			err = ErrNoQuestions
		}
		return nil, fmt.Errorf("%w: %v", ErrNoQuestions, err)
	}

	var src SignalSource
	if m.signals != nil {
		src = m.signals()
	}

	sess, err := NewSession(SessionConfig{
		ApplicationID: app.ID,
		Questions:     qs,
		Signals:       src,
		Tracker:       m.tracker,
		Sink:          m.sink,
		OnEvent:       onEvent,
		Logger:        m.log,
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears the session down and forgets it.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// CloseAll is shutdown teardown for every open session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
