package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/pkg/questiongen"
	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

var (
	ErrNoQuestions   = errors.New("no interview questions could be generated")
	ErrSessionClosed = errors.New("interview session is closed")
	ErrFinished      = errors.New("interview already finished")
)

// MaxWarnings bounds the in-session warning log; the oldest entry is
// evicted first.
const MaxWarnings = 5

const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// PlaceholderAnswer marks a respondent turn when no transcription is
// available.
const PlaceholderAnswer = "[answer recorded]"

type Turn struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type Warning struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Event struct {
	Type     string   `json:"type"` // question | warning | finished
	Question string   `json:"question,omitempty"`
	Index    int      `json:"index,omitempty"`
	Total    int      `json:"total,omitempty"`
	Warning  *Warning `json:"warning,omitempty"`
}

// StatusTracker is the slice of the application tracker the session needs
// on completion. *usecase.Application satisfies it.
type StatusTracker interface {
	SetStatus(ctx context.Context, id uuid.UUID, status string) (usecase.StatusChange, error)
}

// WarningSink records proctoring warnings with the backend. Failures are
// logged and dropped; they never interrupt the interview.
type WarningSink interface {
	Record(ctx context.Context, sessionID, applicationID uuid.UUID, w Warning) error
}

// Session is the ephemeral AI interview: a cursor over generated questions
// plus a transcript and a bounded proctoring log. It exists only while the
// candidate's session is open.
type Session struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID

	mu         sync.Mutex
	questions  []questiongen.Question
	cursor     int
	finished   bool
	closed     bool
	transcript []Turn
	warnings   []Warning

	stopSignals func()
	closeOnce   sync.Once

	tracker StatusTracker
	sink    WarningSink
	onEvent func(Event)
	log     *log.Logger
	now     func() time.Time
}

type SessionConfig struct {
	ApplicationID uuid.UUID
	Questions     []questiongen.Question
	Signals       SignalSource
	Tracker       StatusTracker
	Sink          WarningSink
	OnEvent       func(Event)
	Logger        *log.Logger
	Now           func() time.Time
}

// NewSession opens a session over an already-generated question set. A
// session never opens broken: zero questions is a hard refusal.
func NewSession(cfg SessionConfig) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Session{
		ID:            uuid.New(),
		ApplicationID: cfg.ApplicationID,
		questions:     cfg.Questions,
		transcript:    make([]Turn, 0, len(cfg.Questions)*2),
		warnings:      make([]Warning, 0, MaxWarnings),
		tracker:       cfg.Tracker,
		sink:          cfg.Sink,
		onEvent:       cfg.OnEvent,
		log:           cfg.Logger,
		now:           cfg.Now,
	}

	s.appendAskerTurn(0)

	if cfg.Signals != nil {
		s.stopSignals = cfg.Signals.Start(s.observe)
	}

	s.log.Printf("component=interview_session action=open session=%s application=%s questions=%d",
		s.ID, s.ApplicationID, len(s.questions))
	return s, nil
}

// CurrentQuestion returns the question awaiting an answer, or false once
// the session has finished.
func (s *Session) CurrentQuestion() (questiongen.Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.cursor >= len(s.questions) {
		return questiongen.Question{}, 0, false
	}
	return s.questions[s.cursor], s.cursor, true
}

// SubmitAnswer records the candidate turn and advances the cursor. On the
// final answer the owning application is marked interview_completed and
// monitoring is torn down.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrSessionClosed
	}
	if s.finished {
		s.mu.Unlock()
		return false, ErrFinished
	}

	if answer == "" {
		answer = PlaceholderAnswer
	}
	s.transcript = append(s.transcript, Turn{Role: RoleCandidate, Text: answer, At: s.now()})

	s.cursor++
	finished := s.cursor >= len(s.questions)
	if finished {
		s.finished = true
	} else {
		s.appendAskerTurnLocked(s.cursor)
	}
	s.mu.Unlock()

	if !finished {
		s.emit(Event{Type: "question", Question: s.questions[s.cursor].Text, Index: s.cursor, Total: len(s.questions)})
		return false, nil
	}

	// Completion is an exit path for the monitors.
	s.teardown()
	s.emit(Event{Type: "finished", Total: len(s.questions)})

	if s.tracker != nil {
		if _, err := s.tracker.SetStatus(ctx, s.ApplicationID, string(pipeline.StatusInterviewCompleted)); err != nil {
			s.log.Printf("component=interview_session action=complete session=%s status=error err=%v", s.ID, err)
			return true, fmt.Errorf("interview finished but status update failed: %w", err)
		}
	}
	s.log.Printf("component=interview_session action=complete session=%s application=%s", s.ID, s.ApplicationID)
	return true, nil
}

// ReportVisibilityLost is the discrete environment signal for tab/window
// visibility loss, pushed from the client.
func (s *Session) ReportVisibilityLost(ctx context.Context) {
	s.observeCtx(ctx, Signal{Kind: SignalVisibilityLost, Message: "candidate left the interview tab"})
}

// ReportFocusLost is the discrete environment signal for input focus loss.
func (s *Session) ReportFocusLost(ctx context.Context) {
	s.observeCtx(ctx, Signal{Kind: SignalFocusLost, Message: "interview window lost input focus"})
}

// Close tears down monitoring on any exit path. Idempotent; after it
// returns no signal can append another warning.
func (s *Session) Close() {
	s.teardown()
	s.log.Printf("component=interview_session action=close session=%s", s.ID)
}

func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.transcript...)
}

func (s *Session) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Warning(nil), s.warnings...)
}

func (s *Session) QuestionCount() int {
	return len(s.questions)
}

func (s *Session) teardown() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		stop := s.stopSignals
		s.stopSignals = nil
		s.mu.Unlock()
		if stop != nil {
			stop()
		}
	})
}

func (s *Session) observe(sig Signal) {
	s.observeCtx(context.Background(), sig)
}

func (s *Session) observeCtx(ctx context.Context, sig Signal) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	w := Warning{Kind: sig.Kind, Message: sig.Message, At: s.now()}
	s.warnings = append(s.warnings, w)
	if len(s.warnings) > MaxWarnings {
		s.warnings = s.warnings[len(s.warnings)-MaxWarnings:]
	}
	s.mu.Unlock()

	s.emit(Event{Type: "warning", Warning: &w})

	if s.sink != nil {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		go func() {
			defer cancel()
			if err := s.sink.Record(recordCtx, s.ID, s.ApplicationID, w); err != nil {
				s.log.Printf("component=interview_session action=record_warning session=%s status=dropped err=%v", s.ID, err)
			}
		}()
	}
}

func (s *Session) appendAskerTurn(i int) {
	s.mu.Lock()
	s.appendAskerTurnLocked(i)
	s.mu.Unlock()
}

func (s *Session) appendAskerTurnLocked(i int) {
	s.transcript = append(s.transcript, Turn{Role: RoleInterviewer, Text: s.questions[i].Text, At: s.now()})
}

func (s *Session) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}
