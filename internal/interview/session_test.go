package interview

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"talentflow/internal/domain/pipeline"
	"talentflow/internal/pkg/questiongen"
	"talentflow/internal/usecase"

	"github.com/google/uuid"
)

type fakeTracker struct {
	mu    sync.Mutex
	calls []struct {
		id     uuid.UUID
		status string
	}
}

func (f *fakeTracker) SetStatus(ctx context.Context, id uuid.UUID, status string) (usecase.StatusChange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, struct {
		id     uuid.UUID
		status string
	}{id, status})
	return usecase.StatusChange{}, nil
}

type fakeSink struct {
	mu       sync.Mutex
	recorded []Warning
}

func (f *fakeSink) Record(ctx context.Context, sessionID, applicationID uuid.UUID, w Warning) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, w)
	return nil
}

func questions(n int) []questiongen.Question {
	out := make([]questiongen.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, questiongen.Question{Text: fmt.Sprintf("question %d", i+1), Type: questiongen.TypeText, Points: 10})
	}
	return out
}

func TestSessionRefusesToOpenWithoutQuestions(t *testing.T) {
	if _, err := NewSession(SessionConfig{ApplicationID: uuid.New()}); err != ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestSessionQuestionFlow(t *testing.T) {
	tracker := &fakeTracker{}
	appID := uuid.New()
	s, err := NewSession(SessionConfig{
		ApplicationID: appID,
		Questions:     questions(3),
		Tracker:       tracker,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	q, idx, ok := s.CurrentQuestion()
	if !ok || idx != 0 || q.Text != "question 1" {
		t.Fatalf("current = %q idx=%d ok=%v", q.Text, idx, ok)
	}

	for i := 0; i < 2; i++ {
		finished, err := s.SubmitAnswer(context.Background(), "my answer")
		if err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i, err)
		}
		if finished {
			t.Fatalf("finished too early at answer %d", i)
		}
	}

	finished, err := s.SubmitAnswer(context.Background(), "")
	if err != nil {
		t.Fatalf("final SubmitAnswer: %v", err)
	}
	if !finished || !s.Finished() {
		t.Fatalf("expected session finished")
	}

	// 3 asker + 3 respondent turns.
	tr := s.Transcript()
	if len(tr) != 6 {
		t.Fatalf("transcript length = %d, want 6", len(tr))
	}
	if tr[0].Role != RoleInterviewer || tr[1].Role != RoleCandidate {
		t.Fatalf("turn roles wrong: %s / %s", tr[0].Role, tr[1].Role)
	}
	if tr[5].Text != PlaceholderAnswer {
		t.Fatalf("empty answer should record placeholder, got %q", tr[5].Text)
	}

	if len(tracker.calls) != 1 {
		t.Fatalf("tracker calls = %d, want 1", len(tracker.calls))
	}
	if tracker.calls[0].id != appID || tracker.calls[0].status != string(pipeline.StatusInterviewCompleted) {
		t.Fatalf("tracker called with %v/%s", tracker.calls[0].id, tracker.calls[0].status)
	}

	if _, err := s.SubmitAnswer(context.Background(), "extra"); err == nil {
		t.Fatalf("submit after finish should fail")
	}
}

func TestSessionWarningRingBounded(t *testing.T) {
	src := &ScriptedSource{}
	s, err := NewSession(SessionConfig{
		ApplicationID: uuid.New(),
		Questions:     questions(2),
		Signals:       src,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	defer s.Close()

	for i := 0; i < MaxWarnings+3; i++ {
		src.Fire(Signal{Kind: SignalDistraction, Message: fmt.Sprintf("w%d", i)})
	}

	ws := s.Warnings()
	if len(ws) != MaxWarnings {
		t.Fatalf("warning log length = %d, want %d", len(ws), MaxWarnings)
	}
	if ws[0].Message != "w3" || ws[len(ws)-1].Message != fmt.Sprintf("w%d", MaxWarnings+2) {
		t.Fatalf("oldest warnings not evicted first: %+v", ws)
	}
}

func TestSessionTeardownStopsSignals(t *testing.T) {
	src := &ScriptedSource{}
	s, err := NewSession(SessionConfig{
		ApplicationID: uuid.New(),
		Questions:     questions(2),
		Signals:       src,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	src.Fire(Signal{Kind: SignalFocusLost, Message: "before close"})
	before := len(s.Warnings())
	if before != 1 {
		t.Fatalf("warnings before close = %d, want 1", before)
	}

	s.Close()
	s.Close() // idempotent

	if src.Fire(Signal{Kind: SignalDistraction, Message: "after close"}) {
		t.Fatalf("source still live after close")
	}
	// Even a signal that slips past the source must not land.
	s.ReportVisibilityLost(context.Background())
	s.ReportFocusLost(context.Background())

	if got := len(s.Warnings()); got != before {
		t.Fatalf("warning log changed after close: %d -> %d", before, got)
	}
}

func TestSessionFinishTearsDownMonitoring(t *testing.T) {
	src := &ScriptedSource{}
	s, err := NewSession(SessionConfig{
		ApplicationID: uuid.New(),
		Questions:     questions(1),
		Signals:       src,
		Tracker:       &fakeTracker{},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if _, err := s.SubmitAnswer(context.Background(), "done"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if src.Fire(Signal{Kind: SignalDistraction, Message: "late"}) {
		t.Fatalf("source still live after completion")
	}
	if len(s.Warnings()) != 0 {
		t.Fatalf("no warnings expected, got %d", len(s.Warnings()))
	}
}

func TestSessionEnvironmentSignals(t *testing.T) {
	s, err := NewSession(SessionConfig{
		ApplicationID: uuid.New(),
		Questions:     questions(2),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	defer s.Close()

	s.ReportVisibilityLost(context.Background())
	s.ReportFocusLost(context.Background())

	ws := s.Warnings()
	if len(ws) != 2 {
		t.Fatalf("warnings = %d, want 2", len(ws))
	}
	if ws[0].Kind != SignalVisibilityLost || ws[1].Kind != SignalFocusLost {
		t.Fatalf("warning kinds wrong: %+v", ws)
	}
}

func TestSessionEvents(t *testing.T) {
	var mu sync.Mutex
	events := make([]Event, 0)
	s, err := NewSession(SessionConfig{
		ApplicationID: uuid.New(),
		Questions:     questions(2),
		OnEvent: func(e Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	defer s.Close()

	if _, err := s.SubmitAnswer(context.Background(), "a"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if _, err := s.SubmitAnswer(context.Background(), "b"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (question, finished)", len(events))
	}
	if events[0].Type != "question" || events[1].Type != "finished" {
		t.Fatalf("event types wrong: %s, %s", events[0].Type, events[1].Type)
	}
}
