package questiongen

import (
	"context"
	"testing"
)

func TestBankGenerateCounts(t *testing.T) {
	b := NewBank(1)
	cases := []struct {
		difficulty Difficulty
		want       int
	}{
		{DifficultyEasy, 5},
		{DifficultyMedium, 8},
		{DifficultyHard, 12},
	}
	for _, c := range cases {
		qs, err := b.Generate(context.Background(), Request{
			JobTitle:   "Backend Engineer",
			Skills:     []string{"Go", "PostgreSQL"},
			Difficulty: c.difficulty,
		})
		if err != nil {
			t.Fatalf("Generate(%s): %v", c.difficulty, err)
		}
		if len(qs) != c.want {
			t.Fatalf("Generate(%s): got %d questions, want %d", c.difficulty, len(qs), c.want)
		}
		for _, q := range qs {
			if q.Text == "" {
				t.Fatalf("Generate(%s): empty question text", c.difficulty)
			}
			if q.Points != Points(c.difficulty) {
				t.Fatalf("Generate(%s): points = %d, want %d", c.difficulty, q.Points, Points(c.difficulty))
			}
			if q.Type == TypeMultipleChoice && len(q.Options) == 0 {
				t.Fatalf("multiple choice question without options: %q", q.Text)
			}
		}
	}
}

func TestBankGenerateNoSkills(t *testing.T) {
	b := NewBank(7)
	qs, err := b.Generate(context.Background(), Request{Difficulty: DifficultyMedium})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) == 0 {
		t.Fatalf("set must be non-empty even without skills")
	}
}

func TestBankGenerateCountOverride(t *testing.T) {
	b := NewBank(3)
	qs, err := b.Generate(context.Background(), Request{Difficulty: DifficultyEasy, Count: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, ok := ParseDifficulty(" Hard "); !ok || d != DifficultyHard {
		t.Fatalf("ParseDifficulty: got %q ok=%v", d, ok)
	}
	if _, ok := ParseDifficulty("impossible"); ok {
		t.Fatalf("expected unknown difficulty to fail")
	}
}

func TestBankGenerateCancelled(t *testing.T) {
	b := NewBank(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Generate(ctx, Request{Difficulty: DifficultyEasy}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
