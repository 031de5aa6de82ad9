package questiongen

import (
	"context"
	"errors"
	"strings"
)

var ErrGeneration = errors.New("question generation failed")

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// QuestionCount is the expected set size per difficulty class.
func QuestionCount(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 12
	default:
		return 8
	}
}

func Points(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 15
	default:
		return 10
	}
}

const (
	TypeMultipleChoice = "multiple_choice"
	TypeText           = "text"
)

type Question struct {
	Text          string
	Type          string
	Options       []string
	CorrectAnswer string
	Points        int
}

type Request struct {
	JobTitle    string
	Department  string
	Description string
	Skills      []string
	Difficulty  Difficulty
	// Count overrides the difficulty default when > 0.
	Count int
}

func (r Request) count() int {
	if r.Count > 0 {
		return r.Count
	}
	return QuestionCount(r.Difficulty)
}

// Source produces a question set for a job. Implementations may be
// non-deterministic, but a successful result is never empty.
type Source interface {
	Generate(ctx context.Context, req Request) ([]Question, error)
}
