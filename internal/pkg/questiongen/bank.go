package questiongen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Bank is the default question source: skill-templated questions drawn
// from a fixed pool, shuffled per call. Regenerating may yield a different
// set; it never yields an empty one.
type Bank struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBank(seed int64) *Bank {
	return &Bank{rng: rand.New(rand.NewSource(seed))}
}

var skillTemplates = []string{
	"Explain a production problem you solved using %s.",
	"What are the main tradeoffs to consider when adopting %s?",
	"Describe how you would debug a failing system built on %s.",
	"Walk through how you would introduce %s to a team unfamiliar with it.",
	"What limitations of %s have you run into, and how did you work around them?",
}

var generalQuestions = []string{
	"Describe the most complex project you have delivered end to end.",
	"How do you prioritize when several deadlines collide?",
	"Tell us about a time you disagreed with a technical decision. What did you do?",
	"How do you keep your skills current?",
	"What does a healthy code review culture look like to you?",
	"Describe a time you had to deliver bad news to a stakeholder.",
	"How do you approach estimating work you have never done before?",
	"What would your previous team say is your biggest strength?",
}

var choiceQuestions = []struct {
	text    string
	options []string
	answer  string
}{
	{
		text:    "A deployment fails in production. What is the best first action?",
		options: []string{"Roll back to the last good release", "Patch forward immediately", "Restart all services", "Wait for more reports"},
		answer:  "Roll back to the last good release",
	},
	{
		text:    "Which practice most directly reduces integration risk?",
		options: []string{"Continuous integration", "Longer release cycles", "Feature freezes", "Manual regression passes"},
		answer:  "Continuous integration",
	},
	{
		text:    "A teammate's change breaks your feature. What do you do first?",
		options: []string{"Talk to the teammate with the failing case", "Revert their change", "Escalate to the manager", "Fix it silently"},
		answer:  "Talk to the teammate with the failing case",
	},
	{
		text:    "What is the primary goal of a retrospective?",
		options: []string{"Improve how the team works", "Assign blame for misses", "Report status upward", "Plan the next sprint scope"},
		answer:  "Improve how the team works",
	},
}

func (b *Bank) Generate(ctx context.Context, req Request) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := req.count()
	if n <= 0 {
		return nil, fmt.Errorf("%w: non-positive question count", ErrGeneration)
	}

	pts := Points(req.Difficulty)
	pool := make([]Question, 0, len(req.Skills)*len(skillTemplates)+len(generalQuestions)+len(choiceQuestions))

	for _, skill := range req.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		for _, tpl := range skillTemplates {
			pool = append(pool, Question{
				Text:   fmt.Sprintf(tpl, skill),
				Type:   TypeText,
				Points: pts,
			})
		}
	}
	for _, q := range generalQuestions {
		pool = append(pool, Question{Text: q, Type: TypeText, Points: pts})
	}
	for _, q := range choiceQuestions {
		pool = append(pool, Question{
			Text:          q.text,
			Type:          TypeMultipleChoice,
			Options:       append([]string(nil), q.options...),
			CorrectAnswer: q.answer,
			Points:        pts,
		})
	}

	b.mu.Lock()
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	b.mu.Unlock()

	if n > len(pool) {
		n = len(pool)
	}
	out := pool[:n]
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty pool", ErrGeneration)
	}
	return out, nil
}
