package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAISource generates questions with a chat model and falls back to the
// template bank when the model call or parsing fails, so callers always get
// a usable set while the API is flaky.
type OpenAISource struct {
	client   openai.Client
	model    string
	fallback Source
	logger   *log.Logger
}

func NewOpenAISource(apiKey, model string, fallback Source, logger *log.Logger) *OpenAISource {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAISource{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		fallback: fallback,
		logger:   logger,
	}
}

type generatedQuestion struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        int      `json:"points"`
}

func (s *OpenAISource) Generate(ctx context.Context, req Request) ([]Question, error) {
	qs, err := s.generate(ctx, req)
	if err == nil && len(qs) > 0 {
		return qs, nil
	}
	if s.logger != nil {
		s.logger.Printf("component=questiongen source=openai status=fallback err=%v", err)
	}
	if s.fallback != nil {
		return s.fallback.Generate(ctx, req)
	}
	if err == nil {
		err = fmt.Errorf("%w: model returned no questions", ErrGeneration)
	}
	return nil, err
}

func (s *OpenAISource) generate(ctx context.Context, req Request) ([]Question, error) {
	n := req.count()
	prompt := fmt.Sprintf(
		"Generate %d %s-difficulty screening questions for the role %q in department %q. Relevant skills: %s.\n"+
			"Respond with ONLY a JSON array; each element has fields: text, type (\"multiple_choice\" or \"text\"), options (multiple_choice only), correct_answer (multiple_choice only), points (integer).",
		n, req.Difficulty, req.JobTitle, req.Department, strings.Join(req.Skills, ", "))

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You write hiring screening questions. Output strict JSON only."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrGeneration)
	}

	raw := strings.TrimSpace(completion.Choices[0].Message.Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed []generatedQuestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: unparsable model output: %v", ErrGeneration, err)
	}

	pts := Points(req.Difficulty)
	out := make([]Question, 0, len(parsed))
	for _, q := range parsed {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}
		typ := q.Type
		if typ != TypeMultipleChoice {
			typ = TypeText
		}
		points := q.Points
		if points <= 0 {
			points = pts
		}
		out = append(out, Question{
			Text:          text,
			Type:          typ,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
		})
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
