// Package insight fetches a short meaning/benefit note for a dhikr from an
// OpenAI-compatible endpoint. The rest of the app never depends on it
// succeeding: a missing key, an offline machine or a bad response all
// surface as "no insight available".
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("insights disabled: no API key configured")

// Insight is the structured answer for one dhikr.
type Insight struct {
	Meaning string `json:"meaning"`
	Benefit string `json:"benefit"`
	Source  string `json:"source,omitempty"`
}

// Service wraps the chat-completion client. A zero Service is disabled.
type Service struct {
	client *openai.Client
	model  string
}

// New builds a Service from OPENAI_API_KEY and OPENAI_MODEL. Without a key
// the service is disabled rather than failing.
func New() *Service {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Warn("OPENAI_API_KEY not set, insights disabled")
		return &Service{}
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Service{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Enabled reports whether a key was configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Fetch asks for the meaning, benefit and optional source of the named
// dhikr. Any failure is returned as an error; the caller shows a fallback.
func (s *Service) Fetch(ctx context.Context, title string) (*Insight, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}

	prompt := fmt.Sprintf(`Provide a spiritual insight for the Dhikr: %q.
Return a JSON object with:
- "meaning": the English translation or meaning.
- "benefit": a 1-2 sentence explanation of its spiritual benefit or reward in Islam.
- "source": an optional reference (e.g. "Sahih Bukhari" or "Quran 2:152") if applicable, else omit it.`, title)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a knowledgeable and respectful assistant on Islamic remembrance. Answer only with the requested JSON object."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Error("insight request failed", "dhikr", title, "error", err)
		return nil, fmt.Errorf("fetch insight: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("fetch insight: empty response")
	}

	ins, err := parseInsight(resp.Choices[0].Message.Content)
	if err != nil {
		slog.Error("insight response unusable", "dhikr", title, "error", err)
		return nil, err
	}
	return ins, nil
}

// parseInsight decodes the model's answer, tolerating a fenced code block
// around the JSON object.
func parseInsight(text string) (*Insight, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var ins Insight
	if err := json.Unmarshal([]byte(text), &ins); err != nil {
		return nil, fmt.Errorf("parse insight: %w", err)
	}
	if ins.Meaning == "" || ins.Benefit == "" {
		return nil, errors.New("parse insight: missing meaning or benefit")
	}
	return &ins, nil
}
