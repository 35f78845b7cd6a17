package menugen

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultModel = "gpt-4o-mini"
	defaultMax   = 6
)

const systemPrompt = `You suggest restaurant meals for a group deciding where to eat.
Reply with JSON only: an array of objects with keys
"name" (dish or meal), "location" (restaurant name), "averagePrice" (number, per person)
and "tags" (short lower-case cuisine or diet labels such as "thai", "vegan", "spicy").`

// Config holds configuration for the OpenAI generator
type Config struct {
	// APIKey is the OpenAI API key
	APIKey string

	// Model defaults to gpt-4o-mini
	Model string

	// BaseURL overrides the API endpoint, used by tests
	BaseURL string
}

// openAIGenerator implements Generator with the chat completions API
type openAIGenerator struct {
	client openai.Client
	model  string
}

var _ Generator = (*openAIGenerator)(nil)

// NewOpenAI creates an OpenAI-backed generator
func NewOpenAI(cfg *Config) (*openAIGenerator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	// One attempt per request; the host sees the failure and can retry
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &openAIGenerator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate asks the model for input.Max suggestions and parses its reply.
// The reply is not truncated: rows are validated by the caller, which caps
// the valid ones.
func (g *openAIGenerator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	max := defaultMax
	if input.Max > 0 {
		max = input.Max
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(input, max)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call model: %w", err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	suggestions, err := ParseSuggestions(completion.Choices[0].Message.Content, 0)
	if err != nil {
		return nil, err
	}

	return &GenerateOutput{
		Suggestions: suggestions,
	}, nil
}

// BuildPrompt renders the user prompt for a generation request
func BuildPrompt(input *GenerateInput, max int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Suggest up to %d options.\n", max)
	if prefs := strings.TrimSpace(input.Prefs); prefs != "" {
		fmt.Fprintf(&b, "The group is in the mood for: %s\n", prefs)
	}
	if len(input.AvoidTags) > 0 {
		fmt.Fprintf(&b, "Never suggest anything tagged: %s\n", strings.Join(input.AvoidTags, ", "))
	}

	return b.String()
}
