package summarize

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"meetscribe-go/internal/language"
	"meetscribe-go/internal/logger"
)

// Error reports which generation call failed, so the orchestrator can
// record a per-half status without aborting the sibling call.
type Error struct {
	Kind Kind
	Err  error
}

// Error deliberately omits the upstream detail; callers surface this
// string to users, the detail goes to the logs at call time.
func (e *Error) Error() string {
	return fmt.Sprintf("%s generation failed", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Client issues chat-completion calls for narrative summaries and
// action-item lists. It is stateless; both the upload path and the
// transcript-only path share one instance.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	log       *logger.Logger
}

func NewClient(apiKey, model string, maxTokens int, log *logger.Logger) *Client {
	return &Client{
		api:       openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
		log:       log,
	}
}

// NewClientWithConfig allows pointing the client at a non-default API
// base, used by tests.
func NewClientWithConfig(cfg openai.ClientConfig, model string, maxTokens int, log *logger.Logger) *Client {
	return &Client{
		api:       openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
		log:       log,
	}
}

// Generate runs one completion call of the given kind over the
// transcript. The prompt pair is chosen by Arabic-script detection.
func (c *Client) Generate(ctx context.Context, kind Kind, transcript string) (string, error) {
	arabic := language.IsArabic(transcript)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: promptFor(kind, arabic)},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	})
	if err != nil {
		c.log.WithField("component", "summarize").
			WithField("kind", string(kind)).
			WithField("error", err.Error()).
			Warn("completion call failed")
		return "", &Error{Kind: kind, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: kind, Err: fmt.Errorf("empty completion response")}
	}
	return resp.Choices[0].Message.Content, nil
}
