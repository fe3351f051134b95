// Package llm implementa o gateway de geração de texto sobre a API da Anthropic.
package llm

import (
	"context"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domainerrors "github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
)

const source = "llm"

const jsonInstruction = "Respond with a single valid JSON document only. " +
	"Do not wrap it in markdown code fences and do not add any commentary."

// Config configura o AnthropicGenerator
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// AnthropicGenerator implementa ports.TextGenerator
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	logger    ports.Logger
}

// NewAnthropicGenerator cria o gateway. Não há retentativas: uma falha
// chega ao chamador como UpstreamFailure.
func NewAnthropicGenerator(cfg Config, logger ports.Logger, opts ...option.RequestOption) *AnthropicGenerator {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &AnthropicGenerator{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Generate envia um único prompt e devolve o texto concatenado da resposta
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.ForceJSON {
		params.System = []anthropic.TextBlockParam{{Text: jsonInstruction}}
	}

	start := time.Now()
	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		g.logger.Warn("llm request failed", "model", g.model, "error", err)
		return "", domainerrors.Upstream(source, "request failed", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", domainerrors.Upstream(source, "empty response", nil)
	}

	g.logger.Debug("llm response received",
		"model", g.model,
		"force_json", opts.ForceJSON,
		"output_tokens", msg.Usage.OutputTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return text, nil
}
