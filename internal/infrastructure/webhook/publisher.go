// Package webhook entrega artigos publicados a endpoints externos.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainerrors "github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
)

const source = "webhook"

// Publisher implementa ports.WebhookPublisher com um POST JSON
type Publisher struct {
	client *http.Client
	logger ports.Logger
}

// NewPublisher cria um Publisher; client nil usa timeout de 15s
func NewPublisher(client *http.Client, logger ports.Logger) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Publisher{client: client, logger: logger}
}

// payload fixa o formato do publishedAt em RFC 3339 UTC
type payload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CoreEntity  string `json:"coreEntity"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
}

// Publish envia o artigo; qualquer status fora de 2xx é UpstreamFailure
func (p *Publisher) Publish(ctx context.Context, url string, article ports.PublishedArticle) error {
	body, err := json.Marshal(payload{
		ID:          article.ID,
		Title:       article.Title,
		Content:     article.Content,
		CoreEntity:  article.CoreEntity,
		Author:      article.Author,
		PublishedAt: article.PublishedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domainerrors.Upstream(source, "invalid request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("webhook delivery failed", "topic_id", article.ID, "error", err)
		return domainerrors.Upstream(source, "delivery failed", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("webhook rejected article", "topic_id", article.ID, "status", resp.StatusCode)
		return domainerrors.UpstreamStatus(source, resp.StatusCode)
	}

	p.logger.Info("article delivered to webhook", "topic_id", article.ID, "status", resp.StatusCode)
	return nil
}
