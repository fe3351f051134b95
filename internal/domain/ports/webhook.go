package ports

import (
	"context"
	"time"
)

// PublishedArticle é o envelope JSON enviado ao webhook de publicação
type PublishedArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CoreEntity  string    `json:"coreEntity"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
}

// WebhookPublisher entrega um artigo a uma URL externa.
// Resposta não-2xx é erro; não há retry.
type WebhookPublisher interface {
	Publish(ctx context.Context, url string, article PublishedArticle) error
}
