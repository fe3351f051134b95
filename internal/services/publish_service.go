package services

import (
	"context"
	"strings"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/domain/valueobjects"
)

// PublishService entrega rascunhos prontos ao webhook do usuário
type PublishService struct {
	topicRepo repositories.TopicRepository
	userRepo  repositories.UserRepository
	publisher ports.WebhookPublisher
	notifier  ports.PipelineNotifier
	logger    ports.Logger
	now       clock
}

// NewPublishService cria um novo PublishService
func NewPublishService(
	topicRepo repositories.TopicRepository,
	userRepo repositories.UserRepository,
	publisher ports.WebhookPublisher,
	notifier ports.PipelineNotifier,
	logger ports.Logger,
) *PublishService {
	return &PublishService{
		topicRepo: topicRepo,
		userRepo:  userRepo,
		publisher: publisher,
		notifier:  notifierOrNop(notifier),
		logger:    logger,
	}
}

// Publish envia o artigo e só então move o tópico para Published.
// Falha na entrega mantém o status atual.
func (s *PublishService) Publish(ctx context.Context, topicID, webhookURL string) (*entities.Topic, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(webhookURL) == "" {
		return nil, errors.ErrWebhookURLRequired
	}
	if !hasHTTPScheme(webhookURL) {
		return nil, errors.ErrInvalidURL
	}
	target, err := valueobjects.NewWebsiteURL(webhookURL)
	if err != nil {
		return nil, errors.ErrInvalidURL
	}

	topic, err := loadTopic(ctx, s.topicRepo, topicID, user.ID)
	if err != nil {
		return nil, err
	}
	if !topic.HasContent() {
		return nil, errors.ErrEmptyDraft
	}

	article := ports.PublishedArticle{
		ID:          topic.ID,
		Title:       topic.Title,
		Content:     topic.Content,
		CoreEntity:  topic.CoreEntity,
		Author:      user.DisplayName(),
		PublishedAt: s.now.now(),
	}

	s.logger.Info("publishing topic", "user_id", user.ID, "topic_id", topic.ID, "webhook_host", target.Host())

	if err := s.publisher.Publish(ctx, target.String(), article); err != nil {
		s.logger.Warn("webhook delivery failed", "topic_id", topic.ID, "error", err)
		return nil, err
	}

	if _, err := s.topicRepo.UpdateStatus(ctx, topic.ID, user.ID, entities.StatusPublished); err != nil {
		s.logger.Error("failed to mark topic as published", "topic_id", topic.ID, "error", err)
		return nil, err
	}
	topic.Status = entities.StatusPublished

	s.notifier.PipelineChanged(user.ID, ReasonTopicPublished)
	return topic, nil
}

// hasHTTPScheme exige URL absoluta; hosts sem esquema não são aceitos aqui
func hasHTTPScheme(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
