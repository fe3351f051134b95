package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/aeo-studio/internal/auth"
	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
)

// Razões publicadas no evento pipeline.changed
const (
	ReasonTopicCreated       = "topic.created"
	ReasonTopicStatusChanged = "topic.status_changed"
	ReasonTopicContentSaved  = "topic.content_saved"
	ReasonTopicDeleted       = "topic.deleted"
	ReasonTopicsBrainstormed = "topics.brainstormed"
	ReasonTopicPublished     = "topic.published"
	ReasonOnboardingSeeded   = "onboarding.seeded"
)

// requireUser lê a identidade autenticada do contexto
func requireUser(ctx context.Context) (string, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", errors.ErrUnauthorized
	}
	return userID, nil
}

// loadUser carrega o usuário autenticado; conta removida equivale a sessão inválida
func loadUser(ctx context.Context, users repositories.UserRepository) (*entities.User, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	return user, nil
}

// loadTopic busca um tópico do usuário; id alheio vira ErrTopicNotFound
func loadTopic(ctx context.Context, topics repositories.TopicRepository, id, userID string) (*entities.Topic, error) {
	topic, err := topics.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, errors.ErrTopicNotFound
	}
	return topic, nil
}

// cleanKeywords apara, descarta vazios e remove duplicatas sem diferenciar caixa
func cleanKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, keyword := range raw {
		keyword = strings.Join(strings.Fields(keyword), " ")
		if keyword == "" {
			continue
		}
		key := strings.ToLower(keyword)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, keyword)
	}
	return result
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// nopNotifier é usado quando nenhum hub foi configurado
type nopNotifier struct{}

func (nopNotifier) PipelineChanged(string, string) {}

func notifierOrNop(n ports.PipelineNotifier) ports.PipelineNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
