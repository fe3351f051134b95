package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
)

const (
	brainstormCount = 5
	suggestionCount = 10
)

// TopicService implementa o pipeline de conteúdo
type TopicService struct {
	topicRepo repositories.TopicRepository
	userRepo  repositories.UserRepository
	uow       ports.UnitOfWork
	generator ports.TextGenerator
	notifier  ports.PipelineNotifier
	logger    ports.Logger
}

// NewTopicService cria um novo TopicService
func NewTopicService(
	topicRepo repositories.TopicRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	generator ports.TextGenerator,
	notifier ports.PipelineNotifier,
	logger ports.Logger,
) *TopicService {
	return &TopicService{
		topicRepo: topicRepo,
		userRepo:  userRepo,
		uow:       uow,
		generator: generator,
		notifier:  notifierOrNop(notifier),
		logger:    logger,
	}
}

// CreateTopicInput representa os dados de criação manual; vazios usam o default
type CreateTopicInput struct {
	Title    string
	Status   string
	Priority string
}

// Create cria um tópico com core entity derivado do título
func (s *TopicService) Create(ctx context.Context, input CreateTopicInput) (*entities.Topic, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.ErrTitleRequired
	}

	var status entities.Status
	if input.Status != "" {
		parsed, ok := entities.ParseStatus(input.Status)
		if !ok {
			return nil, errors.ErrInvalidStatus
		}
		status = parsed
	}

	var priority entities.Priority
	if input.Priority != "" {
		parsed, ok := entities.ParsePriority(input.Priority)
		if !ok {
			return nil, errors.ErrInvalidPriority
		}
		priority = parsed
	}

	topic := entities.NewTopic(userID, input.Title, "", status, priority)
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		s.logger.Error("failed to create topic", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("topic created", "user_id", userID, "topic_id", topic.ID, "status", topic.Status)
	s.notifier.PipelineChanged(userID, ReasonTopicCreated)
	return topic, nil
}

// Get busca um tópico do usuário autenticado
func (s *TopicService) Get(ctx context.Context, id string) (*entities.Topic, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return loadTopic(ctx, s.topicRepo, id, userID)
}

// Board devolve os tópicos agrupados nas cinco colunas, mais recentes primeiro
func (s *TopicService) Board(ctx context.Context) (entities.Board, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return entities.Board{}, err
	}

	topics, err := s.topicRepo.ListByUser(ctx, userID, repositories.TopicFilters{})
	if err != nil {
		return entities.Board{}, err
	}
	return entities.NewBoard(topics), nil
}

// UpdateStatus move o card de coluna. Qualquer transição é permitida;
// id de outro usuário é no-op silencioso.
func (s *TopicService) UpdateStatus(ctx context.Context, id, rawStatus string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	status, ok := entities.ParseStatus(rawStatus)
	if !ok {
		return errors.ErrInvalidStatus
	}

	affected, err := s.topicRepo.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		return err
	}

	if affected > 0 {
		s.logger.Info("topic status updated", "user_id", userID, "topic_id", id, "status", status)
		s.notifier.PipelineChanged(userID, ReasonTopicStatusChanged)
	}
	return nil
}

// UpdateContent sobrescreve o rascunho sem mexer no status
func (s *TopicService) UpdateContent(ctx context.Context, id, content string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	affected, err := s.topicRepo.UpdateContent(ctx, id, userID, content)
	if err != nil {
		return err
	}

	if affected > 0 {
		s.logger.Debug("topic content saved", "user_id", userID, "topic_id", id, "bytes", len(content))
		s.notifier.PipelineChanged(userID, ReasonTopicContentSaved)
	}
	return nil
}

// Delete remove o tópico; id ausente ou alheio é no-op silencioso
func (s *TopicService) Delete(ctx context.Context, id string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	affected, err := s.topicRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}

	if affected > 0 {
		s.logger.Info("topic deleted", "user_id", userID, "topic_id", id)
		s.notifier.PipelineChanged(userID, ReasonTopicDeleted)
	}
	return nil
}

type brainstormItem struct {
	TopicName  string `json:"topicName"`
	CoreEntity string `json:"coreEntity"`
	Priority   string `json:"priority"`
}

// Brainstorm pede ao gateway exatamente cinco tópicos para a palavra-chave e
// os insere em uma única transação. Saída malformada não insere nada.
func (s *TopicService) Brainstorm(ctx context.Context, keyword string) ([]*entities.Topic, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.ErrKeywordRequired
	}

	s.logger.Info("brainstorming topics", "user_id", userID, "keyword", keyword)

	output, err := s.generator.Generate(ctx, brainstormPrompt(keyword), ports.GenerateOptions{ForceJSON: true})
	if err != nil {
		return nil, err
	}

	var items []brainstormItem
	if err := decodeArray(output, &items); err != nil {
		return nil, err
	}

	topics, err := brainstormTopics(userID, items)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.topicRepo.CreateMany(txCtx, topics)
	})
	if err != nil {
		s.logger.Error("failed to save brainstormed topics", "user_id", userID, "error", err)
		return nil, err
	}

	s.notifier.PipelineChanged(userID, ReasonTopicsBrainstormed)
	return topics, nil
}

func brainstormTopics(userID string, items []brainstormItem) ([]*entities.Topic, error) {
	if len(items) < brainstormCount {
		return nil, malformed(fmt.Errorf("expected %d topics, got %d", brainstormCount, len(items)))
	}

	topics := make([]*entities.Topic, 0, brainstormCount)
	for _, item := range items[:brainstormCount] {
		title := strings.TrimSpace(item.TopicName)
		if title == "" {
			return nil, malformed(fmt.Errorf("topic without title"))
		}

		priority, ok := entities.ParsePriority(item.Priority)
		if !ok {
			return nil, malformed(fmt.Errorf("invalid priority %q", item.Priority))
		}

		topics = append(topics, entities.NewTopic(userID, title, item.CoreEntity, entities.StatusIdea, priority))
	}
	return topics, nil
}

// TopicSuggestion é uma sugestão não persistida de pauta
type TopicSuggestion struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

// SuggestTopics sugere dez pautas a partir do site e da descrição da marca
func (s *TopicService) SuggestTopics(ctx context.Context) ([]TopicSuggestion, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if !user.HasWebsite() {
		return nil, errors.ErrWebsiteNotConfigured
	}

	output, err := s.generator.Generate(ctx, suggestionsPrompt(user), ports.GenerateOptions{ForceJSON: true})
	if err != nil {
		return nil, err
	}

	var raw []TopicSuggestion
	if err := decodeArray(output, &raw); err != nil {
		return nil, err
	}

	suggestions := make([]TopicSuggestion, 0, suggestionCount)
	for _, suggestion := range raw {
		suggestion.Topic = strings.TrimSpace(suggestion.Topic)
		suggestion.Reason = strings.TrimSpace(suggestion.Reason)
		if suggestion.Topic == "" {
			continue
		}
		suggestions = append(suggestions, suggestion)
		if len(suggestions) == suggestionCount {
			break
		}
	}

	if len(suggestions) == 0 {
		return nil, malformed(fmt.Errorf("no suggestions returned"))
	}
	return suggestions, nil
}
