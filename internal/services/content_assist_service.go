package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/infrastructure/sanitizer"
)

const (
	maxEntities         = 8
	maxEntityWords      = 3
	minMaximizeDraftLen = 50
)

// ContentAssistService reúne os protocolos de escrita assistida por IA.
// Em falha do gateway nada é gravado.
type ContentAssistService struct {
	topicRepo repositories.TopicRepository
	userRepo  repositories.UserRepository
	generator ports.TextGenerator
	notifier  ports.PipelineNotifier
	logger    ports.Logger

	outline *sanitizer.Sanitizer
	section *sanitizer.Sanitizer
	article *sanitizer.Sanitizer
}

// NewContentAssistService cria um novo ContentAssistService
func NewContentAssistService(
	topicRepo repositories.TopicRepository,
	userRepo repositories.UserRepository,
	generator ports.TextGenerator,
	notifier ports.PipelineNotifier,
	logger ports.Logger,
) *ContentAssistService {
	return &ContentAssistService{
		topicRepo: topicRepo,
		userRepo:  userRepo,
		generator: generator,
		notifier:  notifierOrNop(notifier),
		logger:    logger,
		outline:   sanitizer.Outline(),
		section:   sanitizer.Section(),
		article:   sanitizer.Article(),
	}
}

// GenerateOutline gera o esboço HTML do artigo. Não é persistido.
func (s *ContentAssistService) GenerateOutline(ctx context.Context, topicID string) (string, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return "", err
	}
	topic, err := loadTopic(ctx, s.topicRepo, topicID, user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info("generating outline", "user_id", user.ID, "topic_id", topic.ID)

	return s.generateHTML(ctx, outlinePrompt(topic, user.BrandDescription), s.outline)
}

type entitiesPayload struct {
	Entities []string `json:"entities"`
}

// GenerateEntities sugere até oito palavras-chave semânticas e sobrescreve a
// lista do tópico
func (s *ContentAssistService) GenerateEntities(ctx context.Context, topicID string) ([]string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	topic, err := loadTopic(ctx, s.topicRepo, topicID, userID)
	if err != nil {
		return nil, err
	}

	output, err := s.generator.Generate(ctx, entitiesPrompt(topic), ports.GenerateOptions{ForceJSON: true})
	if err != nil {
		return nil, err
	}

	var payload entitiesPayload
	if err := decodeObject(output, &payload); err != nil {
		return nil, err
	}

	list := validEntities(payload.Entities)
	if len(list) == 0 {
		return nil, malformed(fmt.Errorf("no usable entities"))
	}

	if _, err := s.topicRepo.SetEntities(ctx, topic.ID, userID, list); err != nil {
		s.logger.Error("failed to save entities", "topic_id", topic.ID, "error", err)
		return nil, err
	}

	s.logger.Info("entities generated", "topic_id", topic.ID, "count", len(list))
	return list, nil
}

// validEntities mantém entradas de 1 a 3 palavras, sem duplicatas, no máximo oito
func validEntities(raw []string) []string {
	result := make([]string, 0, maxEntities)
	for _, entity := range cleanKeywords(raw) {
		if len(strings.Fields(entity)) > maxEntityWords {
			continue
		}
		result = append(result, entity)
		if len(result) == maxEntities {
			break
		}
	}
	return result
}

// GenerateSection escreve uma seção usando as frases exatas pedidas. Não é persistido.
func (s *ContentAssistService) GenerateSection(ctx context.Context, topicID string, keywords []string) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}

	keywords = cleanKeywords(keywords)
	if len(keywords) == 0 {
		return "", errors.ErrKeywordsRequired
	}

	topic, err := loadTopic(ctx, s.topicRepo, topicID, userID)
	if err != nil {
		return "", err
	}

	return s.generateHTML(ctx, sectionPrompt(topic, keywords), s.section)
}

// MaximizeCoverage reescreve o rascunho inteiro incluindo as palavras que
// faltam. Rascunho curto ou cobertura completa são rejeitados antes do gateway.
func (s *ContentAssistService) MaximizeCoverage(ctx context.Context, topicID, content string, missing []string) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}
	topic, err := loadTopic(ctx, s.topicRepo, topicID, userID)
	if err != nil {
		return "", err
	}

	plain := sanitizer.PlainText(content)
	if len([]rune(plain)) < minMaximizeDraftLen {
		return "", errors.ErrDraftTooShort
	}
	if entities.ComputeCoverage(plain, topic.Entities).IsComplete() {
		return "", errors.ErrCoverageComplete
	}

	missing = cleanKeywords(missing)
	if len(missing) == 0 {
		return "", errors.ErrKeywordsRequired
	}

	s.logger.Info("maximizing coverage", "topic_id", topic.ID, "missing", len(missing))

	return s.generateHTML(ctx, maximizePrompt(topic, content, missing), s.article)
}

// Coverage calcula quais entidades do tópico aparecem no rascunho informado
func (s *ContentAssistService) Coverage(ctx context.Context, topicID, content string) (entities.Coverage, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return entities.Coverage{}, err
	}
	topic, err := loadTopic(ctx, s.topicRepo, topicID, userID)
	if err != nil {
		return entities.Coverage{}, err
	}

	return entities.ComputeCoverage(sanitizer.PlainText(content), topic.Entities), nil
}

// RequestEdit reescreve o rascunho conforme a instrução e grava o resultado.
// O status do tópico não muda.
func (s *ContentAssistService) RequestEdit(ctx context.Context, topicID, content, instruction string) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}

	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "", errors.ErrInstructionRequired
	}

	topic, err := loadTopic(ctx, s.topicRepo, topicID, userID)
	if err != nil {
		return "", err
	}

	edited, err := s.generateHTML(ctx, editPrompt(topic, content, instruction), s.article)
	if err != nil {
		return "", err
	}

	affected, err := s.topicRepo.UpdateContent(ctx, topic.ID, userID, edited)
	if err != nil {
		s.logger.Error("failed to save edited draft", "topic_id", topic.ID, "error", err)
		return "", err
	}
	if affected > 0 {
		s.notifier.PipelineChanged(userID, ReasonTopicContentSaved)
	}

	return edited, nil
}

func (s *ContentAssistService) generateHTML(ctx context.Context, prompt string, policy *sanitizer.Sanitizer) (string, error) {
	output, err := s.generator.Generate(ctx, prompt, ports.GenerateOptions{})
	if err != nil {
		return "", err
	}

	html := policy.Clean(output)
	if html == "" {
		return "", errors.Upstream(llmSource, "empty response", nil)
	}
	return html, nil
}
