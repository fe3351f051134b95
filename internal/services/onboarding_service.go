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

// OnboardingService conduz o wizard inicial: marca, concorrentes e pautas
type OnboardingService struct {
	userRepo       repositories.UserRepository
	competitorRepo repositories.CompetitorRepository
	topicRepo      repositories.TopicRepository
	uow            ports.UnitOfWork
	notifier       ports.PipelineNotifier
	logger         ports.Logger
}

// NewOnboardingService cria um novo OnboardingService
func NewOnboardingService(
	userRepo repositories.UserRepository,
	competitorRepo repositories.CompetitorRepository,
	topicRepo repositories.TopicRepository,
	uow ports.UnitOfWork,
	notifier ports.PipelineNotifier,
	logger ports.Logger,
) *OnboardingService {
	return &OnboardingService{
		userRepo:       userRepo,
		competitorRepo: competitorRepo,
		topicRepo:      topicRepo,
		uow:            uow,
		notifier:       notifierOrNop(notifier),
		logger:         logger,
	}
}

// CompetitorSeed é um concorrente informado no wizard
type CompetitorSeed struct {
	Name string
	URL  string
}

// OnboardingInput reúne tudo que o wizard coleta
type OnboardingInput struct {
	Website          string
	BrandDescription string
	Region           string
	Language         string
	Topics           []string
	Competitors      []CompetitorSeed
}

// SaveBrand grava site e descrição da marca (primeiro passo do wizard)
func (s *OnboardingService) SaveBrand(ctx context.Context, website, description string) (*entities.User, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeWebsite(website)
	if err != nil {
		return nil, err
	}

	user.SetWebsite(normalized)
	user.BrandDescription = strings.TrimSpace(description)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("brand saved", "user_id", user.ID)
	return user, nil
}

// Complete conclui o onboarding em uma transação: perfil, concorrentes e
// pautas entram juntos ou nada é gravado.
func (s *OnboardingService) Complete(ctx context.Context, input OnboardingInput) (*entities.User, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	website, err := normalizeWebsite(input.Website)
	if err != nil {
		return nil, err
	}

	competitors, err := competitorSeeds(user.ID, input.Competitors)
	if err != nil {
		return nil, err
	}
	topics := topicSeeds(user.ID, input.Topics)

	user.SetWebsite(website)
	user.BrandDescription = strings.TrimSpace(input.BrandDescription)
	user.Region = strings.TrimSpace(input.Region)
	user.Language = strings.TrimSpace(input.Language)
	user.OnboardingCompleted = true
	user.ApplyDefaults()

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}
		if err := s.competitorRepo.CreateMany(txCtx, competitors); err != nil {
			return err
		}
		return s.topicRepo.CreateMany(txCtx, topics)
	})
	if err != nil {
		s.logger.Error("failed to complete onboarding", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("onboarding completed",
		"user_id", user.ID,
		"competitors", len(competitors),
		"topics", len(topics),
	)
	if len(topics) > 0 {
		s.notifier.PipelineChanged(user.ID, ReasonOnboardingSeeded)
	}
	return user, nil
}

// competitorSeeds valida todas as URLs antes de qualquer escrita
func competitorSeeds(userID string, seeds []CompetitorSeed) ([]*entities.Competitor, error) {
	result := make([]*entities.Competitor, 0, len(seeds))
	for _, seed := range seeds {
		if strings.TrimSpace(seed.URL) == "" {
			if strings.TrimSpace(seed.Name) == "" {
				continue
			}
			return nil, errors.ErrCompetitorRequired
		}
		site, err := valueobjects.NewWebsiteURL(seed.URL)
		if err != nil {
			return nil, errors.ErrInvalidURL
		}
		result = append(result, entities.NewCompetitor(userID, seed.Name, site))
	}
	return result, nil
}

// topicSeeds ignora títulos vazios e repetidos
func topicSeeds(userID string, titles []string) []*entities.Topic {
	cleaned := cleanKeywords(titles)
	result := make([]*entities.Topic, 0, len(cleaned))
	for _, title := range cleaned {
		result = append(result, entities.NewTopic(userID, title, "", entities.StatusIdea, entities.PriorityMedium))
	}
	return result
}
