package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/domain/valueobjects"
	"github.com/rafabene/aeo-studio/internal/infrastructure/scraper"
)

const (
	minSearchQueryLen = 2
	maxSearchResults  = 5
	userSiteSource    = "your site"
)

// CompetitorService gerencia concorrentes e a análise de gap
type CompetitorService struct {
	competitorRepo repositories.CompetitorRepository
	userRepo       repositories.UserRepository
	fetcher        ports.PageFetcher
	generator      ports.TextGenerator
	logger         ports.Logger
	fetchTimeout   time.Duration
}

// NewCompetitorService cria um novo CompetitorService
func NewCompetitorService(
	competitorRepo repositories.CompetitorRepository,
	userRepo repositories.UserRepository,
	fetcher ports.PageFetcher,
	generator ports.TextGenerator,
	fetchTimeout time.Duration,
	logger ports.Logger,
) *CompetitorService {
	return &CompetitorService{
		competitorRepo: competitorRepo,
		userRepo:       userRepo,
		fetcher:        fetcher,
		generator:      generator,
		logger:         logger,
		fetchTimeout:   fetchTimeout,
	}
}

// Add cadastra um concorrente; sem nome, o host vira o nome
func (s *CompetitorService) Add(ctx context.Context, name, rawURL string) (*entities.Competitor, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.ErrCompetitorRequired
	}
	site, err := valueobjects.NewWebsiteURL(rawURL)
	if err != nil {
		return nil, errors.ErrInvalidURL
	}

	competitor := entities.NewCompetitor(userID, name, site)
	if err := s.competitorRepo.Create(ctx, competitor); err != nil {
		s.logger.Error("failed to create competitor", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("competitor added", "user_id", userID, "competitor_id", competitor.ID, "host", site.Host())
	return competitor, nil
}

// List devolve os concorrentes do usuário
func (s *CompetitorService) List(ctx context.Context) ([]*entities.Competitor, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.competitorRepo.ListByUser(ctx, userID)
}

// Delete remove o concorrente; id alheio é no-op silencioso
func (s *CompetitorService) Delete(ctx context.Context, id string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	affected, err := s.competitorRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.logger.Info("competitor deleted", "user_id", userID, "competitor_id", id)
	}
	return nil
}

// Search sugere nomes já cadastrados para o autocomplete do onboarding.
// Consultas com menos de dois caracteres devolvem lista vazia.
func (s *CompetitorService) Search(ctx context.Context, query string) ([]entities.CompetitorMatch, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchQueryLen {
		return []entities.CompetitorMatch{}, nil
	}
	return s.competitorRepo.SearchNames(ctx, userID, query, maxSearchResults)
}

// GapAnalysis compara o site do usuário com um concorrente. As duas páginas
// são buscadas antes de qualquer chamada ao gateway.
func (s *CompetitorService) GapAnalysis(ctx context.Context, competitorID string) (*entities.GapReport, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if !user.HasWebsite() {
		return nil, errors.ErrWebsiteNotConfigured
	}

	competitor, err := s.competitorRepo.FindByID(ctx, competitorID, user.ID)
	if err != nil {
		return nil, err
	}
	if competitor == nil {
		return nil, errors.ErrCompetitorNotFound
	}

	userSummary, err := s.summarize(ctx, user.Website, userSiteSource)
	if err != nil {
		return nil, err
	}

	competitorSummary, err := s.summarize(ctx, competitor.URL, competitorSource(competitor))
	if err != nil {
		return nil, err
	}

	s.logger.Info("running gap analysis", "user_id", user.ID, "competitor_id", competitor.ID)

	output, err := s.generator.Generate(ctx,
		gapPrompt(userSummary.String(), competitorSummary.String()),
		ports.GenerateOptions{ForceJSON: true},
	)
	if err != nil {
		return nil, err
	}

	var raw gapPayload
	if err := decodeObject(output, &raw); err != nil {
		return nil, err
	}
	return raw.toReport()
}

func competitorSource(c *entities.Competitor) string {
	if site, err := valueobjects.NewWebsiteURL(c.URL); err == nil {
		return site.Host()
	}
	return c.Name
}

// summarize busca e resume uma página; source identifica o lado no erro
func (s *CompetitorService) summarize(ctx context.Context, url, source string) (scraper.PageSummary, error) {
	page, err := s.fetcher.Fetch(ctx, url, ports.FetchOptions{Timeout: s.fetchTimeout})
	if err != nil {
		s.logger.Warn("gap analysis fetch failed", "source", source, "error", err)
		return scraper.PageSummary{}, errors.Upstream(source, "could not be reached", err)
	}
	if !page.OK() {
		return scraper.PageSummary{}, errors.UpstreamStatus(source, page.Status)
	}

	summary, err := scraper.Summarize(page.HTML)
	if err != nil {
		return scraper.PageSummary{}, errors.Upstream(source, "unreadable page", err)
	}
	if summary.IsEmpty() {
		return scraper.PageSummary{}, errors.Upstream(source, "page has no title, description or headings", nil)
	}
	return summary, nil
}

type gapPayload struct {
	Scores struct {
		UserScore float64 `json:"userScore"`
		CompScore float64 `json:"compScore"`
		Reasoning string  `json:"reasoning"`
	} `json:"scores"`
	FeatureComparison []struct {
		Feature    string `json:"feature"`
		UserStatus string `json:"userStatus"`
		CompStatus string `json:"compStatus"`
	} `json:"featureComparison"`
	MyAdvantages         []string `json:"myAdvantages"`
	CompetitorAdvantages []string `json:"competitorAdvantages"`
	ActionPlan           []string `json:"actionPlan"`
}

// toReport valida a resposta: notas limitadas a 0-100, Yes/No normalizados,
// listas truncadas no tamanho fixo. Listas curtas são rejeitadas.
func (p gapPayload) toReport() (*entities.GapReport, error) {
	if len(p.FeatureComparison) < entities.GapFeatureRows {
		return nil, malformed(fmt.Errorf("expected %d feature rows, got %d",
			entities.GapFeatureRows, len(p.FeatureComparison)))
	}

	report := &entities.GapReport{
		Scores: entities.GapScores{
			UserScore: clampScore(p.Scores.UserScore),
			CompScore: clampScore(p.Scores.CompScore),
			Reasoning: strings.TrimSpace(p.Scores.Reasoning),
		},
		FeatureComparison: make([]entities.FeatureRow, 0, entities.GapFeatureRows),
	}

	for _, row := range p.FeatureComparison[:entities.GapFeatureRows] {
		feature := strings.TrimSpace(row.Feature)
		if feature == "" {
			return nil, malformed(fmt.Errorf("feature row without name"))
		}
		report.FeatureComparison = append(report.FeatureComparison, entities.FeatureRow{
			Feature:    feature,
			UserStatus: yesNo(row.UserStatus),
			CompStatus: yesNo(row.CompStatus),
		})
	}

	var err error
	if report.MyAdvantages, err = fixedList("myAdvantages", p.MyAdvantages); err != nil {
		return nil, err
	}
	if report.CompetitorAdvantages, err = fixedList("competitorAdvantages", p.CompetitorAdvantages); err != nil {
		return nil, err
	}
	if report.ActionPlan, err = fixedList("actionPlan", p.ActionPlan); err != nil {
		return nil, err
	}

	return report, nil
}

func fixedList(name string, raw []string) ([]string, error) {
	items := make([]string, 0, entities.GapListItems)
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
		if len(items) == entities.GapListItems {
			return items, nil
		}
	}
	return nil, malformed(fmt.Errorf("%s: expected %d items, got %d", name, entities.GapListItems, len(items)))
}

func clampScore(score float64) int {
	switch {
	case score < 0:
		return 0
	case score > entities.MaxAnalysisScore:
		return entities.MaxAnalysisScore
	}
	return int(score + 0.5)
}

// yesNo normaliza variações ("yes", "Y", "true") para Yes/No
func yesNo(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true":
		return entities.FeaturePresent
	}
	return entities.FeatureAbsent
}
