package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/infrastructure/scraper"
)

const (
	minScanTextLen = 50
	maxScanTextLen = 10000
)

// AEOOptions ajusta o scan do site do usuário
type AEOOptions struct {
	ScanTimeout time.Duration
	UserAgent   string        // UA de navegador; alguns sites bloqueiam bots
	RescanAfter time.Duration // idade máxima do resultado reaproveitado
}

// AEOScan é o resultado do scan e se ele veio do banco
type AEOScan struct {
	entities.AEOResult
	Cached bool
}

// AEOService avalia o quão citável o site do usuário é para answer engines
type AEOService struct {
	userRepo  repositories.UserRepository
	fetcher   ports.PageFetcher
	generator ports.TextGenerator
	logger    ports.Logger
	opts      AEOOptions
	now       clock
}

// NewAEOService cria um novo AEOService
func NewAEOService(
	userRepo repositories.UserRepository,
	fetcher ports.PageFetcher,
	generator ports.TextGenerator,
	opts AEOOptions,
	logger ports.Logger,
) *AEOService {
	return &AEOService{
		userRepo:  userRepo,
		fetcher:   fetcher,
		generator: generator,
		logger:    logger,
		opts:      opts,
	}
}

type aeoPayload struct {
	Score     *float64 `json:"score"`
	Status    string   `json:"status"`
	Reasoning string   `json:"reasoning"`
}

// Scan pontua o texto visível da home. Sem force, um resultado persistido
// mais novo que RescanAfter é devolvido sem nova busca.
func (s *AEOService) Scan(ctx context.Context, force bool) (*AEOScan, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if !user.HasWebsite() {
		return nil, errors.ErrWebsiteNotConfigured
	}

	now := s.now.now()
	if !force && user.AEO.IsFresh(user.Website, now, s.opts.RescanAfter) {
		return &AEOScan{AEOResult: *user.AEO, Cached: true}, nil
	}

	page, err := s.fetchHome(ctx, user.Website)
	if err != nil {
		return nil, err
	}

	text, err := scraper.VisibleText(page.HTML, maxScanTextLen)
	if err != nil {
		return nil, errors.Upstream(user.Website, "unreadable page", err)
	}
	if len([]rune(text)) < minScanTextLen {
		return nil, errors.ErrNotEnoughText
	}

	s.logger.Info("scanning website", "user_id", user.ID, "website", user.Website, "chars", len([]rune(text)))

	output, err := s.generator.Generate(ctx, aeoScanPrompt(text), ports.GenerateOptions{ForceJSON: true})
	if err != nil {
		return nil, err
	}

	var payload aeoPayload
	if err := decodeObject(output, &payload); err != nil {
		return nil, err
	}

	result, err := payload.toResult(now)
	if err != nil {
		return nil, err
	}
	result.Website = user.Website

	if err := s.userRepo.SaveAEOResult(ctx, user.ID, result); err != nil {
		s.logger.Error("failed to save aeo result", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("website scanned", "user_id", user.ID, "score", result.Score, "status", result.Status)
	return &AEOScan{AEOResult: result}, nil
}

func (p aeoPayload) toResult(now time.Time) (entities.AEOResult, error) {
	if p.Score == nil {
		return entities.AEOResult{}, malformed(fmt.Errorf("missing score"))
	}
	score := *p.Score
	if score < 0 || score > entities.MaxAnalysisScore || score != math.Trunc(score) {
		return entities.AEOResult{}, malformed(fmt.Errorf("score %v out of range", score))
	}

	status := entities.AEOStatus(strings.TrimSpace(p.Status))
	if !status.IsValid() {
		return entities.AEOResult{}, malformed(fmt.Errorf("unknown status %q", p.Status))
	}

	return entities.AEOResult{
		Score:     int(score),
		Status:    status,
		Reasoning: strings.TrimSpace(p.Reasoning),
		ScannedAt: now,
	}, nil
}

// Audit roda as regras fixas de SEO on-page na home do usuário
func (s *AEOService) Audit(ctx context.Context) ([]entities.SEOIssue, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if !user.HasWebsite() {
		return nil, errors.ErrWebsiteNotConfigured
	}

	page, err := s.fetchHome(ctx, user.Website)
	if err != nil {
		return nil, err
	}

	issues, err := scraper.Audit(page.HTML)
	if err != nil {
		return nil, errors.Upstream(user.Website, "unreadable page", err)
	}
	return issues, nil
}

func (s *AEOService) fetchHome(ctx context.Context, website string) (*ports.Page, error) {
	page, err := s.fetcher.Fetch(ctx, website, ports.FetchOptions{
		Timeout:   s.opts.ScanTimeout,
		UserAgent: s.opts.UserAgent,
	})
	if err != nil {
		s.logger.Warn("website fetch failed", "website", website, "error", err)
		return nil, errors.Upstream(website, "could not be reached", err)
	}
	if !page.OK() {
		return nil, errors.UpstreamStatus(website, page.Status)
	}
	return page, nil
}
