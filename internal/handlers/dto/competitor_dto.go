package dto

import (
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

// CreateCompetitorRequest cadastra um concorrente
type CreateCompetitorRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	URL  string `json:"url" binding:"required,max=2048"`
}

// CompetitorResponse representa um concorrente
type CompetitorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCompetitorResponse converte uma entidade Competitor
func ToCompetitorResponse(c *entities.Competitor) CompetitorResponse {
	return CompetitorResponse{ID: c.ID, Name: c.Name, URL: c.URL, CreatedAt: c.CreatedAt}
}

// ToCompetitorResponses converte uma lista de concorrentes
func ToCompetitorResponses(list []*entities.Competitor) []CompetitorResponse {
	responses := make([]CompetitorResponse, len(list))
	for i, c := range list {
		responses[i] = ToCompetitorResponse(c)
	}
	return responses
}

// CompetitorMatchResponse é um resultado do autocomplete
type CompetitorMatchResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ToCompetitorMatchResponses converte os resultados da busca
func ToCompetitorMatchResponses(matches []entities.CompetitorMatch) []CompetitorMatchResponse {
	responses := make([]CompetitorMatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = CompetitorMatchResponse{Name: m.Name, URL: m.URL}
	}
	return responses
}

// GapScoresResponse traz as notas do relatório
type GapScoresResponse struct {
	UserScore int    `json:"userScore"`
	CompScore int    `json:"compScore"`
	Reasoning string `json:"reasoning"`
}

// FeatureRowResponse é uma linha da tabela de comparação
type FeatureRowResponse struct {
	Feature    string `json:"feature"`
	UserStatus string `json:"userStatus"`
	CompStatus string `json:"compStatus"`
}

// GapReportResponse mantém as chaves do formato pedido ao modelo
type GapReportResponse struct {
	Scores               GapScoresResponse    `json:"scores"`
	FeatureComparison    []FeatureRowResponse `json:"featureComparison"`
	MyAdvantages         []string             `json:"myAdvantages"`
	CompetitorAdvantages []string             `json:"competitorAdvantages"`
	ActionPlan           []string             `json:"actionPlan"`
}

// ToGapReportResponse converte o relatório validado
func ToGapReportResponse(report *entities.GapReport) GapReportResponse {
	rows := make([]FeatureRowResponse, len(report.FeatureComparison))
	for i, row := range report.FeatureComparison {
		rows[i] = FeatureRowResponse{Feature: row.Feature, UserStatus: row.UserStatus, CompStatus: row.CompStatus}
	}
	return GapReportResponse{
		Scores: GapScoresResponse{
			UserScore: report.Scores.UserScore,
			CompScore: report.Scores.CompScore,
			Reasoning: report.Scores.Reasoning,
		},
		FeatureComparison:    rows,
		MyAdvantages:         report.MyAdvantages,
		CompetitorAdvantages: report.CompetitorAdvantages,
		ActionPlan:           report.ActionPlan,
	}
}
