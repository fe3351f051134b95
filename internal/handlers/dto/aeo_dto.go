package dto

import (
	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/services"
)

// AEOScanResponse é o resultado do scan e se veio do cache
type AEOScanResponse struct {
	AEOResultResponse
	Cached bool `json:"cached"`
}

// ToAEOScanResponse converte o resultado do scan
func ToAEOScanResponse(scan *services.AEOScan) AEOScanResponse {
	return AEOScanResponse{AEOResultResponse: ToAEOResultResponse(scan.AEOResult), Cached: scan.Cached}
}

// SEOIssueResponse é um item da auditoria
type SEOIssueResponse struct {
	ID           string   `json:"id"`
	Severity     string   `json:"severity"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	WhyItMatters string   `json:"why_it_matters"`
	HowToFix     []string `json:"how_to_fix"`
	CodeSnippet  string   `json:"code_snippet,omitempty"`
}

// ToSEOIssueResponses converte a auditoria
func ToSEOIssueResponses(issues []entities.SEOIssue) []SEOIssueResponse {
	responses := make([]SEOIssueResponse, len(issues))
	for i, issue := range issues {
		responses[i] = SEOIssueResponse{
			ID:           issue.ID,
			Severity:     string(issue.Severity),
			Title:        issue.Title,
			Description:  issue.Description,
			WhyItMatters: issue.WhyItMatters,
			HowToFix:     issue.HowToFix,
			CodeSnippet:  issue.CodeSnippet,
		}
	}
	return responses
}
