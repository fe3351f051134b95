package dto

import "github.com/rafabene/aeo-studio/internal/services"

// BrandRequest é o primeiro passo do wizard
type BrandRequest struct {
	Website          string `json:"website" binding:"required,max=2048"`
	BrandDescription string `json:"brand_description" binding:"max=2000"`
}

// CompetitorSeedRequest é um concorrente informado no wizard
type CompetitorSeedRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	URL  string `json:"url" binding:"max=2048"`
}

// OnboardingRequest conclui o wizard
type OnboardingRequest struct {
	Website          string                  `json:"website" binding:"required,max=2048"`
	BrandDescription string                  `json:"brand_description" binding:"max=2000"`
	Region           string                  `json:"region" binding:"omitempty,max=10"`
	Language         string                  `json:"language" binding:"omitempty,max=10"`
	Topics           []string                `json:"topics" binding:"max=50,dive,max=300"`
	Competitors      []CompetitorSeedRequest `json:"competitors" binding:"max=20,dive"`
}

// ToInput converte a requisição para o input do serviço
func (r OnboardingRequest) ToInput() services.OnboardingInput {
	seeds := make([]services.CompetitorSeed, len(r.Competitors))
	for i, c := range r.Competitors {
		seeds[i] = services.CompetitorSeed{Name: c.Name, URL: c.URL}
	}
	return services.OnboardingInput{
		Website:          r.Website,
		BrandDescription: r.BrandDescription,
		Region:           r.Region,
		Language:         r.Language,
		Topics:           r.Topics,
		Competitors:      seeds,
	}
}
