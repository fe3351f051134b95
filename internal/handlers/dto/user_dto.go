package dto

import (
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/services"
)

// SignupRequest representa a requisição para criar uma conta
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest representa as credenciais de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse é o access token emitido no login
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// UpdateProfileRequest contém os campos editáveis do perfil; ausente mantém o valor
type UpdateProfileRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=100"`
	Website          *string `json:"website" binding:"omitempty,max=2048"`
	BrandDescription *string `json:"brand_description" binding:"omitempty,max=2000"`
	Region           *string `json:"region" binding:"omitempty,max=10"`
	Language         *string `json:"language" binding:"omitempty,max=10"`
}

// ToInput converte a requisição para o input do serviço
func (r UpdateProfileRequest) ToInput() services.UpdateProfileInput {
	return services.UpdateProfileInput{
		Name:             r.Name,
		Website:          r.Website,
		BrandDescription: r.BrandDescription,
		Region:           r.Region,
		Language:         r.Language,
	}
}

// AEOResultResponse é o último scan persistido
type AEOResultResponse struct {
	Website   string    `json:"website,omitempty"`
	Score     int       `json:"score"`
	Status    string    `json:"status"`
	Reasoning string    `json:"reasoning,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID                  string             `json:"id"`
	Email               string             `json:"email"`
	Name                string             `json:"name"`
	Website             string             `json:"website"`
	BrandDescription    string             `json:"brand_description"`
	Region              string             `json:"region"`
	Language            string             `json:"language"`
	OnboardingCompleted bool               `json:"onboarding_completed"`
	AEO                 *AEOResultResponse `json:"aeo,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	response := UserResponse{
		ID:                  user.ID,
		Email:               user.Email.String(),
		Name:                user.Name,
		Website:             user.Website,
		BrandDescription:    user.BrandDescription,
		Region:              user.Region,
		Language:            user.Language,
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           user.CreatedAt,
	}
	if user.AEO != nil {
		aeo := ToAEOResultResponse(*user.AEO)
		response.AEO = &aeo
	}
	return response
}

// ToAEOResultResponse converte o resultado do scan
func ToAEOResultResponse(result entities.AEOResult) AEOResultResponse {
	return AEOResultResponse{
		Website:   result.Website,
		Score:     result.Score,
		Status:    string(result.Status),
		Reasoning: result.Reasoning,
		ScannedAt: result.ScannedAt,
	}
}

// OnboardingStatusResponse informa se o wizard foi concluído
type OnboardingStatusResponse struct {
	OnboardingCompleted bool `json:"onboarding_completed"`
}
