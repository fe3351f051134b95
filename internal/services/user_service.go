package services

import (
	"context"
	errs "errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/domain/valueobjects"
)

const (
	minPasswordLength = 8
	defaultBcryptCost = 12
)

// UserService contém a lógica de negócio de contas e perfil
type UserService struct {
	userRepo   repositories.UserRepository
	tokens     ports.TokenIssuer
	logger     ports.Logger
	bcryptCost int
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	tokens ports.TokenIssuer,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: defaultBcryptCost,
	}
}

// SignupInput representa os dados para criar uma conta
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// AuthResult é o token emitido no login
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *entities.User
}

// Signup cria uma nova conta com região e idioma padrão
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, errors.ErrPasswordTooShort
	}

	s.logger.Info("creating user", "email", email.String())

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
	}
	user.ApplyDefaults()

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "email", email.String(), "error", err)
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// Login valida as credenciais e emite um access token.
// Email desconhecido e senha errada devolvem o mesmo erro.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errs.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetProfile devolve o usuário autenticado
func (s *UserService) GetProfile(ctx context.Context) (*entities.User, error) {
	return loadUser(ctx, s.userRepo)
}

// UpdateProfileInput contém os campos editáveis; nil mantém o valor atual
type UpdateProfileInput struct {
	Name             *string
	Website          *string
	BrandDescription *string
	Region           *string
	Language         *string
}

// UpdateProfile altera os dados de perfil do usuário autenticado
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entities.User, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	if input.Website != nil {
		website, err := normalizeWebsite(*input.Website)
		if err != nil {
			return nil, err
		}
		user.SetWebsite(website)
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.BrandDescription != nil {
		user.BrandDescription = strings.TrimSpace(*input.BrandDescription)
	}
	if input.Region != nil {
		user.Region = strings.TrimSpace(*input.Region)
	}
	if input.Language != nil {
		user.Language = strings.TrimSpace(*input.Language)
	}
	user.ApplyDefaults()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// OnboardingStatus informa se o wizard inicial já foi concluído
func (s *UserService) OnboardingStatus(ctx context.Context) (bool, error) {
	user, err := loadUser(ctx, s.userRepo)
	if err != nil {
		return false, err
	}
	return user.OnboardingCompleted, nil
}

// normalizeWebsite aceita vazio (limpa o site) ou uma URL http(s)
func normalizeWebsite(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	website, err := valueobjects.NewWebsiteURL(raw)
	if err != nil {
		return "", errors.ErrInvalidURL
	}
	return website.String(), nil
}
