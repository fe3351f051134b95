package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
	"github.com/rafabene/aeo-studio/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.Region = model.Region
	user.Language = model.Language
	user.CreatedAt = fromMillis(model.CreatedAt)
	user.UpdatedAt = fromMillis(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var model UserModel

	if err := conn(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

// Update grava os campos de perfil; o resultado AEO tem escrita própria.
// Se o site muda, o scan gravado deixa de valer e é apagado no mesmo UPDATE.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	keepIfSameSite := func(column string) any {
		return gorm.Expr("CASE WHEN website = ? THEN "+column+" ELSE NULL END", user.Website)
	}

	return conn(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"aeo_score":            keepIfSameSite("aeo_score"),
			"aeo_scanned_at":       keepIfSameSite("aeo_scanned_at"),
			"name":                 user.Name,
			"website":              user.Website,
			"brand_description":    user.BrandDescription,
			"region":               user.Region,
			"language":             user.Language,
			"onboarding_completed": user.OnboardingCompleted,
		}).Error
}

func (r *UserRepository) SaveAEOResult(ctx context.Context, userID string, result entities.AEOResult) error {
	scannedAt := result.ScannedAt.UnixMilli()
	score := result.Score

	return conn(ctx, r.db).Model(&UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"aeo_website":    result.Website,
			"aeo_score":      &score,
			"aeo_status":     string(result.Status),
			"aeo_reasoning":  result.Reasoning,
			"aeo_scanned_at": &scannedAt,
		}).Error
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:                  user.ID,
		Email:               user.Email.String(),
		Name:                user.Name,
		PasswordHash:        user.PasswordHash,
		Website:             user.Website,
		BrandDescription:    user.BrandDescription,
		Region:              user.Region,
		Language:            user.Language,
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           toMillis(user.CreatedAt),
		UpdatedAt:           toMillis(user.UpdatedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                  model.ID,
		Email:               email,
		Name:                model.Name,
		PasswordHash:        model.PasswordHash,
		Website:             model.Website,
		BrandDescription:    model.BrandDescription,
		Region:              model.Region,
		Language:            model.Language,
		OnboardingCompleted: model.OnboardingCompleted,
		CreatedAt:           fromMillis(model.CreatedAt),
		UpdatedAt:           fromMillis(model.UpdatedAt),
	}
	user.ApplyDefaults()

	if model.AEOScore != nil && model.AEOScannedAt != nil {
		user.AEO = &entities.AEOResult{
			Website:   model.AEOWebsite,
			Score:     *model.AEOScore,
			Status:    entities.AEOStatus(model.AEOStatus),
			Reasoning: model.AEOReasoning,
			ScannedAt: fromMillis(*model.AEOScannedAt),
		}
	}

	return user, nil
}

// toMillis devolve 0 para time zero, deixando autoCreateTime preencher
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
