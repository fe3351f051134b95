package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
)

// CompetitorRepository implementa repositories.CompetitorRepository
type CompetitorRepository struct {
	db *gorm.DB
}

// NewCompetitorRepository cria um novo CompetitorRepository
func NewCompetitorRepository(db *gorm.DB) repositories.CompetitorRepository {
	return &CompetitorRepository{db: db}
}

func (r *CompetitorRepository) Create(ctx context.Context, competitor *entities.Competitor) error {
	model := r.toModel(competitor)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	competitor.ID = model.ID
	competitor.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *CompetitorRepository) CreateMany(ctx context.Context, competitors []*entities.Competitor) error {
	if len(competitors) == 0 {
		return nil
	}

	models := make([]*CompetitorModel, len(competitors))
	for i, c := range competitors {
		models[i] = r.toModel(c)
	}

	if err := conn(ctx, r.db).Create(&models).Error; err != nil {
		return err
	}

	for i, m := range models {
		competitors[i].ID = m.ID
		competitors[i].CreatedAt = fromMillis(m.CreatedAt)
	}
	return nil
}

func (r *CompetitorRepository) FindByID(ctx context.Context, id, userID string) (*entities.Competitor, error) {
	if !validID(id, userID) {
		return nil, nil
	}

	var model CompetitorModel
	err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *CompetitorRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Competitor, error) {
	if !validID(userID) {
		return []*entities.Competitor{}, nil
	}

	var models []*CompetitorModel
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Competitor, 0, len(models))
	for _, m := range models {
		result = append(result, r.toEntity(m))
	}
	return result, nil
}

func (r *CompetitorRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	if !validID(id, userID) {
		return 0, nil
	}

	res := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&CompetitorModel{})
	return res.RowsAffected, res.Error
}

func (r *CompetitorRepository) SearchNames(ctx context.Context, userID, query string, limit int) ([]entities.CompetitorMatch, error) {
	if !validID(userID) {
		return []entities.CompetitorMatch{}, nil
	}

	var rows []struct {
		Name string
		URL  string
	}

	err := conn(ctx, r.db).Model(&CompetitorModel{}).
		Select("name, MIN(url) AS url").
		Where("user_id = ?", userID).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(query)).
		Group("name").
		Order("name").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]entities.CompetitorMatch, len(rows))
	for i, row := range rows {
		matches[i] = entities.CompetitorMatch{Name: row.Name, URL: row.URL}
	}
	return matches, nil
}

func (r *CompetitorRepository) toModel(c *entities.Competitor) *CompetitorModel {
	return &CompetitorModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		URL:       c.URL,
		CreatedAt: toMillis(c.CreatedAt),
	}
}

func (r *CompetitorRepository) toEntity(m *CompetitorModel) *entities.Competitor {
	return &entities.Competitor{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		URL:       m.URL,
		CreatedAt: fromMillis(m.CreatedAt),
	}
}
