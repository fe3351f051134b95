package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/domain/repositories"
)

// TopicRepository implementa repositories.TopicRepository
type TopicRepository struct {
	db *gorm.DB
}

// NewTopicRepository cria um novo TopicRepository
func NewTopicRepository(db *gorm.DB) repositories.TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) Create(ctx context.Context, topic *entities.Topic) error {
	model := r.toModel(topic)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	topic.ID = model.ID
	topic.CreatedAt = fromMillis(model.CreatedAt)
	topic.UpdatedAt = fromMillis(model.UpdatedAt)
	return nil
}

func (r *TopicRepository) CreateMany(ctx context.Context, topics []*entities.Topic) error {
	if len(topics) == 0 {
		return nil
	}

	// created_at decrescente de 1ms por item: o lote é listado na ordem recebida
	base := toMillis(topics[0].CreatedAt)
	if base == 0 {
		base = time.Now().UnixMilli()
	}

	models := make([]*TopicModel, len(topics))
	for i, t := range topics {
		models[i] = r.toModel(t)
		models[i].CreatedAt = base - int64(i)
	}

	if err := conn(ctx, r.db).Create(&models).Error; err != nil {
		return err
	}

	for i, m := range models {
		topics[i].ID = m.ID
		topics[i].CreatedAt = fromMillis(m.CreatedAt)
		topics[i].UpdatedAt = fromMillis(m.UpdatedAt)
	}
	return nil
}

func (r *TopicRepository) FindByID(ctx context.Context, id, userID string) (*entities.Topic, error) {
	if !validID(id, userID) {
		return nil, nil
	}

	var model TopicModel
	err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *TopicRepository) ListByUser(ctx context.Context, userID string, filters repositories.TopicFilters) ([]*entities.Topic, error) {
	if !validID(userID) {
		return []*entities.Topic{}, nil
	}

	query := conn(ctx, r.db).Where("user_id = ?", userID)

	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var models []*TopicModel
	if err := query.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entities.Topic, 0, len(models))
	for _, m := range models {
		result = append(result, r.toEntity(m))
	}
	return result, nil
}

func (r *TopicRepository) UpdateStatus(ctx context.Context, id, userID string, status entities.Status) (int64, error) {
	return r.updateColumn(ctx, id, userID, "status", string(status))
}

func (r *TopicRepository) UpdateContent(ctx context.Context, id, userID, content string) (int64, error) {
	return r.updateColumn(ctx, id, userID, "content", content)
}

func (r *TopicRepository) SetEntities(ctx context.Context, id, userID string, list []string) (int64, error) {
	return r.updateColumn(ctx, id, userID, "suggested_entities", datatypes.JSONSlice[string](list))
}

func (r *TopicRepository) Delete(ctx context.Context, id, userID string) (int64, error) {
	if !validID(id, userID) {
		return 0, nil
	}

	res := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&TopicModel{})
	return res.RowsAffected, res.Error
}

// updateColumn é a escrita escopada usada por todas as mutações parciais
func (r *TopicRepository) updateColumn(ctx context.Context, id, userID, column string, value any) (int64, error) {
	if !validID(id, userID) {
		return 0, nil
	}

	res := conn(ctx, r.db).Model(&TopicModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update(column, value)
	return res.RowsAffected, res.Error
}

// Conversores
func (r *TopicRepository) toModel(t *entities.Topic) *TopicModel {
	var list datatypes.JSONSlice[string]
	if t.Entities != nil {
		list = datatypes.JSONSlice[string](t.Entities)
	}

	return &TopicModel{
		ID:         t.ID,
		UserID:     t.UserID,
		Title:      t.Title,
		CoreEntity: t.CoreEntity,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		Content:    t.Content,
		Entities:   list,
		CreatedAt:  toMillis(t.CreatedAt),
		UpdatedAt:  toMillis(t.UpdatedAt),
	}
}

func (r *TopicRepository) toEntity(m *TopicModel) *entities.Topic {
	list := []string(m.Entities)
	if list == nil {
		list = []string{}
	}

	coreEntity := m.CoreEntity
	if coreEntity == "" {
		coreEntity = entities.DeriveCoreEntity(m.Title)
	}

	return &entities.Topic{
		ID:         m.ID,
		UserID:     m.UserID,
		Title:      m.Title,
		CoreEntity: coreEntity,
		Status:     entities.StatusOrDefault(m.Status),
		Priority:   entities.PriorityOrDefault(m.Priority),
		Content:    m.Content,
		Entities:   list,
		CreatedAt:  fromMillis(m.CreatedAt),
		UpdatedAt:  fromMillis(m.UpdatedAt),
	}
}
