package repositories

import (
	"context"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

// TopicRepository persiste tópicos do pipeline. Mutações são filtradas por
// (id, userID) e devolvem o número de linhas afetadas; 0 não é erro.
type TopicRepository interface {
	Create(ctx context.Context, topic *entities.Topic) error
	CreateMany(ctx context.Context, topics []*entities.Topic) error
	FindByID(ctx context.Context, id, userID string) (*entities.Topic, error)
	// ListByUser ordena por data de criação, mais recentes primeiro
	ListByUser(ctx context.Context, userID string, filters TopicFilters) ([]*entities.Topic, error)
	UpdateStatus(ctx context.Context, id, userID string, status entities.Status) (int64, error)
	UpdateContent(ctx context.Context, id, userID, content string) (int64, error)
	SetEntities(ctx context.Context, id, userID string, entities []string) (int64, error)
	Delete(ctx context.Context, id, userID string) (int64, error)
}

// TopicFilters contém filtros para listagem de tópicos
type TopicFilters struct {
	Status *entities.Status
	Limit  int // 0 = sem limite
}
