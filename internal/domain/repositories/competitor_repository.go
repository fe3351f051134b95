package repositories

import (
	"context"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

// CompetitorRepository persiste concorrentes. Toda leitura e mutação por id
// filtra também pelo dono; id de outro usuário se comporta como inexistente.
type CompetitorRepository interface {
	Create(ctx context.Context, competitor *entities.Competitor) error
	CreateMany(ctx context.Context, competitors []*entities.Competitor) error
	FindByID(ctx context.Context, id, userID string) (*entities.Competitor, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Competitor, error)
	// Delete devolve o número de linhas removidas (0 para id alheio)
	Delete(ctx context.Context, id, userID string) (int64, error)
	// SearchNames busca nomes distintos, sem diferenciar caixa, entre os concorrentes do usuário
	SearchNames(ctx context.Context, userID, query string, limit int) ([]entities.CompetitorMatch, error)
}
