package repositories

import (
	"context"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Find* devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SaveAEOResult(ctx context.Context, userID string, result entities.AEOResult) error
}
