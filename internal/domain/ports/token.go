package ports

import "time"

// TokenIssuer emite tokens de acesso para um usuário autenticado
type TokenIssuer interface {
	GenerateAccessToken(userID string) (token string, expiresAt time.Time, err error)
}
