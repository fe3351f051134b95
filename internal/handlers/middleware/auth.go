package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/auth"
)

// UserIDContextKey guarda o id autenticado no contexto do Gin
const UserIDContextKey = "user_id"

// TokenValidator resolve um access token no id do usuário
type TokenValidator interface {
	ValidateAccessToken(token string) (string, error)
}

// RequireAuth exige um Bearer token válido. O id resolvido vai para o
// context.Context da requisição, de onde os serviços o leem.
// onUnauthorized escreve a resposta 401.
func RequireAuth(validator TokenValidator, onUnauthorized gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			onUnauthorized(c)
			c.Abort()
			return
		}

		userID, err := validator.ValidateAccessToken(token)
		if err != nil {
			onUnauthorized(c)
			c.Abort()
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// bearerToken lê o header Authorization; o handshake websocket não envia
// headers customizados, então ?access_token= também é aceito
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return c.Query("access_token")
}
