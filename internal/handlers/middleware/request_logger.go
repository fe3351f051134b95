package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rafabene/aeo-studio/internal/auth"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
)

// RequestIDHeader é propagado da requisição para a resposta
const RequestIDHeader = "X-Request-Id"

// RequestID garante um id por requisição, reaproveitando o do cliente
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(auth.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger registra método, rota, status e duração de cada requisição
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", auth.RequestIDFromContext(c.Request.Context()),
		}
		if userID := c.GetString(UserIDContextKey); userID != "" {
			args = append(args, "user_id", userID)
		}

		if status >= 500 {
			logger.Error("http request", args...)
			return
		}
		logger.Info("http request", args...)
	}
}
