package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/middleware"
)

// PipelineStream é o hub que mantém as conexões websocket por usuário
type PipelineStream interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string) error
}

// RealtimeHandler faz o upgrade para websocket do board
type RealtimeHandler struct {
	stream PipelineStream
	logger ports.Logger
}

// NewRealtimeHandler cria um novo RealtimeHandler
func NewRealtimeHandler(stream PipelineStream, logger ports.Logger) *RealtimeHandler {
	return &RealtimeHandler{stream: stream, logger: logger}
}

// Pipeline assina os eventos pipeline.changed do usuário
//
//	@Summary	Pipeline events (websocket)
//	@Tags		realtime
//	@Security	BearerAuth
//	@Param		access_token	query	string	false	"Token for clients that cannot set headers"
//	@Success	101
//	@Router		/ws/pipeline [get]
func (h *RealtimeHandler) Pipeline(c *gin.Context) {
	userID := c.GetString(middleware.UserIDContextKey)

	// o upgrader já respondeu ao cliente em caso de erro
	if err := h.stream.Serve(c.Writer, c.Request, userID); err != nil {
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "error", err)
	}
}
