package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
	"github.com/rafabene/aeo-studio/internal/services"
)

// TopicHandler expõe o board do pipeline de conteúdo
type TopicHandler struct {
	topicService *services.TopicService
	logger       ports.Logger
}

// NewTopicHandler cria um novo TopicHandler
func NewTopicHandler(topicService *services.TopicService, logger ports.Logger) *TopicHandler {
	return &TopicHandler{topicService: topicService, logger: logger}
}

// Board lista os tópicos agrupados por status
//
//	@Summary	Pipeline board
//	@Tags		topics
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BoardResponse
//	@Router		/topics [get]
func (h *TopicHandler) Board(c *gin.Context) {
	board, err := h.topicService.Board(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(board))
}

// Create cria um tópico manualmente
//
//	@Summary	Create topic
//	@Tags		topics
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateTopicRequest	true	"Topic"
//	@Success	201		{object}	dto.TopicResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/topics [post]
func (h *TopicHandler) Create(c *gin.Context) {
	var req dto.CreateTopicRequest
	if !bindJSON(c, &req) {
		return
	}

	topic, err := h.topicService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTopicResponse(topic))
}

// Brainstorm gera cinco pautas a partir de uma palavra-chave
//
//	@Summary	Brainstorm topics
//	@Tags		topics
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.BrainstormRequest	true	"Keyword"
//	@Success	201		{array}		dto.TopicResponse
//	@Failure	502		{object}	dto.ErrorResponse
//	@Router		/topics/brainstorm [post]
func (h *TopicHandler) Brainstorm(c *gin.Context) {
	var req dto.BrainstormRequest
	if !bindJSON(c, &req) {
		return
	}

	topics, err := h.topicService.Brainstorm(c.Request.Context(), req.Keyword)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTopicResponses(topics))
}

// Get busca um tópico
//
//	@Summary	Get topic
//	@Tags		topics
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Topic ID"
//	@Success	200	{object}	dto.TopicResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/topics/{id} [get]
func (h *TopicHandler) Get(c *gin.Context) {
	topic, err := h.topicService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTopicResponse(topic))
}

// UpdateStatus move o card de coluna
//
//	@Summary	Move topic
//	@Tags		topics
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string					true	"Topic ID"
//	@Param		request	body	dto.UpdateStatusRequest	true	"New status"
//	@Success	204
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/topics/{id}/status [patch]
func (h *TopicHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.topicService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}

	noContent(c)
}

// UpdateContent salva o rascunho
//
//	@Summary	Save draft
//	@Tags		topics
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string						true	"Topic ID"
//	@Param		request	body	dto.UpdateContentRequest	true	"Draft"
//	@Success	204
//	@Router		/topics/{id}/content [put]
func (h *TopicHandler) UpdateContent(c *gin.Context) {
	var req dto.UpdateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.topicService.UpdateContent(c.Request.Context(), c.Param("id"), req.Content); err != nil {
		respondError(c, h.logger, err)
		return
	}

	noContent(c)
}

// Delete remove o tópico
//
//	@Summary	Delete topic
//	@Tags		topics
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Topic ID"
//	@Success	204
//	@Router		/topics/{id} [delete]
func (h *TopicHandler) Delete(c *gin.Context) {
	if err := h.topicService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	noContent(c)
}

// Suggestions sugere pautas a partir do site do usuário
//
//	@Summary	Topic suggestions
//	@Tags		onboarding
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.SuggestionResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	502	{object}	dto.ErrorResponse
//	@Router		/onboarding/suggestions [get]
func (h *TopicHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.topicService.SuggestTopics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSuggestionResponses(suggestions))
}
