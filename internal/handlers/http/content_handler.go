package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
	"github.com/rafabene/aeo-studio/internal/services"
)

// ContentHandler expõe a escrita assistida e a publicação
type ContentHandler struct {
	assist    *services.ContentAssistService
	publisher *services.PublishService
	logger    ports.Logger
}

// NewContentHandler cria um novo ContentHandler
func NewContentHandler(assist *services.ContentAssistService, publisher *services.PublishService, logger ports.Logger) *ContentHandler {
	return &ContentHandler{assist: assist, publisher: publisher, logger: logger}
}

// Outline gera o esboço do artigo
//
//	@Summary	Generate outline
//	@Tags		content
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Topic ID"
//	@Success	200	{object}	dto.HTMLResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Failure	502	{object}	dto.ErrorResponse
//	@Router		/topics/{id}/outline [post]
func (h *ContentHandler) Outline(c *gin.Context) {
	html, err := h.assist.GenerateOutline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.HTMLResponse{HTML: html})
}

// Entities sugere e grava as entidades semânticas do tópico
//
//	@Summary	Generate entities
//	@Tags		content
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Topic ID"
//	@Success	200	{object}	dto.EntitiesResponse
//	@Failure	502	{object}	dto.ErrorResponse
//	@Router		/topics/{id}/entities [post]
func (h *ContentHandler) Entities(c *gin.Context) {
	list, err := h.assist.GenerateEntities(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.EntitiesResponse{Entities: list})
}

// Section escreve uma seção com as palavras-chave pedidas
//
//	@Summary	Generate section
//	@Tags		content
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Topic ID"
//	@Param		request	body		dto.SectionRequest	true	"Keywords"
//	@Success	200		{object}	dto.HTMLResponse
//	@Router		/topics/{id}/section [post]
func (h *ContentHandler) Section(c *gin.Context) {
	var req dto.SectionRequest
	if !bindJSON(c, &req) {
		return
	}

	html, err := h.assist.GenerateSection(c.Request.Context(), c.Param("id"), req.Keywords)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.HTMLResponse{HTML: html})
}

// Maximize reescreve o rascunho para cobrir as palavras que faltam
//
//	@Summary	Maximize coverage
//	@Tags		content
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Topic ID"
//	@Param		request	body		dto.MaximizeRequest	true	"Draft and missing keywords"
//	@Success	200		{object}	dto.HTMLResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/topics/{id}/maximize [post]
func (h *ContentHandler) Maximize(c *gin.Context) {
	var req dto.MaximizeRequest
	if !bindJSON(c, &req) {
		return
	}

	html, err := h.assist.MaximizeCoverage(c.Request.Context(), c.Param("id"), req.Content, req.Missing)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.HTMLResponse{HTML: html})
}

// Coverage calcula a cobertura das entidades no rascunho
//
//	@Summary	Coverage
//	@Tags		content
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Topic ID"
//	@Param		request	body		dto.CoverageRequest	true	"Draft"
//	@Success	200		{object}	dto.CoverageResponse
//	@Router		/topics/{id}/coverage [post]
func (h *ContentHandler) Coverage(c *gin.Context) {
	var req dto.CoverageRequest
	if !bindJSON(c, &req) {
		return
	}

	coverage, err := h.assist.Coverage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCoverageResponse(coverage))
}

// Edit reescreve o rascunho conforme a instrução e grava o resultado
//
//	@Summary	AI edit
//	@Tags		content
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Topic ID"
//	@Param		request	body		dto.EditRequest	true	"Draft and instruction"
//	@Success	200		{object}	dto.HTMLResponse
//	@Router		/topics/{id}/edit [post]
func (h *ContentHandler) Edit(c *gin.Context) {
	var req dto.EditRequest
	if !bindJSON(c, &req) {
		return
	}

	html, err := h.assist.RequestEdit(c.Request.Context(), c.Param("id"), req.Content, req.Instruction)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.HTMLResponse{HTML: html})
}

// Publish envia o artigo ao webhook e marca como Published
//
//	@Summary	Publish to webhook
//	@Tags		content
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Topic ID"
//	@Param		request	body		dto.PublishRequest	true	"Webhook"
//	@Success	200		{object}	dto.TopicResponse
//	@Failure	502		{object}	dto.ErrorResponse
//	@Router		/topics/{id}/publish [post]
func (h *ContentHandler) Publish(c *gin.Context) {
	var req dto.PublishRequest
	if !bindJSON(c, &req) {
		return
	}

	topic, err := h.publisher.Publish(c.Request.Context(), c.Param("id"), req.WebhookURL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTopicResponse(topic))
}
