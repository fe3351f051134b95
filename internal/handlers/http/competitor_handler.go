package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
	"github.com/rafabene/aeo-studio/internal/services"
)

// CompetitorHandler expõe concorrentes e a análise de gap
type CompetitorHandler struct {
	competitorService *services.CompetitorService
	logger            ports.Logger
}

// NewCompetitorHandler cria um novo CompetitorHandler
func NewCompetitorHandler(competitorService *services.CompetitorService, logger ports.Logger) *CompetitorHandler {
	return &CompetitorHandler{competitorService: competitorService, logger: logger}
}

// List lista os concorrentes do usuário
//
//	@Summary	List competitors
//	@Tags		competitors
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.CompetitorResponse
//	@Router		/competitors [get]
func (h *CompetitorHandler) List(c *gin.Context) {
	list, err := h.competitorService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompetitorResponses(list))
}

// Add cadastra um concorrente
//
//	@Summary	Add competitor
//	@Tags		competitors
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateCompetitorRequest	true	"Competitor"
//	@Success	201		{object}	dto.CompetitorResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/competitors [post]
func (h *CompetitorHandler) Add(c *gin.Context) {
	var req dto.CreateCompetitorRequest
	if !bindJSON(c, &req) {
		return
	}

	competitor, err := h.competitorService.Add(c.Request.Context(), req.Name, req.URL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompetitorResponse(competitor))
}

// Delete remove um concorrente
//
//	@Summary	Delete competitor
//	@Tags		competitors
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Competitor ID"
//	@Success	204
//	@Router		/competitors/{id} [delete]
func (h *CompetitorHandler) Delete(c *gin.Context) {
	if err := h.competitorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	noContent(c)
}

// Search sugere nomes já cadastrados
//
//	@Summary	Search competitor names
//	@Tags		competitors
//	@Produce	json
//	@Security	BearerAuth
//	@Param		q	query	string	true	"At least 2 characters"
//	@Success	200	{array}	dto.CompetitorMatchResponse
//	@Router		/competitors/search [get]
func (h *CompetitorHandler) Search(c *gin.Context) {
	matches, err := h.competitorService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompetitorMatchResponses(matches))
}

// GapAnalysis compara o site do usuário com o concorrente
//
//	@Summary	Gap analysis
//	@Tags		competitors
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Competitor ID"
//	@Success	200	{object}	dto.GapReportResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Failure	502	{object}	dto.ErrorResponse
//	@Router		/competitors/{id}/gap-analysis [post]
func (h *CompetitorHandler) GapAnalysis(c *gin.Context) {
	report, err := h.competitorService.GapAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGapReportResponse(report))
}
