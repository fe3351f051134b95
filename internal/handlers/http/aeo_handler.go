package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
	"github.com/rafabene/aeo-studio/internal/services"
)

// AEOHandler expõe o scan AEO e a auditoria de SEO
type AEOHandler struct {
	aeoService *services.AEOService
	logger     ports.Logger
}

// NewAEOHandler cria um novo AEOHandler
func NewAEOHandler(aeoService *services.AEOService, logger ports.Logger) *AEOHandler {
	return &AEOHandler{aeoService: aeoService, logger: logger}
}

// Scan pontua o site do usuário; sem force=true devolve o resultado recente
//
//	@Summary	AEO scan
//	@Tags		aeo
//	@Produce	json
//	@Security	BearerAuth
//	@Param		force	query		bool	false	"Ignore the stored result"
//	@Success	200		{object}	dto.AEOScanResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	502		{object}	dto.ErrorResponse
//	@Router		/aeo/scan [post]
func (h *AEOHandler) Scan(c *gin.Context) {
	force, _ := strconv.ParseBool(c.Query("force"))

	scan, err := h.aeoService.Scan(c.Request.Context(), force)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAEOScanResponse(scan))
}

// Audit roda a auditoria de SEO on-page da home
//
//	@Summary	SEO audit
//	@Tags		aeo
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.SEOIssueResponse
//	@Failure	502	{object}	dto.ErrorResponse
//	@Router		/aeo/audit [get]
func (h *AEOHandler) Audit(c *gin.Context) {
	issues, err := h.aeoService.Audit(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSEOIssueResponses(issues))
}
