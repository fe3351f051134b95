package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
	"github.com/rafabene/aeo-studio/internal/services"
)

// OnboardingHandler conduz o wizard inicial
type OnboardingHandler struct {
	onboardingService *services.OnboardingService
	logger            ports.Logger
}

// NewOnboardingHandler cria um novo OnboardingHandler
func NewOnboardingHandler(onboardingService *services.OnboardingService, logger ports.Logger) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService, logger: logger}
}

// SaveBrand grava site e descrição da marca
//
//	@Summary	Save brand
//	@Tags		onboarding
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.BrandRequest	true	"Brand"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/onboarding/brand [post]
func (h *OnboardingHandler) SaveBrand(c *gin.Context) {
	var req dto.BrandRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.onboardingService.SaveBrand(c.Request.Context(), req.Website, req.BrandDescription)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Complete conclui o onboarding com concorrentes e pautas
//
//	@Summary	Complete onboarding
//	@Tags		onboarding
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.OnboardingRequest	true	"Wizard data"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/onboarding [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var req dto.OnboardingRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.onboardingService.Complete(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
