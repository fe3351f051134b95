package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/aeo-studio/internal/domain/errors"
	"github.com/rafabene/aeo-studio/internal/domain/ports"
	"github.com/rafabene/aeo-studio/internal/handlers/dto"
)

// writeProblem envia a resposta RFC 7807 com o content type correto
func writeProblem(c *gin.Context, response dto.ErrorResponse) {
	c.Header("Content-Type", dto.ProblemContentType)
	c.AbortWithStatusJSON(response.Status, response)
}

// Unauthorized é usado pelo middleware de autenticação
func Unauthorized(c *gin.Context) {
	writeProblem(c, dto.UnauthorizedErrorResponseI18n(c, errors.ErrUnauthorized.Error()))
}

// respondError traduz erros de domínio para a taxonomia HTTP:
// validação 400, não autenticado 401, inexistente 404, conflito 409,
// falha externa 502 e o resto 500
func respondError(c *gin.Context, logger ports.Logger, err error) {
	var upstream *errors.UpstreamError

	switch {
	case errors.IsValidation(err):
		writeProblem(c, dto.DomainValidationResponseI18n(c, err.Error()))

	case errs.Is(err, errors.ErrUnauthorized), errs.Is(err, errors.ErrInvalidCredentials):
		writeProblem(c, dto.UnauthorizedErrorResponseI18n(c, err.Error()))

	case errs.Is(err, errors.ErrTopicNotFound),
		errs.Is(err, errors.ErrCompetitorNotFound),
		errs.Is(err, errors.ErrUserNotFound):
		writeProblem(c, dto.NotFoundErrorResponseI18n(c, err.Error()))

	case errs.Is(err, errors.ErrEmailAlreadyExists):
		writeProblem(c, dto.ConflictErrorResponseI18n(c, err.Error()))

	case errs.As(err, &upstream):
		logger.Warn("upstream failure",
			"path", c.FullPath(),
			"source", upstream.Source,
			"status", upstream.Status,
			"error", err,
		)
		writeProblem(c, dto.UpstreamErrorResponseI18n(c, upstream.Source, upstreamReason(upstream)))

	default:
		logger.Error("unexpected error", "path", c.FullPath(), "error", err)
		writeProblem(c, dto.InternalErrorResponseI18n(c))
	}
}

// upstreamReason inclui a causa de rede quando não há status HTTP
func upstreamReason(e *errors.UpstreamError) string {
	if e.Status == 0 && e.Err != nil {
		return e.Reason + " (" + e.Err.Error() + ")"
	}
	return e.Reason
}

// bindJSON faz o bind e responde 400 com os erros por campo
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeProblem(c, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(c, err)))
		return false
	}
	return true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
