package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/aeo-studio/internal/domain/errors"
)

// ProblemContentType é o media type das respostas de erro
const ProblemContentType = problems.ProblemMediaType

// BaseURLContextKey guarda a URL base usada no campo type dos problemas
const BaseURLContextKey = "base_url"

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs)
type ErrorResponse struct {
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

func problemType(c *gin.Context, path string) string {
	baseURL := c.GetString(BaseURLContextKey)
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return baseURL + path
}

// NewErrorResponse cria uma resposta RFC 7807 com título e detalhe já traduzidos
func NewErrorResponse(c *gin.Context, path, title string, status int, detail string) ErrorResponse {
	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = problemType(c, path)
	problem.Title = title
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{Problem: problem}
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, path, titleKey, detailKey string, status int, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponse(c, path, T(c, titleKey, params...), status, T(c, detailKey, params...))
}

// ValidationErrorResponseI18n cria uma resposta 400 com os erros por campo
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponseI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		"error.validation.detail",
		400,
	)
	response.Errors = validationErrors
	return response
}

// DomainValidationResponseI18n cria uma resposta 400 para um sentinel de validação
func DomainValidationResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		detailKey,
		400,
	)
}

// NotFoundErrorResponseI18n cria uma resposta de erro 404
func NotFoundErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeNotFound,
		"error.not_found.title",
		detailKey,
		404,
	)
}

// ConflictErrorResponseI18n cria uma resposta de erro 409
func ConflictErrorResponseI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeConflict,
		"error.conflict.title",
		detailKey,
		409,
		params...,
	)
}

// UnauthorizedErrorResponseI18n cria uma resposta de erro 401
func UnauthorizedErrorResponseI18n(c *gin.Context, detailKey string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeUnauthorized,
		"error.unauthorized.title",
		detailKey,
		401,
	)
}

// UpstreamErrorResponseI18n cria uma resposta 502 nomeando o lado que falhou
func UpstreamErrorResponseI18n(c *gin.Context, source, reason string) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeUpstream,
		"error.upstream.title",
		"error.upstream.detail",
		502,
		map[string]interface{}{"Source": source, "Reason": reason},
	)
}

// InternalErrorResponseI18n cria uma resposta de erro 500
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponseI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		500,
	)
}
