package errors

import (
	"errors"
	"fmt"
)

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções ficam em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrTopicNotFound      = errors.New("error.topic_not_found")
	ErrCompetitorNotFound = errors.New("error.competitor_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrUnauthorized       = errors.New("error.unauthorized")
)

// Erros de validação, rejeitados antes de qualquer efeito colateral
var (
	ErrInvalidEmail         = errors.New("error.invalid_email")
	ErrInvalidURL           = errors.New("error.invalid_url")
	ErrPasswordTooShort     = errors.New("error.password_too_short")
	ErrTitleRequired        = errors.New("error.title_required")
	ErrKeywordRequired      = errors.New("error.keyword_required")
	ErrKeywordsRequired     = errors.New("error.keywords_required")
	ErrInstructionRequired  = errors.New("error.instruction_required")
	ErrInvalidStatus        = errors.New("error.invalid_status")
	ErrInvalidPriority      = errors.New("error.invalid_priority")
	ErrWebhookURLRequired   = errors.New("error.webhook_url_required")
	ErrWebsiteNotConfigured = errors.New("error.website_not_configured")
	ErrEmptyDraft           = errors.New("error.empty_draft")
	ErrDraftTooShort        = errors.New("error.draft_too_short")
	ErrCoverageComplete     = errors.New("error.coverage_complete")
	ErrNotEnoughText        = errors.New("error.not_enough_text")
	ErrCompetitorRequired   = errors.New("error.competitor_required")
)

var validationErrors = []error{
	ErrInvalidEmail,
	ErrInvalidURL,
	ErrPasswordTooShort,
	ErrTitleRequired,
	ErrKeywordRequired,
	ErrKeywordsRequired,
	ErrInstructionRequired,
	ErrInvalidStatus,
	ErrInvalidPriority,
	ErrWebhookURLRequired,
	ErrWebsiteNotConfigured,
	ErrEmptyDraft,
	ErrDraftTooShort,
	ErrCoverageComplete,
	ErrNotEnoughText,
	ErrCompetitorRequired,
}

// IsValidation indica se err é um dos sentinels de validação
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ErrUpstream casa com qualquer *UpstreamError
var ErrUpstream = errors.New("error.upstream")

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeUpstream     = "/problems/upstream-failure"
	ProblemTypeInternal     = "/problems/internal-error"
)

// UpstreamError representa uma falha do gerador de texto, de um site buscado
// ou de um webhook. Source identifica o lado que falhou (um host, "llm" ou
// "webhook"). Status é o código HTTP recebido, quando houver.
type UpstreamError struct {
	Source string
	Reason string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	msg := e.Source + ": " + e.Reason
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: %s (HTTP %d)", e.Source, e.Reason, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Upstream cria um UpstreamError sem status HTTP
func Upstream(source, reason string, err error) *UpstreamError {
	return &UpstreamError{Source: source, Reason: reason, Err: err}
}

// UpstreamStatus cria um UpstreamError para uma resposta fora da faixa 2xx
func UpstreamStatus(source string, status int) *UpstreamError {
	return &UpstreamError{
		Source: source,
		Reason: fmt.Sprintf("responded with status %d", status),
		Status: status,
	}
}
