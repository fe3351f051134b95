package dto

import "github.com/rafabene/aeo-studio/internal/domain/entities"

// SectionRequest pede uma seção com as frases exatas
type SectionRequest struct {
	Keywords []string `json:"keywords" binding:"required,min=1,dive,max=100"`
}

// MaximizeRequest envia o rascunho atual e as palavras que faltam
type MaximizeRequest struct {
	Content string   `json:"content"`
	Missing []string `json:"missing" binding:"required,min=1,dive,max=100"`
}

// CoverageRequest envia o rascunho para o cálculo de cobertura
type CoverageRequest struct {
	Content string `json:"content"`
}

// EditRequest pede uma reescrita guiada por instrução
type EditRequest struct {
	Content     string `json:"content"`
	Instruction string `json:"instruction" binding:"required,max=2000"`
}

// PublishRequest informa o webhook de destino
type PublishRequest struct {
	WebhookURL string `json:"webhook_url" binding:"required,url"`
}

// HTMLResponse é o HTML sanitizado devolvido pelos protocolos de escrita
type HTMLResponse struct {
	HTML string `json:"html"`
}

// EntitiesResponse é a lista de entidades persistida no tópico
type EntitiesResponse struct {
	Entities []string `json:"entities"`
}

// CoverageResponse descreve a cobertura do rascunho
type CoverageResponse struct {
	Covered []string `json:"covered"`
	Missing []string `json:"missing"`
	Percent int      `json:"percent"`
}

// ToCoverageResponse converte a cobertura
func ToCoverageResponse(c entities.Coverage) CoverageResponse {
	return CoverageResponse{Covered: c.Covered, Missing: c.Missing, Percent: c.Percent}
}
