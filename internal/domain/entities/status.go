package entities

import "strings"

// Status é a coluna do board em que um tópico está
type Status string

const (
	StatusIdea       Status = "Idea"
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusReady      Status = "Ready"
	StatusPublished  Status = "Published"
)

// PipelineStatuses lista os status na ordem das colunas do board.
// A ordem é apenas de exibição: qualquer transição é permitida.
var PipelineStatuses = []Status{
	StatusIdea,
	StatusToDo,
	StatusInProgress,
	StatusReady,
	StatusPublished,
}

// IsValid verifica se o status pertence ao conjunto fechado
func (s Status) IsValid() bool {
	for _, known := range PipelineStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus aceita o nome canônico ignorando caixa e espaços nas pontas
func ParseStatus(raw string) (Status, bool) {
	raw = strings.TrimSpace(raw)
	for _, known := range PipelineStatuses {
		if strings.EqualFold(raw, string(known)) {
			return known, true
		}
	}
	return "", false
}

// StatusOrDefault devolve Idea para linhas legadas sem status
func StatusOrDefault(raw string) Status {
	if s, ok := ParseStatus(raw); ok {
		return s
	}
	return StatusIdea
}

// Priority é o rótulo de prioridade de um tópico
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority aceita High/Medium/Low ignorando caixa
func ParsePriority(raw string) (Priority, bool) {
	raw = strings.TrimSpace(raw)
	for _, known := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if strings.EqualFold(raw, string(known)) {
			return known, true
		}
	}
	return "", false
}

// PriorityOrDefault devolve Medium quando o valor é ausente ou desconhecido
func PriorityOrDefault(raw string) Priority {
	if p, ok := ParsePriority(raw); ok {
		return p
	}
	return PriorityMedium
}
