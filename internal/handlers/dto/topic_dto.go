package dto

import (
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
	"github.com/rafabene/aeo-studio/internal/services"
)

// CreateTopicRequest cria um tópico manualmente
type CreateTopicRequest struct {
	Title    string `json:"title" binding:"required,max=300"`
	Status   string `json:"status" binding:"omitempty,pipeline_status"`
	Priority string `json:"priority" binding:"omitempty,priority"`
}

// ToInput converte a requisição para o input do serviço
func (r CreateTopicRequest) ToInput() services.CreateTopicInput {
	return services.CreateTopicInput{Title: r.Title, Status: r.Status, Priority: r.Priority}
}

// UpdateStatusRequest move o card para outra coluna
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,pipeline_status"`
}

// UpdateContentRequest salva o rascunho; vazio é permitido
type UpdateContentRequest struct {
	Content string `json:"content"`
}

// BrainstormRequest pede cinco pautas para uma palavra-chave
type BrainstormRequest struct {
	Keyword string `json:"keyword" binding:"required,max=200"`
}

// TopicResponse representa um tópico
type TopicResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CoreEntity string    `json:"core_entity"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	Content    string    `json:"content"`
	Entities   []string  `json:"entities"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToTopicResponse converte uma entidade Topic
func ToTopicResponse(topic *entities.Topic) TopicResponse {
	list := topic.Entities
	if list == nil {
		list = []string{}
	}
	return TopicResponse{
		ID:         topic.ID,
		Title:      topic.Title,
		CoreEntity: topic.CoreEntity,
		Status:     string(topic.Status),
		Priority:   string(topic.Priority),
		Content:    topic.Content,
		Entities:   list,
		CreatedAt:  topic.CreatedAt,
		UpdatedAt:  topic.UpdatedAt,
	}
}

// ToTopicResponses converte uma lista de tópicos
func ToTopicResponses(topics []*entities.Topic) []TopicResponse {
	responses := make([]TopicResponse, len(topics))
	for i, topic := range topics {
		responses[i] = ToTopicResponse(topic)
	}
	return responses
}

// BoardColumnResponse é uma coluna do board
type BoardColumnResponse struct {
	Status string          `json:"status"`
	Topics []TopicResponse `json:"topics"`
}

// BoardResponse é o board completo, colunas na ordem do pipeline
type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}

// ToBoardResponse converte o board
func ToBoardResponse(board entities.Board) BoardResponse {
	columns := make([]BoardColumnResponse, len(board.Columns))
	for i, column := range board.Columns {
		columns[i] = BoardColumnResponse{
			Status: string(column.Status),
			Topics: ToTopicResponses(column.Topics),
		}
	}
	return BoardResponse{Columns: columns}
}

// SuggestionResponse é uma sugestão de pauta
type SuggestionResponse struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

// ToSuggestionResponses converte as sugestões
func ToSuggestionResponses(suggestions []services.TopicSuggestion) []SuggestionResponse {
	responses := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = SuggestionResponse{Topic: s.Topic, Reason: s.Reason}
	}
	return responses
}
