package entities

import (
	"regexp"
	"strings"
	"time"
)

// DefaultCoreEntity é usado quando o título não produz um rótulo
const DefaultCoreEntity = "General"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// Topic é um item do pipeline de conteúdo
type Topic struct {
	ID         string
	UserID     string
	Title      string
	CoreEntity string
	Status     Status
	Priority   Priority
	Content    string
	Entities   []string // palavras-chave semânticas sugeridas
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTopic cria um tópico aplicando os defaults do pipeline.
// Status e prioridade vazios viram Idea e Medium; coreEntity vazio é
// derivado do título.
func NewTopic(userID, title, coreEntity string, status Status, priority Priority) *Topic {
	title = strings.TrimSpace(title)

	coreEntity = strings.TrimSpace(coreEntity)
	if coreEntity == "" {
		coreEntity = DeriveCoreEntity(title)
	}
	if status == "" {
		status = StatusIdea
	}
	if priority == "" {
		priority = PriorityMedium
	}

	return &Topic{
		UserID:     userID,
		Title:      title,
		CoreEntity: coreEntity,
		Status:     status,
		Priority:   priority,
	}
}

// DeriveCoreEntity pega as duas primeiras palavras do título e remove
// tudo que não for alfanumérico ("How to Optimize..." -> "How to")
func DeriveCoreEntity(title string) string {
	words := strings.Fields(title)
	if len(words) > 2 {
		words = words[:2]
	}

	entity := strings.TrimSpace(nonAlphanumeric.ReplaceAllString(strings.Join(words, " "), ""))
	if entity == "" {
		return DefaultCoreEntity
	}
	return entity
}

// HasContent verifica se existe rascunho
func (t *Topic) HasContent() bool {
	return strings.TrimSpace(t.Content) != ""
}

// Board agrupa tópicos por coluna de status
type Board struct {
	Columns []BoardColumn
}

// BoardColumn é uma coluna do board, mais recentes primeiro
type BoardColumn struct {
	Status Status
	Topics []*Topic
}

// NewBoard distribui os tópicos (já ordenados por criação desc) nas colunas.
// Status desconhecidos de linhas legadas caem em Idea.
func NewBoard(topics []*Topic) Board {
	index := make(map[Status]int, len(PipelineStatuses))
	columns := make([]BoardColumn, len(PipelineStatuses))
	for i, s := range PipelineStatuses {
		index[s] = i
		columns[i] = BoardColumn{Status: s, Topics: []*Topic{}}
	}

	for _, t := range topics {
		i, ok := index[t.Status]
		if !ok {
			i = index[StatusIdea]
		}
		columns[i].Topics = append(columns[i].Topics, t)
	}

	return Board{Columns: columns}
}
