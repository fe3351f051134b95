package entities

import (
	"strings"
	"time"

	"github.com/rafabene/aeo-studio/internal/domain/valueobjects"
)

// Competitor é um site concorrente acompanhado por um usuário
type Competitor struct {
	ID        string
	UserID    string
	Name      string
	URL       string
	CreatedAt time.Time
}

// NewCompetitor cria um concorrente. Sem nome, usa o host do site sem "www.".
func NewCompetitor(userID, name string, site valueobjects.WebsiteURL) *Competitor {
	name = strings.TrimSpace(name)
	if name == "" {
		name = site.DisplayName()
	}

	return &Competitor{
		UserID: userID,
		Name:   name,
		URL:    site.String(),
	}
}

// CompetitorMatch é um resultado da busca global por nomes
type CompetitorMatch struct {
	Name string
	URL  string
}
