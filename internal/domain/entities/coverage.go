package entities

import (
	"math"
	"strings"
)

// Coverage descreve quantas entidades sugeridas aparecem no rascunho
type Coverage struct {
	Covered []string
	Missing []string
	Percent int
}

// IsComplete indica cobertura total (e ao menos uma entidade)
func (c Coverage) IsComplete() bool {
	return len(c.Missing) == 0 && len(c.Covered) > 0
}

// ComputeCoverage considera uma entidade coberta quando ela aparece como
// substring, sem diferenciar caixa, do texto puro do rascunho.
// Sem entidades a cobertura é 0.
func ComputeCoverage(plainText string, entities []string) Coverage {
	text := strings.ToLower(plainText)

	c := Coverage{Covered: []string{}, Missing: []string{}}
	for _, e := range entities {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(e)) {
			c.Covered = append(c.Covered, e)
		} else {
			c.Missing = append(c.Missing, e)
		}
	}

	total := len(c.Covered) + len(c.Missing)
	if total == 0 {
		return c
	}

	c.Percent = int(math.Round(float64(len(c.Covered)) / float64(total) * 100))
	return c
}
