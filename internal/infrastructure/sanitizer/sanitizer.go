// Package sanitizer limpa o HTML devolvido pelo gateway de texto e extrai
// texto puro de rascunhos.
package sanitizer

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer aplica uma lista fixa de tags permitidas
type Sanitizer struct {
	policy *bluemonday.Policy
}

func newSanitizer(elements ...string) *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(elements...)
	return &Sanitizer{policy: p}
}

// Outline permite a estrutura de um esboço completo
func Outline() *Sanitizer {
	return newSanitizer("h1", "h2", "h3", "p", "ul", "li", "strong")
}

// Section permite o corpo de uma seção, sem h1
func Section() *Sanitizer {
	return newSanitizer("h2", "h3", "p", "ul", "li", "strong")
}

// Article permite o artigo reescrito por inteiro
func Article() *Sanitizer {
	return newSanitizer("h1", "h2", "h3", "p", "ul", "li", "strong")
}

// Clean remove cercas de código e tudo fora da lista permitida
func (s *Sanitizer) Clean(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(StripCodeFences(raw)))
}

// ```html e ```json aparecem em qualquer ponto da resposta, não só em linha própria
var codeFence = regexp.MustCompile("```(?i:html|json)?\\r?\\n?")

// StripCodeFences remove as cercas ``` que modelos costumam adicionar
func StripCodeFences(raw string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))
}

var plainPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// PlainText remove todas as tags e decodifica entidades HTML
func PlainText(raw string) string {
	text := html.UnescapeString(plainPolicy.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}
