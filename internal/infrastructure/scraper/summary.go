package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// PageSummary é o resumo de uma página enviado ao gateway de texto
type PageSummary struct {
	Title           string
	MetaDescription string
	H1              string
	H2s             []string
}

// IsEmpty indica que nada útil foi extraído
func (s PageSummary) IsEmpty() bool {
	return s.Title == "" && s.MetaDescription == "" && s.H1 == "" && len(s.H2s) == 0
}

func (s PageSummary) String() string {
	var b strings.Builder
	b.WriteString("Title: " + s.Title + "\n")
	b.WriteString("Meta Description: " + s.MetaDescription + "\n")
	b.WriteString("H1: " + s.H1 + "\n")
	b.WriteString("H2s: " + strings.Join(s.H2s, ", "))
	return b.String()
}

func parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Summarize extrai título, meta description, primeiro h1 e todos os h2
func Summarize(html string) (PageSummary, error) {
	doc, err := parse(html)
	if err != nil {
		return PageSummary{}, err
	}

	meta, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	summary := PageSummary{
		Title:           cleanText(doc.Find("title").First().Text()),
		MetaDescription: cleanText(meta),
		H1:              cleanText(doc.Find("h1").First().Text()),
		H2s:             []string{},
	}

	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			summary.H2s = append(summary.H2s, text)
		}
	})

	return summary, nil
}

// VisibleText devolve o texto legível da página (sem script, style e
// noscript), com espaços colapsados e truncado em limit runas.
func VisibleText(html string, limit int) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, template").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	// separa blocos adjacentes (<p>a</p><p>b</p>) antes de colapsar
	var parts []string
	root.Contents().Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, textWithBreaks(s))
	})
	text := cleanText(strings.Join(parts, " "))

	return truncateRunes(text, limit), nil
}

func textWithBreaks(s *goquery.Selection) string {
	if goquery.NodeName(s) == "#text" {
		return s.Text()
	}
	var parts []string
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		parts = append(parts, textWithBreaks(child))
	})
	return strings.Join(parts, " ")
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
