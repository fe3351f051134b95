package scraper

import (
	"fmt"
	"strings"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

// Audit aplica as regras fixas de SEO on-page ao HTML da home
func Audit(html string) ([]entities.SEOIssue, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	issues := make([]entities.SEOIssue, 0, 4)

	// H1 (crítico)
	if doc.Find("h1").Length() == 0 {
		issues = append(issues, entities.SEOIssue{
			ID:           "missing-h1",
			Severity:     entities.IssueCritical,
			Title:        "Missing H1 Tag on Homepage",
			Description:  "Your homepage is missing a primary H1 heading, affecting hierarchy and ranking.",
			WhyItMatters: "Search engines use the H1 tag to understand the main topic of a page. A missing H1 is a missed opportunity to rank for your primary keyword.",
			HowToFix: []string{
				"Identify the main product or brand name for the page.",
				"Add an <h1> tag at the top of the content area.",
				"Ensure it is unique and descriptive.",
			},
			CodeSnippet: `<h1 class="product-title">Premium Espresso Machine Series X</h1>`,
		})
	} else {
		issues = append(issues, entities.SEOIssue{
			ID:          "pass-h1",
			Severity:    entities.IssuePassed,
			Title:       "H1 Tag Present",
			Description: "Homepage has an H1 tag.",
		})
	}

	// Meta description (aviso)
	meta, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	if strings.TrimSpace(meta) == "" {
		issues = append(issues, entities.SEOIssue{
			ID:           "missing-meta-desc",
			Severity:     entities.IssueWarning,
			Title:        "Missing Meta Description",
			Description:  "Your homepage has an empty meta description. Search engines will generate their own snippet.",
			WhyItMatters: "Meta descriptions act as ad copy in search results. A compelling description improves click-through rate.",
			HowToFix:     []string{"Write a compelling description (150-160 characters) summarizing the page content."},
		})
	} else {
		issues = append(issues, entities.SEOIssue{
			ID:          "pass-meta",
			Severity:    entities.IssuePassed,
			Title:       "Meta Description Present",
			Description: "Homepage has a meta description.",
		})
	}

	// Imagens sem alt (aviso)
	if missing := doc.Find("img:not([alt])").Length(); missing > 0 {
		issues = append(issues, entities.SEOIssue{
			ID:           "missing-alts",
			Severity:     entities.IssueWarning,
			Title:        fmt.Sprintf("Missing Alt Attributes on %d Images", missing),
			Description:  fmt.Sprintf("We found %d images without alt text on your homepage.", missing),
			WhyItMatters: "Alt text describes images to search engines and visually impaired users.",
			HowToFix: []string{
				"Add descriptive alt text to every <img> tag.",
				"Keep it concise and relevant to the image.",
			},
		})
	}

	// Title (crítico)
	if strings.TrimSpace(doc.Find("title").First().Text()) == "" {
		issues = append(issues, entities.SEOIssue{
			ID:           "missing-title",
			Severity:     entities.IssueCritical,
			Title:        "Missing Title Tag",
			Description:  "Your page has no title tag defined in the <head>.",
			WhyItMatters: "The title tag tells users and search engines what your page is about.",
			HowToFix:     []string{"Add a <title> tag inside your HTML <head>."},
		})
	}

	return issues, nil
}
