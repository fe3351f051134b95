package entities

import "time"

// AEOStatus é o rótulo ordinal do scan AEO
type AEOStatus string

const (
	AEOStatusCritical  AEOStatus = "Critical"
	AEOStatusNeedsWork AEOStatus = "Needs Work"
	AEOStatusFair      AEOStatus = "Fair"
	AEOStatusGood      AEOStatus = "Good"
	AEOStatusExcellent AEOStatus = "Excellent"
)

var aeoStatuses = []AEOStatus{
	AEOStatusCritical,
	AEOStatusNeedsWork,
	AEOStatusFair,
	AEOStatusGood,
	AEOStatusExcellent,
}

// IsValid verifica se o rótulo pertence à escala
func (s AEOStatus) IsValid() bool {
	for _, known := range aeoStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AEOResult é o resultado persistido do scan do site do usuário
type AEOResult struct {
	Website   string // site efetivamente escaneado
	Score     int
	Status    AEOStatus
	Reasoning string
	ScannedAt time.Time
}

// IsFresh indica se o resultado ainda pode ser servido sem novo scan.
// Um scan de outro site nunca é fresco.
func (r *AEOResult) IsFresh(website string, now time.Time, maxAge time.Duration) bool {
	if r == nil || r.ScannedAt.IsZero() || r.Website != website {
		return false
	}
	return now.Sub(r.ScannedAt) < maxAge
}

// Tamanhos fixos do relatório de gap
const (
	GapFeatureRows   = 5
	GapListItems     = 3
	FeaturePresent   = "Yes"
	FeatureAbsent    = "No"
	MaxAnalysisScore = 100
)

// GapReport é a comparação estruturada entre o site do usuário e um concorrente
type GapReport struct {
	Scores               GapScores
	FeatureComparison    []FeatureRow
	MyAdvantages         []string
	CompetitorAdvantages []string
	ActionPlan           []string
}

// GapScores traz as duas notas 0-100 e a justificativa
type GapScores struct {
	UserScore int
	CompScore int
	Reasoning string
}

// FeatureRow é uma linha da tabela de comparação (Yes/No)
type FeatureRow struct {
	Feature    string
	UserStatus string
	CompStatus string
}

// IssueSeverity classifica um item da auditoria de SEO
type IssueSeverity string

const (
	IssueCritical IssueSeverity = "critical"
	IssueWarning  IssueSeverity = "warning"
	IssuePassed   IssueSeverity = "passed"
)

// SEOIssue é um achado da auditoria baseada em regras
type SEOIssue struct {
	ID           string
	Severity     IssueSeverity
	Title        string
	Description  string
	WhyItMatters string
	HowToFix     []string
	CodeSnippet  string
}
