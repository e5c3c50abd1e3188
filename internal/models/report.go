package models

import "strings"

type CriteriaKey string

const (
	CriteriaInteractivity   CriteriaKey = "interactivity"
	CriteriaEntertainment   CriteriaKey = "entertainment"
	CriteriaRelevance       CriteriaKey = "relevance"
	CriteriaInformativeness CriteriaKey = "informativeness"
)

// CriteriaKeys lists the evaluation dimensions in display order.
var CriteriaKeys = []CriteriaKey{
	CriteriaInteractivity,
	CriteriaEntertainment,
	CriteriaRelevance,
	CriteriaInformativeness,
}

const (
	MinScore = 0
	MaxScore = 10
)

type CriteriaReport struct {
	Score       int    `json:"score" yaml:"score"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

const (
	LikelihoodLow    = "Rendah"
	LikelihoodMedium = "Sedang"
	LikelihoodHigh   = "Tinggi"
)

var LikelihoodLabels = []string{LikelihoodLow, LikelihoodMedium, LikelihoodHigh}

var likelihoodAliases = map[string]string{
	"rendah": LikelihoodLow,
	"low":    LikelihoodLow,
	"sedang": LikelihoodMedium,
	"medium": LikelihoodMedium,
	"tinggi": LikelihoodHigh,
	"high":   LikelihoodHigh,
}

// NormalizeLikelihood maps a label to its canonical form, ignoring case and
// surrounding whitespace. English labels are accepted as aliases.
func NormalizeLikelihood(label string) (string, bool) {
	canonical, ok := likelihoodAliases[strings.ToLower(strings.TrimSpace(label))]
	return canonical, ok
}

type PurchaseInfluence struct {
	Likelihood  string `json:"likelihood" yaml:"likelihood"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

type AnalysisReport struct {
	Interactivity     CriteriaReport    `json:"interactivity" yaml:"interactivity"`
	Entertainment     CriteriaReport    `json:"entertainment" yaml:"entertainment"`
	Relevance         CriteriaReport    `json:"relevance" yaml:"relevance"`
	Informativeness   CriteriaReport    `json:"informativeness" yaml:"informativeness"`
	PurchaseInfluence PurchaseInfluence `json:"purchaseInfluence" yaml:"purchaseInfluence"`
	OverallSummary    string            `json:"overallSummary" yaml:"overallSummary"`
	Suggestions       []string          `json:"suggestions" yaml:"suggestions"`
}

type NamedCriteria struct {
	Key CriteriaKey
	CriteriaReport
}

func (r *AnalysisReport) Criteria() []NamedCriteria {
	return []NamedCriteria{
		{Key: CriteriaInteractivity, CriteriaReport: r.Interactivity},
		{Key: CriteriaEntertainment, CriteriaReport: r.Entertainment},
		{Key: CriteriaRelevance, CriteriaReport: r.Relevance},
		{Key: CriteriaInformativeness, CriteriaReport: r.Informativeness},
	}
}

// Title returns the Indonesian heading used when a criterion is displayed.
func (k CriteriaKey) Title() string {
	switch k {
	case CriteriaInteractivity:
		return "Interaktivitas"
	case CriteriaEntertainment:
		return "Hiburan"
	case CriteriaRelevance:
		return "Relevansi"
	case CriteriaInformativeness:
		return "Informatif"
	}
	return string(k)
}
