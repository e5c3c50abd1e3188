package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
)

// The raw* types use pointers so that a missing key can be told apart from a
// zero value.
type rawCriteria struct {
	Score       *float64 `json:"score"`
	Explanation *string  `json:"explanation"`
}

type rawPurchaseInfluence struct {
	Likelihood  *string `json:"likelihood"`
	Explanation *string `json:"explanation"`
}

type rawReport struct {
	Interactivity     *rawCriteria          `json:"interactivity"`
	Entertainment     *rawCriteria          `json:"entertainment"`
	Relevance         *rawCriteria          `json:"relevance"`
	Informativeness   *rawCriteria          `json:"informativeness"`
	PurchaseInfluence *rawPurchaseInfluence `json:"purchaseInfluence"`
	OverallSummary    *string               `json:"overallSummary"`
	Suggestions       *[]string             `json:"suggestions"`
}

// ParseReport decodes a provider response into a report. Any missing field,
// wrong type, out-of-range score or unknown likelihood label rejects the whole
// response.
func ParseReport(text string) (*models.AnalysisReport, error) {
	body, err := extractJSONObject(text)
	if err != nil {
		return nil, parseError(err)
	}

	var raw rawReport
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, parseError(fmt.Errorf("decode report: %w", err))
	}

	report, err := raw.toReport()
	if err != nil {
		return nil, parseError(err)
	}
	return report, nil
}

func (r *rawReport) toReport() (*models.AnalysisReport, error) {
	report := &models.AnalysisReport{}

	criteria := []struct {
		key models.CriteriaKey
		raw *rawCriteria
		dst *models.CriteriaReport
	}{
		{models.CriteriaInteractivity, r.Interactivity, &report.Interactivity},
		{models.CriteriaEntertainment, r.Entertainment, &report.Entertainment},
		{models.CriteriaRelevance, r.Relevance, &report.Relevance},
		{models.CriteriaInformativeness, r.Informativeness, &report.Informativeness},
	}
	for _, c := range criteria {
		parsed, err := c.raw.toCriteria(c.key)
		if err != nil {
			return nil, err
		}
		*c.dst = parsed
	}

	if r.PurchaseInfluence == nil {
		return nil, errors.New("missing field purchaseInfluence")
	}
	if r.PurchaseInfluence.Likelihood == nil {
		return nil, errors.New("missing field purchaseInfluence.likelihood")
	}
	likelihood, ok := models.NormalizeLikelihood(*r.PurchaseInfluence.Likelihood)
	if !ok {
		return nil, fmt.Errorf("purchaseInfluence.likelihood %q is not one of %s",
			*r.PurchaseInfluence.Likelihood, strings.Join(models.LikelihoodLabels, ", "))
	}
	if r.PurchaseInfluence.Explanation == nil {
		return nil, errors.New("missing field purchaseInfluence.explanation")
	}
	report.PurchaseInfluence = models.PurchaseInfluence{
		Likelihood:  likelihood,
		Explanation: *r.PurchaseInfluence.Explanation,
	}

	if r.OverallSummary == nil {
		return nil, errors.New("missing field overallSummary")
	}
	report.OverallSummary = *r.OverallSummary

	if r.Suggestions == nil || *r.Suggestions == nil {
		return nil, errors.New("missing field suggestions")
	}
	report.Suggestions = append([]string{}, (*r.Suggestions)...)

	return report, nil
}

func (c *rawCriteria) toCriteria(key models.CriteriaKey) (models.CriteriaReport, error) {
	if c == nil {
		return models.CriteriaReport{}, fmt.Errorf("missing field %s", key)
	}
	if c.Score == nil {
		return models.CriteriaReport{}, fmt.Errorf("missing field %s.score", key)
	}
	score := *c.Score
	if score != math.Trunc(score) {
		return models.CriteriaReport{}, fmt.Errorf("%s.score %v is not an integer", key, score)
	}
	if score < models.MinScore || score > models.MaxScore {
		return models.CriteriaReport{}, fmt.Errorf("%s.score %v is outside %d-%d", key, score, models.MinScore, models.MaxScore)
	}
	if c.Explanation == nil {
		return models.CriteriaReport{}, fmt.Errorf("missing field %s.explanation", key)
	}
	return models.CriteriaReport{Score: int(score), Explanation: *c.Explanation}, nil
}

// extractJSONObject finds the first JSON object in a response that may be
// wrapped in markdown fences or surrounded by prose.
func extractJSONObject(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty response")
	}

	start := strings.IndexByte(text, '{')
	if start == -1 {
		return nil, errors.New("no JSON object found in response")
	}

	var obj json.RawMessage
	dec := json.NewDecoder(strings.NewReader(text[start:]))
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("malformed JSON object in response: %w", err)
	}
	return obj, nil
}
