package analyzer

import (
	"strings"
	"testing"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	req := models.AnalysisRequest{
		Audience: models.TargetAudience{
			AgeMin:    "18",
			AgeMax:    "35",
			Gender:    models.GenderFemale,
			Location:  "Jakarta",
			Interests: "fashion, skincare",
		},
		Content: models.InstagramContent{
			Link:    "https://www.instagram.com/p/abc/",
			Caption: "Great outfit!",
		},
	}

	prompt := BuildPrompt(req)

	for _, want := range []string{
		"18 - 35 tahun",
		"Gender: Wanita",
		"Lokasi: Jakarta",
		"Minat: fashion, skincare",
		"Link: https://www.instagram.com/p/abc/",
		"Caption: Great outfit!",
		"Rendah, Sedang, Tinggi",
	} {
		assert.Contains(t, prompt, want)
	}
	for _, key := range models.CriteriaKeys {
		assert.Contains(t, prompt, string(key))
	}
	for _, key := range []string{"purchaseInfluence", "overallSummary", "suggestions"} {
		assert.Contains(t, prompt, key)
	}
}

func TestBuildPrompt_MissingContentFields(t *testing.T) {
	req := models.AnalysisRequest{
		Audience: models.DefaultAudience(),
		Content:  models.InstagramContent{Caption: "  caption only "},
	}

	prompt := BuildPrompt(req)
	assert.Contains(t, prompt, "Link: "+notProvided)
	assert.Contains(t, prompt, "Caption: caption only\n")
	assert.Equal(t, 1, strings.Count(prompt, "Link: "))
}
