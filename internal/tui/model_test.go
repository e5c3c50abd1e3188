package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, report *models.AnalysisReport, err error) (Model, func()) {
	t.Helper()
	release := make(chan struct{})
	requester := analyzer.RequesterFunc(func(context.Context, models.AnalysisRequest) (*models.AnalysisReport, error) {
		<-release
		return report, err
	})
	var once sync.Once
	finish := func() { once.Do(func() { close(release) }) }
	t.Cleanup(finish)
	return New(controller.New(requester, nil)), finish
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, text string) Model {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func focusField(m Model, target string) Model {
	for i := 0; i < len(m.fields); i++ {
		if m.fields[m.focus].label == target {
			return m
		}
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

func fillValid(m Model) Model {
	m = focusField(m, "Lokasi")
	m = typeText(m, "Jakarta")
	m = focusField(m, "Minat")
	m = typeText(m, "fashion")
	m = focusField(m, "Caption")
	return typeText(m, "Outfit baru!")
}

func sampleReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		Interactivity:   models.CriteriaReport{Score: 7, Explanation: "Ajakan komentar."},
		Entertainment:   models.CriteriaReport{Score: 6, Explanation: "Lumayan."},
		Relevance:       models.CriteriaReport{Score: 8, Explanation: "Relevan."},
		Informativeness: models.CriteriaReport{Score: 5, Explanation: "Cukup."},
		PurchaseInfluence: models.PurchaseInfluence{
			Likelihood:  models.LikelihoodHigh,
			Explanation: "Menarik.",
		},
		OverallSummary: "Ringkasan singkat.",
	}
}

func TestModel_InitialView(t *testing.T) {
	m, _ := newModel(t, sampleReport(), nil)

	out := m.View()
	assert.Contains(t, out, emptyTitle)
	assert.Contains(t, out, submitButton)
	assert.Contains(t, out, "Semuanya Boleh")
	assert.Equal(t, "18", m.fields[0].input.Value())
	assert.Equal(t, "35", m.fields[1].input.Value())
}

func TestModel_TabNavigationWraps(t *testing.T) {
	m, _ := newModel(t, sampleReport(), nil)
	require.Equal(t, 0, m.focus)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(m.fields)-1, m.focus)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.fields[0].input.Focused())
}

func TestModel_GenderCycling(t *testing.T) {
	m, _ := newModel(t, sampleReport(), nil)
	m = focusField(m, "Gender")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, models.GenderMale, m.ctrl.Snapshot().Audience.Gender)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, models.GenderFemale, m.ctrl.Snapshot().Audience.Gender)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, models.GenderAll, m.ctrl.Snapshot().Audience.Gender)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, models.GenderFemale, m.ctrl.Snapshot().Audience.Gender)

	// letters are ignored on the gender row
	m = typeText(m, "x")
	assert.Equal(t, models.GenderFemale, m.ctrl.Snapshot().Audience.Gender)
}

func TestModel_TypingUpdatesController(t *testing.T) {
	m, _ := newModel(t, sampleReport(), nil)
	m = focusField(m, "Lokasi")
	m = typeText(m, "Bandung")

	assert.Equal(t, "Bandung", m.ctrl.Snapshot().Audience.Location)
}

func TestModel_SubmitValidationFailure(t *testing.T) {
	m, _ := newModel(t, sampleReport(), nil)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	require.NotNil(t, m.view.Error)
	assert.Contains(t, m.View(), *m.view.Error)

	assert.NotContains(t, m.View(), emptyTitle)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.NotContains(t, m.View(), *m.view.Error)
	assert.Contains(t, m.View(), emptyTitle, "dismissing the error brings back the placeholder")
}

func TestModel_SubmitSuccess(t *testing.T) {
	m, finish := newModel(t, sampleReport(), nil)
	m = fillValid(m)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.view.IsLoading)
	assert.Contains(t, m.View(), loadingButton)

	// enter is ignored while loading
	m, again := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again)

	finish()
	next, _ := m.Update(submissionDoneAfter(t, m, m.view.Seq))
	m = next.(Model)

	assert.False(t, m.view.IsLoading)
	require.NotNil(t, m.view.Report)
	assert.Contains(t, m.View(), "Ringkasan")
}

func TestModel_SubmitFailure(t *testing.T) {
	m, finish := newModel(t, nil, errors.New("koneksi terputus"))
	m = fillValid(m)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	finish()
	next, _ := m.Update(submissionDoneAfter(t, m, m.view.Seq))
	m = next.(Model)

	require.NotNil(t, m.view.Error)
	assert.Contains(t, *m.view.Error, "koneksi terputus")
	assert.Contains(t, m.View(), "koneksi terputus")
}

// submissionDoneAfter waits for the controller to leave the loading phase and
// returns the message the wait command would have produced.
func submissionDoneAfter(t *testing.T, m Model, seq uint64) tea.Msg {
	t.Helper()
	require.Eventually(t, func() bool {
		return !m.ctrl.Snapshot().IsLoading
	}, time.Second, 5*time.Millisecond)
	return submissionDoneMsg{seq: seq}
}

func TestWaitForSubmission(t *testing.T) {
	ctrl := controller.New(analyzer.RequesterFunc(func(context.Context, models.AnalysisRequest) (*models.AnalysisReport, error) {
		return sampleReport(), nil
	}), nil)
	for _, e := range []struct {
		field models.AudienceField
		value string
	}{{models.AudienceLocation, "Jakarta"}, {models.AudienceInterests, "kopi"}} {
		require.NoError(t, ctrl.SetAudienceField(e.field, e.value))
	}
	require.NoError(t, ctrl.SetContentField(models.ContentCaption, "Kopi pagi"))

	sub, err := ctrl.Submit(context.Background())
	require.NoError(t, err)

	msg := waitForSubmission(sub)()
	assert.Equal(t, submissionDoneMsg{seq: sub.Seq}, msg)
}
