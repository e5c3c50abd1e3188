// Package tui is an interactive terminal form over a controller.
package tui

import (
	"context"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/render"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	loadingButton = "Sedang Meracik Analisa Terbaik..."
	submitButton  = "Yuk, Analisa Sekarang!"
	loadingText   = "Sabar sebentar ya, AI kami lagi bekerja keras menganalisa kontenmu. Hasil terbaik butuh sedikit waktu!"
	emptyTitle    = "Wawasan Berharga Kontenmu Menanti di Sini!"
	emptyText     = "Lengkapi detail di atas dan tekan Enter untuk analisa. Siap temukan insight keren untuk kontenmu? Pasti penasaran!"
)

// field is one focusable row of the form. The gender row has no text input.
type field struct {
	label    string
	audience models.AudienceField
	content  models.ContentField
	input    textinput.Model
}

func (f field) isGender() bool {
	return f.audience == models.AudienceGender
}

// submissionDoneMsg arrives when a request started from this model finishes.
type submissionDoneMsg struct {
	seq uint64
}

// Model is the bubbletea model for the analysis form.
type Model struct {
	ctrl     *controller.Controller
	fields   []field
	focus    int
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   styles
	view     controller.View

	// hideError dismisses the banner until the next submit.
	hideError bool
	width     int
}

func New(ctrl *controller.Controller) Model {
	view := ctrl.Snapshot()

	newInput := func(placeholder, value string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "│ "
		ti.CharLimit = limit
		ti.Width = 60
		ti.SetValue(value)
		return ti
	}

	fields := []field{
		{label: "Usia Minimal", audience: models.AudienceAgeMin, input: newInput("18", view.Audience.AgeMin, 3)},
		{label: "Usia Maksimal", audience: models.AudienceAgeMax, input: newInput("35", view.Audience.AgeMax, 3)},
		{label: "Gender", audience: models.AudienceGender},
		{label: "Lokasi", audience: models.AudienceLocation, input: newInput("Contoh: Jakarta, Indonesia", view.Audience.Location, 120)},
		{label: "Minat", audience: models.AudienceInterests, input: newInput("Contoh: fashion, kuliner, traveling", view.Audience.Interests, 240)},
		{label: "Link Instagram", content: models.ContentLink, input: newInput(models.InstagramLinkPrefix+"p/...", view.Content.Link, 300)},
		{label: "Caption", content: models.ContentCaption, input: newInput("Tulis caption kontenmu di sini", view.Content.Caption, 2200)},
	}
	fields[0].input.Focus()

	st := defaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return Model{
		ctrl:     ctrl,
		fields:   fields,
		spinner:  sp,
		renderer: renderer,
		styles:   st,
		view:     view,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab, tea.KeyDown:
			return m.moveFocus(1), nil

		case tea.KeyShiftTab, tea.KeyUp:
			return m.moveFocus(-1), nil

		case tea.KeyCtrlX:
			m.hideError = true
			return m, nil

		case tea.KeyEnter:
			if m.view.IsLoading {
				return m, nil
			}
			return m.submit()
		}

		if m.fields[m.focus].isGender() {
			switch msg.Type {
			case tea.KeyLeft:
				return m.cycleGender(-1), nil
			case tea.KeyRight, tea.KeySpace:
				return m.cycleGender(1), nil
			}
			return m, nil
		}

		var cmd tea.Cmd
		f := &m.fields[m.focus]
		f.input, cmd = f.input.Update(msg)
		m.apply(*f, f.input.Value())
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.fields {
			m.fields[i].input.Width = max(msg.Width-24, 20)
		}
		if m.renderer != nil {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(max(msg.Width-8, 40)),
			)
		}
		return m, nil

	case submissionDoneMsg:
		m.view = m.ctrl.Snapshot()
		return m, nil

	case spinner.TickMsg:
		if m.view.IsLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) moveFocus(delta int) Model {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	if !m.fields[m.focus].isGender() {
		m.fields[m.focus].input.Focus()
	}
	return m
}

func (m Model) cycleGender(delta int) Model {
	idx := 0
	for i, opt := range models.GenderOptions {
		if opt.Value == m.view.Audience.Gender {
			idx = i
			break
		}
	}
	n := len(models.GenderOptions)
	next := models.GenderOptions[(idx+delta+n)%n]
	m.apply(m.fields[m.focus], next.Value)
	return m
}

func (m *Model) apply(f field, value string) {
	if f.audience != "" {
		_ = m.ctrl.SetAudienceField(f.audience, value)
	} else {
		_ = m.ctrl.SetContentField(f.content, value)
	}
	m.view = m.ctrl.Snapshot()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.hideError = false
	sub, err := m.ctrl.Submit(context.Background())
	m.view = m.ctrl.Snapshot()
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, waitForSubmission(sub))
}

func waitForSubmission(sub *controller.Submission) tea.Cmd {
	return func() tea.Msg {
		<-sub.Done()
		return submissionDoneMsg{seq: sub.Seq}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("ARTICLE FITUR SMM"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := m.styles.label.Render(f.label)
		if i == m.focus {
			label = m.styles.focused.Render("› " + f.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		if f.isGender() {
			b.WriteString(m.genderRow(i == m.focus))
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.view.IsLoading {
		b.WriteString(m.styles.buttonDisabled.Render(m.spinner.View() + " " + loadingButton))
	} else {
		b.WriteString(m.styles.button.Render(submitButton))
	}
	b.WriteString("\n\n")
	b.WriteString(m.resultPanel())
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("tab/shift+tab: pindah • ←/→: gender • enter: analisa • ctrl+x: tutup error • esc: keluar"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) genderRow(focused bool) string {
	parts := make([]string, 0, len(models.GenderOptions))
	for _, opt := range models.GenderOptions {
		if opt.Value == m.view.Audience.Gender {
			parts = append(parts, m.styles.selected.Render("● "+opt.Label))
		} else {
			parts = append(parts, m.styles.option.Render("○ "+opt.Label))
		}
	}
	row := strings.Join(parts, "  ")
	if focused {
		return "│ " + row
	}
	return "  " + row
}

// resultPanel mirrors the four states of the result area: loading, error,
// report and the empty placeholder.
func (m Model) resultPanel() string {
	var b strings.Builder

	if m.view.IsLoading {
		b.WriteString(m.styles.muted.Render(loadingText))
		b.WriteString("\n")
	}
	showError := m.view.Error != nil && !m.hideError
	if showError {
		b.WriteString(m.styles.errorBanner.Render(*m.view.Error))
		b.WriteString("\n")
	}
	if !m.view.IsLoading && m.view.Report != nil {
		b.WriteString(m.renderReport(m.view.Report))
	}
	if !m.view.IsLoading && m.view.Report == nil && !showError {
		b.WriteString(m.styles.emptyTitle.Render(emptyTitle))
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render(emptyText))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderReport(report *models.AnalysisReport) string {
	md := render.Markdown(report)
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Run starts the form in the alternate screen and blocks until the user quits.
func Run(ctrl *controller.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
