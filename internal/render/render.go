// Package render formats analysis reports for terminals and chat clients.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	FormatHuman    = "human"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

var Formats = []string{FormatHuman, FormatJSON, FormatYAML, FormatMarkdown}

// Write renders report to w in the requested format.
func Write(w io.Writer, report *models.AnalysisReport, format string) error {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(report))
		return err
	case FormatHuman, "":
		Human(w, report)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// Markdown renders the report the way the A2A agent and the TUI show it.
func Markdown(report *models.AnalysisReport) string {
	var b strings.Builder
	b.WriteString("# Hasil Analisa Konten Instagram\n\n")

	b.WriteString("## Skor Kriteria\n\n")
	for _, c := range report.Criteria() {
		fmt.Fprintf(&b, "### %s: %d/%d\n", c.Key.Title(), c.Score, models.MaxScore)
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(c.Explanation))
	}

	b.WriteString("## Pengaruh terhadap Keputusan Pembelian\n\n")
	fmt.Fprintf(&b, "**Kemungkinan:** %s\n\n", report.PurchaseInfluence.Likelihood)
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(report.PurchaseInfluence.Explanation))

	b.WriteString("## Ringkasan\n\n")
	fmt.Fprintf(&b, "%s\n", strings.TrimSpace(report.OverallSummary))

	if len(report.Suggestions) > 0 {
		b.WriteString("\n## Saran Perbaikan\n\n")
		for i, s := range report.Suggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(s))
		}
	}

	return b.String()
}

// Human writes a colored terminal rendering of the report.
func Human(w io.Writer, report *models.AnalysisReport) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "📊 SKOR KRITERIA")
	for _, c := range report.Criteria() {
		scoreColor(c.Score).Fprintf(w, "   %-12s %2d/%d %s\n", c.Key.Title(), c.Score, models.MaxScore, scoreBar(c.Score))
		fmt.Fprintln(w, wrapText(c.Explanation, 80, "      "))
	}
	fmt.Fprintln(w)

	white.Fprintln(w, "🛒 PENGARUH PEMBELIAN")
	likelihoodColor(report.PurchaseInfluence.Likelihood).Fprintf(w, "   %s\n", strings.ToUpper(report.PurchaseInfluence.Likelihood))
	fmt.Fprintln(w, wrapText(report.PurchaseInfluence.Explanation, 80, "   "))
	fmt.Fprintln(w)

	white.Fprintln(w, "📝 RINGKASAN")
	fmt.Fprintln(w, wrapText(report.OverallSummary, 80, "   "))
	fmt.Fprintln(w)

	if len(report.Suggestions) > 0 {
		yellow.Fprintln(w, "💡 SARAN PERBAIKAN")
		for i, s := range report.Suggestions {
			fmt.Fprintf(w, "   %d. %s\n", i+1, strings.TrimSpace(s))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Gunakan -o json atau -o yaml untuk output yang bisa diproses mesin"))
}

func scoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > models.MaxScore {
		score = models.MaxScore
	}
	return strings.Repeat("█", score) + strings.Repeat("░", models.MaxScore-score)
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 8:
		return color.New(color.FgGreen)
	case score >= 5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func likelihoodColor(likelihood string) *color.Color {
	switch likelihood {
	case models.LikelihoodHigh:
		return color.New(color.FgGreen, color.Bold)
	case models.LikelihoodMedium:
		return color.New(color.FgYellow, color.Bold)
	case models.LikelihoodLow:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		current := indent
		for _, word := range words {
			switch {
			case current == indent:
				current += word
			case len(current)+len(word)+1 > width:
				result.WriteString(current + "\n")
				current = indent + word
			default:
				current += " " + word
			}
		}
		result.WriteString(current + "\n")
	}
	return strings.TrimSuffix(result.String(), "\n")
}
