package analyzer

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
)

const systemInstruction = `You are a senior social media marketing analyst specialising in Instagram campaigns for the Indonesian market. You evaluate how well a single Instagram post serves a given target audience, grounded in research on how social media marketing features (interactivity, entertainment, relevance, informativeness) influence purchase decisions. You always answer in Bahasa Indonesia with a friendly, encouraging tone, and you always respond with a single JSON object and nothing else.`

const notProvided = "(tidak diberikan)"

// BuildPrompt renders the user prompt for one analysis request.
func BuildPrompt(req models.AnalysisRequest) string {
	a := req.Audience
	c := req.Content

	var b strings.Builder
	b.WriteString("Analisa efektivitas konten Instagram berikut untuk target audiens yang dijelaskan.\n\n")

	b.WriteString("TARGET AUDIENS\n")
	fmt.Fprintf(&b, "- Rentang usia: %s - %s tahun\n", orNotProvided(a.AgeMin), orNotProvided(a.AgeMax))
	fmt.Fprintf(&b, "- Gender: %s\n", orNotProvided(a.Gender))
	fmt.Fprintf(&b, "- Lokasi: %s\n", orNotProvided(a.Location))
	fmt.Fprintf(&b, "- Minat: %s\n\n", orNotProvided(a.Interests))

	b.WriteString("KONTEN INSTAGRAM\n")
	fmt.Fprintf(&b, "- Link: %s\n", orNotProvided(c.Link))
	fmt.Fprintf(&b, "- Caption: %s\n\n", orNotProvided(c.Caption))

	b.WriteString("Nilai konten pada empat kriteria berikut, masing-masing dengan skor bilangan bulat 0 sampai 10 dan penjelasan singkat:\n")
	b.WriteString("- interactivity: seberapa besar konten mengajak audiens berinteraksi (komentar, share, save, ajakan bertindak)\n")
	b.WriteString("- entertainment: seberapa menghibur dan menarik konten bagi audiens\n")
	b.WriteString("- relevance: seberapa relevan konten dengan usia, gender, lokasi, dan minat audiens\n")
	b.WriteString("- informativeness: seberapa informatif konten tentang produk atau pesan yang disampaikan\n\n")

	fmt.Fprintf(&b, "Perkirakan juga pengaruh konten terhadap keputusan pembelian (purchaseInfluence) dengan likelihood salah satu dari: %s, beserta penjelasannya.\n", strings.Join(models.LikelihoodLabels, ", "))
	b.WriteString("Tulis ringkasan keseluruhan (overallSummary) dan daftar saran perbaikan yang konkret (suggestions).\n\n")

	b.WriteString("Balas HANYA dengan satu objek JSON valid tanpa markdown, dengan format persis seperti ini:\n")
	b.WriteString(responseShape)
	return b.String()
}

const responseShape = `{
  "interactivity": {"score": 0, "explanation": ""},
  "entertainment": {"score": 0, "explanation": ""},
  "relevance": {"score": 0, "explanation": ""},
  "informativeness": {"score": 0, "explanation": ""},
  "purchaseInfluence": {"likelihood": "Rendah|Sedang|Tinggi", "explanation": ""},
  "overallSummary": "",
  "suggestions": [""]
}`

func orNotProvided(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notProvided
	}
	return s
}
