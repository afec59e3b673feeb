package domain

import "math"

const (
	// ProgressRingRadius is the radius of the small completion ring.
	ProgressRingRadius = 40
	// ScoreRingCircumference is 2·π·90, as drawn by the score ring.
	ScoreRingCircumference = 565.48

	ColorGood     = "#10b981"
	ColorWarning  = "#f59e0b"
	ColorCritical = "#ef4444"
)

// ProgressRingCircumference of the completion ring.
var ProgressRingCircumference = 2 * math.Pi * ProgressRingRadius

// DashOffset returns the stroke-dashoffset that reveals pct percent of a
// circle with the given circumference.
func DashOffset(circumference, pct float64) float64 {
	return circumference - (pct/100)*circumference
}

// ScoreColor is the ring stroke for a running score.
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return ColorGood
	case score >= 40:
		return ColorWarning
	default:
		return ColorCritical
	}
}

// Band is the final classification shown in the results dialog.
type Band struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

var (
	BandGood = Band{
		Key:     "good",
		Label:   "Está bom",
		Color:   ColorGood,
		Icon:    "🟢",
		Message: "Excelente! Sua infraestrutura de TI está bem estruturada. Continue mantendo as boas práticas. Além disso, contamos com uma equipe de TI altamente competente, sempre disponível para apoiar quando necessário.",
	}
	BandImprove = Band{
		Key:     "improve",
		Label:   "Pontos a melhorar",
		Color:   ColorWarning,
		Icon:    "🟡",
		Message: "Atenção! Há oportunidades significativas de melhoria na sua infraestrutura de TI.",
	}
	BandCritical = Band{
		Key:     "critical",
		Label:   "Situação crítica",
		Color:   ColorCritical,
		Icon:    "🔴",
		Message: "Alerta! Sua infraestrutura de TI requer atenção imediata. É fundamental implementar melhorias urgentes.",
	}
)

// ClassifyResult maps a final score to its band. Lower bounds are inclusive.
func ClassifyResult(score int) Band {
	switch {
	case score >= 80:
		return BandGood
	case score >= 40:
		return BandImprove
	default:
		return BandCritical
	}
}

// StatusTier is the running status sentence under the score.
type StatusTier struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

var (
	StatusExcellent = StatusTier{Class: "excellent", Text: "Excelente! Sua infraestrutura está muito bem gerenciada."}
	StatusGood      = StatusTier{Class: "good", Text: "Bom! Mas ainda há espaço para melhorias."}
	StatusRegular   = StatusTier{Class: "regular", Text: "Regular. Considere implementar mais boas práticas."}
	StatusAttention = StatusTier{Class: "attention", Text: "Atenção! É importante revisar suas práticas de infraestrutura."}
)

// ClassifyStatus picks the running status for an average score.
func ClassifyStatus(score int) StatusTier {
	switch {
	case score >= 90:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 50:
		return StatusRegular
	default:
		return StatusAttention
	}
}
