package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-biquad/internal/cli"
	"github.com/cwbudde/algo-biquad/measure/response"
)

const (
	barWidth    = 24
	curveHeight = 9
	curveWidth  = 60

	// displayRangeDB is the bar scale used when the layout has no limit.
	displayRangeDB = 24.0
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#888888")).
	Italic(true)

// renderEditor renders the band table, the combined curve and key help
func renderEditor(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderBands(m))
	b.WriteString("\n")
	b.WriteString(renderCurve(m))
	b.WriteString("\n")
	b.WriteString(renderStatus(m))
	b.WriteString(helpStyle.Render("←/→ band  ↑/↓ gain  +/- step  0 flat band  r flat all  enter accept  q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderHeader renders the editor title and equalizer summary
func renderHeader(m Model) string {
	title := cli.TitleStyle.Render(m.Title)

	subtitle := cli.SubtitleStyle.Render(fmt.Sprintf("%d bands | %s peaks | %g Hz | step %.1f dB",
		m.EQ.NumBands(), m.EQ.Design(), m.EQ.SampleRate(), m.Step()))

	return title + "\n" + subtitle
}

// renderBands renders one table row per band with a gain bar
func renderBands(m Model) string {
	layout := m.EQ.Layout()
	lo, hi := displayRange(layout.MinGainDB, layout.MaxGainDB)

	rows := make([][]string, m.EQ.NumBands())
	for i, band := range m.EQ.Bands() {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			cli.FormatHz(band.Frequency),
			fmt.Sprintf("%+.1f dB", band.GainDB),
			gainBar(band.GainDB, lo, hi, barWidth),
		}
	}

	return cli.SelectTable([]string{"Band", "Hz", "Gain", "Level"}, rows, m.Cursor)
}

// renderCurve renders the combined magnitude response of all bands
func renderCurve(m Model) string {
	upper := math.Min(20000, 0.45*m.EQ.SampleRate())

	freqs, err := response.LogFrequencies(20, upper, curveWidth)
	if err != nil {
		return ""
	}

	return cli.Plot(response.Analyze(m.EQ, m.EQ.SampleRate(), freqs), curveHeight)
}

func renderStatus(m Model) string {
	switch {
	case m.Err != nil:
		return cli.ErrorStyle.Render(m.Err.Error()) + "\n"
	case m.Status != "":
		return cli.GoodStyle.Render(m.Status) + "\n"
	default:
		return ""
	}
}

// gainBar draws gainDB on a scale from lo to hi with the 0 dB mark at its
// position on the scale.
func gainBar(gainDB, lo, hi float64, width int) string {
	pos := func(v float64) int {
		v = math.Max(lo, math.Min(hi, v))
		return int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
	}

	zero, at := pos(0), pos(gainDB)
	from, to := min(zero, at), max(zero, at)

	cells := []rune(strings.Repeat("·", width))
	for i := from; i <= to; i++ {
		cells[i] = '█'
	}

	cells[zero] = '│'
	if at != zero {
		cells[at] = '█'
	}

	return string(cells)
}

func displayRange(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 0) {
		lo = -displayRangeDB
	}

	if math.IsInf(hi, 0) {
		hi = displayRangeDB
	}

	return math.Min(lo, 0), math.Max(hi, 0)
}
