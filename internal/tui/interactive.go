package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/cacontreras/polsim/internal/optics"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const (
	maxStages      = 6
	intensityStep  = 0.1
	angleStep      = 5.0
	curvePlotWidth = 64
)

type model struct {
	intensity float64
	angles    []float64

	cursor  int
	editing bool
	editBuf string

	width  int
	height int
}

func NewApp() *model {
	return &model{
		intensity: 1.0,
		angles:    []float64{45, 45},
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

// rows is intensity plus one row per polarizer stage.
func (m model) rows() int { return 1 + len(m.angles) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.setValue(val)
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.2f", m.value())
	case "a":
		if len(m.angles) < maxStages {
			m.angles = append(m.angles, 45)
		}
	case "d":
		if len(m.angles) > 0 {
			m.angles = m.angles[:len(m.angles)-1]
			if m.cursor >= m.rows() {
				m.cursor = m.rows() - 1
			}
		}
	case "0":
		m.intensity = 1.0
		for i := range m.angles {
			m.angles[i] = 45
		}
	}
	return m, nil
}

func (m model) value() float64 {
	if m.cursor == 0 {
		return m.intensity
	}
	return m.angles[m.cursor-1]
}

func (m *model) setValue(val float64) {
	if m.cursor == 0 {
		if val < 0 {
			val = 0
		}
		m.intensity = val
		return
	}
	m.angles[m.cursor-1] = val
}

func (m *model) nudge(dir float64) {
	if m.cursor == 0 {
		m.setValue(m.intensity + dir*intensityStep)
		return
	}
	m.setValue(m.angles[m.cursor-1] + dir*angleStep)
}

func (m model) View() string {
	calc := optics.New(m.intensity)
	intensities := calc.Chain(m.angles)
	final := intensities[len(intensities)-1]

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("p o l s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	b.WriteString(m.viewParams())
	b.WriteString("\n")
	b.WriteString(m.viewStages(intensities))
	b.WriteString("\n")
	b.WriteString(m.viewCurve(calc))

	percent := 0.0
	if m.intensity > 0 {
		percent = final / m.intensity * 100
	}
	b.WriteString(fmt.Sprintf("\n   %s %s   %s %s\n",
		dim.Render("transmitted"),
		green.Render(fmt.Sprintf("%.4f W/m²", final)),
		dim.Render("ratio"),
		yellow.Render(fmt.Sprintf("%.1f%%", percent))))

	b.WriteString("\n")
	b.WriteString(dim.Render("   ↑↓ select  ←→ adjust  enter edit  a/d add/drop stage  0 reset  q quit") + "\n")

	return b.String()
}

func (m model) viewParams() string {
	var b strings.Builder

	labels := []string{"intensity I₀"}
	for i := range m.angles {
		labels = append(labels, fmt.Sprintf("stage %d angle", i+1))
	}
	values := append([]float64{m.intensity}, m.angles...)

	for i, label := range labels {
		val := fmt.Sprintf("%8.2f", values[i])
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		unit := "°"
		if i == 0 {
			unit = " W/m²"
		}
		if i == m.cursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", label)) + magenta.Render(val) + dim.Render(unit) + "\n")
		} else {
			b.WriteString("     " + dim.Render(fmt.Sprintf("%-14s", label)) + dim.Render(val) + dimmer.Render(unit) + "\n")
		}
	}
	return b.String()
}

func (m model) viewStages(intensities []float64) string {
	var b strings.Builder

	barWidth := 30
	scale := m.intensity
	if scale <= 0 {
		scale = 1
	}

	for i, intensity := range intensities {
		label := "source"
		if i > 0 {
			label = fmt.Sprintf("after P%d", i)
		}

		filled := int(intensity / scale * float64(barWidth))
		if filled < 0 {
			filled = 0
		}
		if filled > barWidth {
			filled = barWidth
		}

		bar := green.Render(strings.Repeat("█", filled)) + dimmer.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("   %s %s %s\n",
			dim.Render(fmt.Sprintf("%-9s", label)),
			bar,
			white.Render(fmt.Sprintf("%.4f", intensity))))
	}
	return b.String()
}

func (m model) viewCurve(calc *optics.Calculator) string {
	points := curvePlotWidth
	_, intensities := calc.Curve(points)

	graph := asciigraph.Plot(intensities,
		asciigraph.Height(8),
		asciigraph.Width(curvePlotWidth),
		asciigraph.Caption("I(θ) = I₀·cos²θ over 0°–360°"),
	)

	var b strings.Builder
	for _, line := range strings.Split(graph, "\n") {
		b.WriteString("   " + line + "\n")
	}
	return b.String()
}

func Run() error {
	p := tea.NewProgram(NewApp(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
