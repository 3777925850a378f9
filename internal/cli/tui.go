package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/preset"
)

var (
	pickerActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickerRowStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	pickerHintStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// PresetSelection holds the result of the preset picker.
type PresetSelection struct {
	Preset preset.Preset
}

// pickerRow is one rendered preset entry. Swatch strips and the
// grayscale check are computed once up front so View stays cheap.
type pickerRow struct {
	preset   preset.Preset
	label    string
	strip    string
	graySafe bool
}

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Selected *PresetSelection

	rows     []pickerRow
	cursor   int
	top      int
	viewport int
}

// NewPresetListModel creates a picker over the given presets.
func NewPresetListModel(presets []preset.Preset) PresetListModel {
	rows := make([]pickerRow, len(presets))
	for i, p := range presets {
		r := pickerRow{
			preset: p,
			label:  fmt.Sprintf("%-15s %-5s %-19s", p.Name, p.Style, p.ColorSet),
		}
		if s, err := colorset.Get(p.ColorSet); err == nil {
			var strip strings.Builder
			for _, hex := range s.Hex {
				strip.WriteString(swatch(hex))
			}
			r.strip = strip.String()
			r.graySafe = colorset.GrayscaleDiscriminable(s, colorset.DefaultMinLumaDelta)
		}
		rows[i] = r
	}
	return PresetListModel{rows: rows, viewport: 15}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.viewport = max(5, msg.Height-6)
		m = m.scrollIntoView()
	}
	return m, nil
}

func (m PresetListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
		m = m.scrollIntoView()
	case "down", "j":
		m.cursor = min(len(m.rows)-1, m.cursor+1)
		m = m.scrollIntoView()
	case "enter":
		m.Selected = &PresetSelection{Preset: m.rows[m.cursor].preset}
		return m, tea.Quit
	}
	return m, nil
}

// scrollIntoView keeps the cursor inside the visible window.
func (m PresetListModel) scrollIntoView() PresetListModel {
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.viewport {
		m.top = m.cursor - m.viewport + 1
	}
	return m
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(pickerHintStyle.Render("↑/↓ navigate  ⏎ render sample  q quit"))
	b.WriteString("\n\n")

	for i := m.top; i < min(m.top+m.viewport, len(m.rows)); i++ {
		r := m.rows[i]

		cursor, label := "  ", pickerRowStyle.Render(r.label)
		if i == m.cursor {
			cursor, label = "▸ ", pickerActiveStyle.Render(r.label)
		}

		marker := " "
		if r.graySafe {
			marker = StyleSuccess.Render("*")
		}

		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, marker, label, r.strip)
	}

	b.WriteString("\n")
	b.WriteString(pickerHintStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s grayscale-safe cycle\n", StyleSuccess.Render("*"))

	return b.String()
}
