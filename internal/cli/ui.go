package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors shared across commands. The preset table and gallery picker
// reuse these so every surface of the CLI reads the same.
var (
	colorCyan  = lipgloss.Color("36")  // primary accent
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
)

// Exported styles, reused by the preset table and picker.
var (
	StyleTitle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	StyleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var (
	styleIconSuccess = StyleSuccess
	styleIconError   = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleIconWarning = StyleWarning
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached  = StyleSuccess
	styleFresh   = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// Status line helpers. Each prints one line to stdout; structured
// logging stays on stderr so command output survives a pipe.

func printSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconError.Render(iconError), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconWarning.Render(iconWarning), StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Printf("%s %s\n", styleIconInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Printf("  %s\n", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

// printKeyValue prints a labeled value in aligned columns.
func printKeyValue(key, value string) {
	fmt.Printf("%s %s\n", styleKey.Render(key), StyleValue.Render(value))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Printf("%s %s\n", StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// printStats summarizes a rendered figure on one dim line: panel and
// curve counts plus whether font discovery was served from cache.
func printStats(panelCount, curveCount int, cachedFonts bool) {
	parts := make([]string, 0, 3)
	if panelCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d panels", panelCount)))
	}
	if curveCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d curves", curveCount)))
	}

	status, style := "fonts fresh", styleFresh
	if cachedFonts {
		status, style = "fonts cached", styleCached
	}
	parts = append(parts, style.Render(status))

	fmt.Printf("  %s\n", strings.Join(parts, StyleDim.Render(" · ")))
}

// swatch renders a filled block in the given hex color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}
