package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Catppuccin Mocha, https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorBrand  = colorPink
	colorLike   = colorGreen
	colorNope   = colorRed
	colorBorder = colorLavender
	colorMuted  = colorOverlay1
)

// fade mixes c toward the terminal background. alpha 1 is c, 0 is colorBase.
func fade(c lipgloss.Color, alpha float64) lipgloss.Color {
	alpha = min(1, max(0, alpha))
	to, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	from, _ := colorful.Hex(string(colorBase))
	return lipgloss.Color(from.BlendRgb(to, alpha).Clamped().Hex())
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	countStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusStyle = lipgloss.NewStyle().Foreground(colorPeach)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	emptyStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Foreground(colorText).
			Padding(1, 4).
			Align(lipgloss.Center)
	resetKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
)
