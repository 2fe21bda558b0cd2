package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorInfo    = colorTeal
)

// statColors cycles through bar colors for statistic charts.
func statColors() []lipgloss.Color {
	return []lipgloss.Color{colorGreen, colorYellow, colorBlue, colorPeach, colorMauve}
}

var (
	lockTimeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	lockDateStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	lockHintStyle  = lipgloss.NewStyle().Foreground(colorOverlay0)
	lockFadeStyle  = lipgloss.NewStyle().Faint(true).Foreground(colorSurface1)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorMantle)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorMantle)
	statusOKStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorMantle)
	lockButton     = lipgloss.NewStyle().Foreground(colorCrust).Background(colorAccent).Padding(0, 1)
	iconLabelStyle = lipgloss.NewStyle().Foreground(colorText)
	modalTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	modalMuted     = lipgloss.NewStyle().Foreground(colorSubtext0)
	modalSection   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	modalLink      = lipgloss.NewStyle().Foreground(colorInfo).Underline(true)
	chipStyle      = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	footerKey      = lipgloss.NewStyle().Foreground(colorAccent)
)
