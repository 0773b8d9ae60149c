package progress

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleName        = lipgloss.NewStyle().Bold(true)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleSpinner     = lipgloss.NewStyle().Foreground(colorCyan)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconPending = lipgloss.NewStyle().Foreground(colorCyan)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconInfo    = "›"
	iconPending = "⚬"
	iconSuccess = "✓"
)
