package monitor

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
)

var (
	// Base colors
	primaryColor   = lipgloss.Color("212")
	secondaryColor = lipgloss.Color("141")
	mutedColor     = lipgloss.Color("241")
	successColor   = lipgloss.Color("42")
	warningColor   = lipgloss.Color("214")
	errorColor     = lipgloss.Color("196")

	// Text styles
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtleStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle     = lipgloss.NewStyle().Foreground(errorColor)
	successStyle   = lipgloss.NewStyle().Foreground(successColor)
	warningStyle   = lipgloss.NewStyle().Foreground(warningColor)

	// Filter bar
	filterLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	presetStyle        = lipgloss.NewStyle().Foreground(secondaryColor)
	focusedFilterStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	// Modal frame
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	// Status styles
	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusActive:   lipgloss.NewStyle().Foreground(successColor),
		models.StatusDraft:    lipgloss.NewStyle().Foreground(warningColor),
		models.StatusArchived: lipgloss.NewStyle().Foreground(mutedColor),
	}
)

// tableStyles returns the product table styles: the default header with a
// muted rule and an inverted selected row
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("237")).
		Bold(false)
	return s
}

// formatStatus renders a status with color
func formatStatus(s models.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}
