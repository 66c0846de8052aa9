// Package output provides styled terminal output helpers (success, error,
// warning, product formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	presetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusDraft:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusArchived: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// OutputMode determines output format
type OutputMode int

const (
	ModeShort OutputMode = iota
	ModeLong
	ModeJSON
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodeInvalidRange  = "invalid_range"
	ErrCodeUnknownPreset = "unknown_preset"
	ErrCodeConflict      = "conflict"
	ErrCodeDatabaseError = "database_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	JSONErrorWithDetails(code, message, nil)
}

// JSONErrorWithDetails outputs an error as JSON with additional context
func JSONErrorWithDetails(code, message string, details map[string]interface{}) {
	errObj := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errObj["details"] = details
	}
	data, _ := json.Marshal(map[string]interface{}{"error": errObj})
	fmt.Println(string(data))
}

// FormatStatus formats a status with color
func FormatStatus(s models.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(fmt.Sprintf("[%s]", s))
}

// FormatStock renders a stock count, flagging empty and low stock
func FormatStock(n int) string {
	switch {
	case n == 0:
		return errorStyle.Render("out of stock")
	case n <= models.LowStockThreshold:
		return warningStyle.Render(fmt.Sprintf("%d left", n))
	default:
		return fmt.Sprintf("%d in stock", n)
	}
}

// FormatProductShort formats a product on one line
func FormatProductShort(p *models.Product, price rangefilter.Domain) string {
	parts := []string{
		titleStyle.Render(p.ID),
		p.Name,
		price.Format(p.Price),
		FormatStock(p.Stock),
	}
	if p.CategoryName != "" {
		parts = append(parts, subtleStyle.Render(p.CategoryName))
	}
	if p.Status != models.StatusActive {
		parts = append(parts, FormatStatus(p.Status))
	}
	return strings.Join(parts, "  ")
}

// FormatProductLong formats a product with all fields. The description is
// included verbatim; callers may render it as markdown first.
func FormatProductLong(p *models.Product, price rangefilter.Domain, description string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", p.ID, p.Name)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Status: %s\n", FormatStatus(p.Status))
	fmt.Fprintf(&sb, "Price: %s | Stock: %s\n", price.Format(p.Price), FormatStock(p.Stock))
	if p.SKU != "" {
		fmt.Fprintf(&sb, "SKU: %s\n", p.SKU)
	}
	if p.CategoryName != "" {
		fmt.Fprintf(&sb, "Category: %s (%s)\n", p.CategoryName, p.CategoryID)
	}
	fmt.Fprintf(&sb, "%s\n", subtleStyle.Render(fmt.Sprintf("created %s, updated %s",
		FormatTimeAgo(p.CreatedAt), FormatTimeAgo(p.UpdatedAt))))

	if description != "" {
		sb.WriteString(SectionHeader("Description"))
		sb.WriteString(description)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatFilter renders a committed range with its resolved preset,
// e.g. "price: 100 - 500 ($100 - $500)".
func FormatFilter(d rangefilter.Domain, r rangefilter.Range) string {
	id := rangefilter.Resolve(d, r)
	return fmt.Sprintf("%s: %s (%s)", d.Name, presetStyle.Render(d.Label(id)), d.Describe(r))
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nDESCRIPTION:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
