// ABOUTME: Defines lipgloss styles for rendering diagnostics in terminal output.
// ABOUTME: Provides Format to produce a severity-colored one-line rendering of a finding.
package lint

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fixStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// styleForSeverity returns the lipgloss style for a severity level.
func styleForSeverity(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityError:
		return errorStyle
	case SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// Format renders a diagnostic as a single styled line for terminal output.
func Format(d Diagnostic) string {
	var b strings.Builder
	b.WriteString(styleForSeverity(d.Severity).Render("[" + string(d.Severity) + "]"))
	if d.Source != "" {
		b.WriteString(" " + sourceStyle.Render(d.Source))
	}
	if d.Subject != "" {
		b.WriteString(" " + sourceStyle.Render("("+d.Subject+")"))
	}
	b.WriteString(" " + d.Message)
	if d.Fix != "" {
		b.WriteString(" " + fixStyle.Render("-- fix: "+d.Fix))
	}
	return b.String()
}
