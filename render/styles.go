// Package render produces the styled terminal report.
package render

import "github.com/charmbracelet/lipgloss"

var (
	// SectionStyle formats the time-segment headers.
	SectionStyle = lipgloss.NewStyle().Bold(true)

	// PremiumHeaderStyle highlights international and business trains.
	PremiumHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12")) // bright blue

	// SeatedTicketStyle highlights the seated fare class.
	SeatedTicketStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10")) // bright green
)

// premiumTypes get the highlighted header treatment.
var premiumTypes = map[string]struct{}{
	"international":     {},
	"regional_business": {},
}

// seatedClassName is the fare class singled out in ticket lines.
const seatedClassName = "Сидячий"
