package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/ciboard/pkg/summary"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the status icon set for a theme.
type ThemeIcons struct {
	Pass     string
	PassDocs string
	Fail     string
	Warn     string
	Unknown  string
	Bullet   string
}

// ThemeNames lists the built-in themes.
var ThemeNames = []string{"default", "orca", "mono"}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Pass:     "✓",
			PassDocs: "✦",
			Fail:     "✗",
			Warn:     "⚠",
			Unknown:  "?",
			Bullet:   "·",
		},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")), // sage green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("179")), // muted gold
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")), // muted red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // lighter gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Pass:     "✓",
			PassDocs: "✓",
			Fail:     "✗",
			Warn:     "!",
			Unknown:  "?",
			Bullet:   "·",
		},
	}
}

// MonoTheme returns a monochrome, ASCII-only theme.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Primary: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Pass:     "+",
			PassDocs: "*",
			Fail:     "x",
			Warn:     "!",
			Unknown:  "?",
			Bullet:   "-",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// StatusIcon returns the icon and style for a project status.
func (th Theme) StatusIcon(s summary.Status) (string, lipgloss.Style) {
	switch s {
	case summary.StatusFailing:
		return th.Icons.Fail, th.Error
	case summary.StatusIncomplete:
		return th.Icons.Warn, th.Warning
	case summary.StatusPassWithDocs:
		return th.Icons.PassDocs, th.Success
	case summary.StatusPass:
		return th.Icons.Pass, th.Success
	default:
		return th.Icons.Unknown, th.Primary
	}
}
