package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Taishi66/folio-tui/internal/domain"
)

var (
	colorPrimary   = lipgloss.Color("#3B82F6")
	colorSecondary = lipgloss.Color("#8B5CF6")
	colorSuccess   = lipgloss.Color("#04B575")
	colorInfo      = lipgloss.Color("#60A5FA")
	colorWarning   = lipgloss.Color("#FFBD2E")
	colorError     = lipgloss.Color("#FF6B6B")
	colorCritical  = lipgloss.Color("#DC2626")
	colorMuted     = lipgloss.Color("#626262")
	colorDevBg     = lipgloss.Color("#CC7700")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	urlStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF")).
			PaddingLeft(1).
			PaddingRight(1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted).
			Underline(true)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true)

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	inlineErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	bannerDevStyle = lipgloss.NewStyle().
			Background(colorDevBg).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 2)

	pageErrorTitleStyle = lipgloss.NewStyle().
				Bold(true).
				PaddingLeft(2).
				PaddingTop(1)

	crashBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorCritical).
			Padding(1, 2)
)

// severityColor maps a severity to its accent colour.
func severityColor(s domain.Severity) lipgloss.Color {
	switch s {
	case domain.SeverityInfo:
		return colorInfo
	case domain.SeverityWarning:
		return colorWarning
	case domain.SeverityCritical:
		return colorCritical
	default:
		return colorError
	}
}

func severityIcon(s domain.Severity) string {
	switch s {
	case domain.SeverityInfo:
		return "ℹ"
	case domain.SeverityWarning:
		return "⚠"
	case domain.SeverityCritical:
		return "✖"
	default:
		return "●"
	}
}

// toastBoxStyle is the bordered box used by error toasts.
func toastBoxStyle(s domain.Severity) lipgloss.Style {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(severityColor(s)).
		Foreground(severityColor(s)).
		Padding(0, 1)
	if s == domain.SeverityCritical {
		st = st.Bold(true).Border(lipgloss.ThickBorder())
	}
	return st
}

func languageStyle(lang string) lipgloss.Style {
	switch lang {
	case "Go":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#00ADD8"))
	case "Rust":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#DEA584"))
	case "TypeScript":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#3178C6"))
	case "JavaScript":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#F1E05A"))
	case "Python":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#3572A5"))
	default:
		return mutedStyle
	}
}
