package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))
	warningStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))

	brandColor     = lipgloss.Color("#3b82f6")
	brandDeepColor = lipgloss.Color("#1d4ed8")
	inkColor       = lipgloss.Color("#0f0f0f")
	paperColor     = lipgloss.Color("#f8fafc")
	mutedColor     = lipgloss.Color("#4b5563")

	heroTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(paperColor)
	heroAccentStyle = lipgloss.NewStyle().Bold(true).Foreground(brandColor)
	taglineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#93c5fd")).Italic(true)
	badgeStyle      = lipgloss.NewStyle().Foreground(brandColor).Border(lipgloss.RoundedBorder()).BorderForeground(brandDeepColor).Padding(0, 1)

	stepDoneStyle    = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Background(brandDeepColor).Padding(0, 1)
	stepActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Background(brandColor).Padding(0, 1).Underline(true)
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Background(lipgloss.Color("#374151")).Padding(0, 1)
	stepLinkDone     = lipgloss.NewStyle().Foreground(brandColor)
	stepLinkPending  = lipgloss.NewStyle().Foreground(mutedColor)

	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
	cardFocusedStyle  = cardStyle.Copy().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("#e5e7eb"))
	cardSelectedStyle = cardStyle.Copy().Border(lipgloss.DoubleBorder()).BorderForeground(brandColor)
	popularBadgeStyle = lipgloss.NewStyle().Bold(true).Foreground(inkColor).Background(lipgloss.Color("#fb923c")).Padding(0, 1)
	priceStyle        = lipgloss.NewStyle().Bold(true).Foreground(paperColor)
	tagStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")).Background(lipgloss.Color("#1f2937")).Padding(0, 1)
	bookButtonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")).Border(lipgloss.NormalBorder()).BorderForeground(mutedColor).Padding(0, 1)
	selectedButton    = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Background(brandDeepColor).Padding(0, 1)

	pageCurrentStyle  = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Background(brandDeepColor).Padding(0, 1)
	pageStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")).Padding(0, 1)
	pageDisabledStyle = lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)

	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(brandDeepColor).Padding(1, 2)
	warningPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#d97706")).Padding(1, 2)

	statusBarStyle   = lipgloss.NewStyle().Foreground(inkColor).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	continueStyle    = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Background(brandColor).Padding(0, 2)
	continueOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Background(lipgloss.Color("#1f2937")).Padding(0, 2)
	backButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")).Border(lipgloss.NormalBorder()).BorderForeground(mutedColor).Padding(0, 1)
	retryButtonStyle = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Background(brandColor).Padding(0, 2)

	// Right and bottom edges in the deep brand colour read as a drop shadow.
	logoStyle    = lipgloss.NewStyle().Bold(true).Foreground(paperColor).Border(lipgloss.ThickBorder(), false, true, true, false).BorderForeground(brandDeepColor).Padding(0, 1)
	logoArtLines = []string{
		"███████╗ ██╗  ██╗ ██╗ ██████╗ ",
		"██╔════╝ ██║ ██╔╝ ██║ ██╔══██╗",
		"███████╗ █████╔╝  ██║ ██████╔╝",
		"╚════██║ ██╔═██╗  ██║ ██╔═══╝ ",
		"███████║ ██║  ██╗ ██║ ██║     ",
		"╚══════╝ ╚═╝  ╚═╝ ╚═╝ ╚═╝     ",
	}
)

// Tailwind 400 shades for the leading colour of a card gradient.
var gradientColors = map[string]lipgloss.Color{
	"emerald": lipgloss.Color("#34d399"),
	"orange":  lipgloss.Color("#fb923c"),
	"purple":  lipgloss.Color("#c084fc"),
	"rose":    lipgloss.Color("#fb7185"),
	"blue":    lipgloss.Color("#60a5fa"),
	"red":     lipgloss.Color("#f87171"),
	"green":   lipgloss.Color("#4ade80"),
	"slate":   lipgloss.Color("#94a3b8"),
	"teal":    lipgloss.Color("#2dd4bf"),
	"amber":   lipgloss.Color("#fbbf24"),
	"pink":    lipgloss.Color("#f472b6"),
	"sky":     lipgloss.Color("#38bdf8"),
	"cyan":    lipgloss.Color("#22d3ee"),
	"violet":  lipgloss.Color("#a78bfa"),
	"indigo":  lipgloss.Color("#818cf8"),
	"yellow":  lipgloss.Color("#facc15"),
	"gray":    lipgloss.Color("#9ca3af"),
}

// accentColor picks the card accent from a "from-<colour>-<shade> ..." hint.
func accentColor(gradient string) lipgloss.Color {
	for _, field := range strings.Fields(gradient) {
		if !strings.HasPrefix(field, "from-") {
			continue
		}
		name := strings.TrimPrefix(field, "from-")
		if idx := strings.LastIndex(name, "-"); idx > 0 {
			name = name[:idx]
		}
		if color, ok := gradientColors[name]; ok {
			return color
		}
	}
	return brandColor
}
