package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/skiphire/internal/catalog"
	"github.com/csheth/skiphire/internal/wizard"
)

func (m *model) View() string {
	if m.done {
		return ""
	}
	header := m.headerView()
	footer := m.footerView()
	switch m.state.Phase() {
	case wizard.PhaseLoading:
		return joinNonEmpty([]string{header, m.loadingView(), footer})
	case wizard.PhaseError:
		return joinNonEmpty([]string{header, m.errorView(), footer})
	default:
		m.fitViewport(lipgloss.Height(header) + lipgloss.Height(footer) + 2)
		m.refreshViewportIfDirty()
		return joinNonEmpty([]string{header, m.viewport.View(), footer})
	}
}

func (m *model) fitViewport(chromeHeight int) {
	m.layout.Fit(chromeHeight)
	if m.viewport.Height != m.layout.viewportHeight {
		m.viewport.Height = m.layout.viewportHeight
		m.markViewportDirty()
	}
}

func (m *model) headerView() string {
	return joinNonEmpty([]string{m.progressView(), m.heroView()})
}

func (m *model) progressView() string {
	steps := wizard.Steps()
	if m.layout.compactSteps {
		return m.compactProgressView(steps)
	}
	parts := make([]string, 0, 2*len(steps))
	for i, step := range steps {
		if i > 0 {
			link := stepLinkPending
			if steps[i-1].Status == wizard.StepCompleted {
				link = stepLinkDone
			}
			parts = append(parts, link.Render(" ── "))
		}
		parts = append(parts, stepBadge(step))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *model) compactProgressView(steps []wizard.Step) string {
	current := steps[wizard.CurrentStep-1]
	line := lipgloss.JoinHorizontal(
		lipgloss.Center,
		stepActiveStyle.Render(fmt.Sprint(current.Number)),
		" ",
		heroTitleStyle.Render(current.Name),
		helperStyle.Render(fmt.Sprintf("  Step %d of %d", current.Number, len(steps))),
		helperStyle.Render("   t: all steps"),
	)
	if !m.stepsOpen {
		return line
	}
	rows := []string{line}
	for _, step := range steps {
		rows = append(rows, "  "+stepBadge(step))
	}
	return strings.Join(rows, "\n")
}

func stepBadge(step wizard.Step) string {
	switch step.Status {
	case wizard.StepCompleted:
		return stepDoneStyle.Render("✓ " + step.Name)
	case wizard.StepActive:
		return stepActiveStyle.Render(fmt.Sprintf("%d %s", step.Number, step.Name))
	default:
		return stepPendingStyle.Render(fmt.Sprintf("%d %s", step.Number, step.Name))
	}
}

func (m *model) heroView() string {
	title := heroTitleStyle.Render("Choose Your ") + heroAccentStyle.Render("Perfect Skip")
	intro := taglineStyle.Render(wordwrap.String(
		"Select the ideal skip size for your project. All prices include free delivery, collection, and responsible disposal.",
		m.wrapWidth(4),
	))
	text := lipgloss.JoinVertical(lipgloss.Left, badgeStyle.Render(heroTagline), title, intro)
	if m.layout.windowHeight < 36 || m.layout.windowWidth < 80 {
		return text
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, renderLogo(), "  ", text)
}

func (m *model) loadingView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", m.spinner.View(), sectionHeaderStyle.Render("Loading skip options...")),
		helperStyle.Render(fmt.Sprintf("Fetching the catalog from the %s source.", m.config.Source.Name())),
	)
}

func (m *model) errorView() string {
	lines := []string{errorStyle.Bold(true).Render(catalog.UserMessage)}
	if err := m.state.Err(); err != nil {
		lines = append(lines, helperStyle.Render(wordwrap.String(err.Error(), m.wrapWidth(4))))
	}
	lines = append(lines, "", retryButtonStyle.Render("Try Again (r)"))
	return strings.Join(lines, "\n")
}

func (m *model) footerView() string {
	return joinNonEmpty([]string{m.summaryBarView(), m.statusLineView() + "\n" + m.help.View(m.keys)})
}

func (m *model) summaryBarView() string {
	back := backButtonStyle.Render("← Back to " + wizard.PreviousStep().Name)
	next := "Continue to " + wizard.NextStep().Name + " →"
	continueButton := continueOffStyle.Render(next)
	if m.state.CanContinue() {
		continueButton = continueStyle.Render(next)
	}

	parts := []string{back, "  "}
	if option, ok := m.state.Selected(); ok {
		summary := lipgloss.JoinVertical(
			lipgloss.Left,
			helperStyle.Render("Selected Skip"),
			priceStyle.Render(fmt.Sprintf("%s - %s", option.Name, catalog.FormatPrice(m.config.CurrencySymbol, option.Price)))+
				helperStyle.Render(" · "+option.HirePeriod),
		)
		parts = append(parts, summary, "  ")
	}
	parts = append(parts, continueButton)
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *model) statusLineView() string {
	stats := []string{strings.ToUpper(m.state.Phase().String())}
	if m.state.Phase() == wizard.PhaseLoaded {
		stats = append(stats,
			fmt.Sprintf("Page %d/%d", m.state.Page(), m.state.TotalPages()),
			fmt.Sprintf("%d skips", m.state.Len()),
		)
	}
	stats = append(stats, "source "+m.config.Source.Name())
	if badge := m.jobBadge(); badge != "" {
		stats = append(stats, badge)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobBadge() string {
	switch m.lastJob.Status {
	case "":
		return ""
	case jobStatusRunning:
		return fmt.Sprintf("%s running", m.lastJob.Kind)
	default:
		return fmt.Sprintf("%s %s in %s", m.lastJob.Kind, m.lastJob.Status, m.lastJob.Duration.Round(10*time.Millisecond))
	}
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func renderLogo() string {
	return logoStyle.Render(strings.Join(logoArtLines, "\n"))
}
