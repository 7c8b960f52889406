package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/skiphire/internal/catalog"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	columns        int
	cardWidth      int
	compactSteps   bool
}

func newPageLayout() pageLayout {
	var l pageLayout
	l.Update(defaultWindowWidth, defaultWindowHeight)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.compactSteps = width < compactStepsWidth
	l.columns = columnsFor(innerWidth)
	l.cardWidth = (innerWidth - (l.columns-1)*cardGap) / l.columns
	l.Fit(0)
}

// Fit sizes the scrollable body to whatever the fixed chrome leaves over.
func (l *pageLayout) Fit(chromeHeight int) {
	height := l.windowHeight - chromeHeight
	if height < minViewportHeight {
		height = minViewportHeight
	}
	l.viewportHeight = height
}

func columnsFor(width int) int {
	columns := (width + cardGap) / (minCardWidth + cardGap)
	if columns < 1 {
		return 1
	}
	if columns > 3 {
		return 3
	}
	return columns
}

type lineSpan struct {
	start int
	end   int
}

type displayView struct {
	content   string
	cardSpans map[int]lineSpan
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func (m *model) buildCatalogContent() displayView {
	cb := &contentBuilder{}
	spans := map[int]lineSpan{}
	visible := m.state.Visible()
	selectedID, _ := m.state.SelectedID()

	if len(visible) == 0 {
		cb.WriteString(helperStyle.Render("No skip options are available right now."))
		cb.WriteRune('\n')
		cb.WriteRune('\n')
	}

	columns := m.layout.columns
	for rowStart := 0; rowStart < len(visible); rowStart += columns {
		rowEnd := rowStart + columns
		if rowEnd > len(visible) {
			rowEnd = len(visible)
		}
		cards := make([]string, 0, 2*columns)
		for i := rowStart; i < rowEnd; i++ {
			if i > rowStart {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.renderCard(visible[i], i == m.focus, visible[i].ID == selectedID))
		}
		start := cb.Line()
		cb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		cb.WriteRune('\n')
		for i := rowStart; i < rowEnd; i++ {
			spans[i] = lineSpan{start: start, end: cb.Line()}
		}
		cb.WriteRune('\n')
	}

	if bar := m.paginationView(); bar != "" {
		cb.WriteString(bar)
		cb.WriteRune('\n')
		cb.WriteRune('\n')
	}
	cb.WriteString(m.includedPanel())
	cb.WriteRune('\n')
	cb.WriteString(m.roadPlacementPanel())
	cb.WriteRune('\n')

	return displayView{content: cb.String(), cardSpans: spans}
}

func (m *model) renderCard(option catalog.SkipOption, focused, selected bool) string {
	inner := m.layout.cardWidth - 4
	if inner < 10 {
		inner = 10
	}
	accent := accentColor(option.Gradient)

	lines := []string{}
	if option.Popular {
		lines = append(lines, popularBadgeStyle.Render("★ Most Popular"))
	}
	lines = append(lines,
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render(truncate.StringWithTail(option.Name, uint(inner), "…")),
		helperStyle.Render(option.Size),
		wordwrap.String(option.Description, inner),
		"",
		helperStyle.Render("Capacity: ")+truncate.StringWithTail(option.Capacity, uint(inner-10), "…"),
		helperStyle.Render("Duration: ")+option.HirePeriod,
	)
	if option.RoadPlacementAllowed() {
		lines = append(lines, successStyle.Render("✓ Road placement allowed"))
	} else {
		lines = append(lines, errorStyle.Render("✗ Not allowed on the road"))
	}
	if tags := wrapTags(option.Suitable, inner); tags != "" {
		lines = append(lines, tags)
	}
	lines = append(lines, "")

	price := priceStyle.Render(catalog.FormatPrice(m.config.CurrencySymbol, option.Price)) + helperStyle.Render(" inc. VAT")
	button := bookButtonStyle.Render("Book Size")
	if selected {
		button = selectedButton.Render("✓ Selected")
	}
	lines = append(lines, price, button)

	style := cardStyle
	switch {
	case focused && selected:
		style = cardFocusedStyle.Copy().BorderForeground(brandColor)
	case focused:
		style = cardFocusedStyle
	case selected:
		style = cardSelectedStyle
	}
	return style.Width(m.layout.cardWidth - 2).Render(strings.Join(lines, "\n"))
}

func wrapTags(tags []string, width int) string {
	var rows []string
	var current []string
	currentWidth := 0
	for _, tag := range tags {
		rendered := tagStyle.Render(truncate.StringWithTail(tag, uint(width-2), "…"))
		w := lipgloss.Width(rendered)
		if len(current) > 0 && currentWidth+1+w > width {
			rows = append(rows, strings.Join(current, " "))
			current = nil
			currentWidth = 0
		}
		if len(current) > 0 {
			currentWidth++
		}
		current = append(current, rendered)
		currentWidth += w
	}
	if len(current) > 0 {
		rows = append(rows, strings.Join(current, " "))
	}
	return strings.Join(rows, "\n")
}

func (m *model) paginationView() string {
	total := m.state.TotalPages()
	if total <= 1 {
		return ""
	}
	page := m.state.Page()
	start, end := m.state.Window()
	summary := helperStyle.Render(fmt.Sprintf("Showing %d-%d of %d skip options", start+1, end, m.state.Len()))

	controls := []string{}
	if page > 1 {
		controls = append(controls, pageStyle.Render("‹ Previous"))
	} else {
		controls = append(controls, pageDisabledStyle.Render("‹ Previous"))
	}
	for n := 1; n <= total; n++ {
		if n == page {
			controls = append(controls, pageCurrentStyle.Render(fmt.Sprint(n)))
		} else {
			controls = append(controls, pageStyle.Render(fmt.Sprint(n)))
		}
	}
	if page < total {
		controls = append(controls, pageStyle.Render("Next ›"))
	} else {
		controls = append(controls, pageDisabledStyle.Render("Next ›"))
	}

	m.pager.TotalPages = total
	m.pager.Page = page - 1
	return lipgloss.JoinVertical(
		lipgloss.Left,
		summary,
		lipgloss.JoinHorizontal(lipgloss.Top, controls...),
		"  "+m.pager.View(),
	)
}

func (m *model) includedPanel() string {
	half := (len(includedItems) + 1) / 2
	left := checkList(includedItems[:half], successStyle.Render("✓"))
	right := checkList(includedItems[half:], successStyle.Render("✓"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	if m.layout.viewportWidth < 70 {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return panelStyle.Width(m.layout.viewportWidth - 2).Render(joinNonEmpty([]string{
		sectionHeaderStyle.Render("What's Included in Every Skip Hire"),
		body,
	}))
}

func (m *model) roadPlacementPanel() string {
	restrictions := lipgloss.JoinVertical(lipgloss.Left,
		warningStyle.Render("Restrictions Apply:"),
		checkList(roadRestrictions, errorStyle.Render("✗")),
	)
	alternatives := lipgloss.JoinVertical(lipgloss.Left,
		warningStyle.Render("Alternative Options:"),
		checkList(roadAlternatives, successStyle.Render("✓")),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, restrictions, "    ", alternatives)
	if m.layout.viewportWidth < 70 {
		columns = lipgloss.JoinVertical(lipgloss.Left, restrictions, "", alternatives)
	}
	note := lipgloss.JoinVertical(lipgloss.Left,
		warningStyle.Render("Need Road Placement?"),
		helperStyle.Render(wordwrap.String(permitNote, m.wrapWidth(8))),
	)
	return warningPanelStyle.Width(m.layout.viewportWidth - 2).Render(joinNonEmpty([]string{
		warningStyle.Bold(true).Render("Important: Road Placement Guidelines"),
		columns,
		note,
	}))
}

func checkList(items []string, mark string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = mark + " " + item
	}
	return strings.Join(lines, "\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
