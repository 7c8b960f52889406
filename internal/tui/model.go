package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/csheth/skiphire/internal/catalog"
	"github.com/csheth/skiphire/internal/metrics"
	"github.com/csheth/skiphire/internal/wizard"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Source         catalog.Source
	PageSize       int
	CurrencySymbol string
	// FetchTimeout bounds each catalog fetch; zero leaves it unbounded.
	FetchTimeout  time.Duration
	SessionID     string
	Logger        *zerolog.Logger
	CatalogLogger *zerolog.Logger // defaults to Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Source == nil {
		config.Source = catalog.NewMockSource(catalog.DefaultMockDelay, 0)
	}
	if config.CurrencySymbol == "" {
		config.CurrencySymbol = "£"
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}
	catalogLogger := logger
	if config.CatalogLogger != nil {
		catalogLogger = *config.CatalogLogger
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(brandColor)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = 1
	pager.ActiveDot = lipgloss.NewStyle().Foreground(brandColor).Render("•")
	pager.InactiveDot = lipgloss.NewStyle().Foreground(mutedColor).Render("◦")

	layout := newPageLayout()
	vp := viewport.New(layout.viewportWidth, layout.viewportHeight)
	vp.MouseWheelEnabled = true

	state, effects := wizard.Start(config.PageSize)
	m := &model{
		config:         config,
		logger:         logger,
		catalogLogger:  catalogLogger,
		state:          state,
		jobs:           newJobBus(logger),
		keys:           newKeyMap(),
		help:           help.New(),
		spinner:        spin,
		viewport:       vp,
		pager:          pager,
		layout:         layout,
		viewportDirty:  true,
		pendingEffects: effects,
		result:         Result{Action: wizard.ActionQuit, SessionID: config.SessionID},
	}
	m.syncKeys()
	return m
}

type model struct {
	config        Config
	logger        zerolog.Logger
	catalogLogger zerolog.Logger
	state         wizard.State
	jobs          *jobBus

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	pager    paginator.Model
	layout   pageLayout

	// focus is the card cursor within the visible page. It is independent of
	// the selection.
	focus          int
	followFocus    bool
	stepsOpen      bool
	cardSpans      map[int]lineSpan
	viewportDirty  bool
	pendingEffects []wizard.Effect
	lastJob        jobSnapshot
	result         Result
	done           bool
}

func (m *model) Init() tea.Cmd {
	effects := m.pendingEffects
	m.pendingEffects = nil
	return m.runEffects(effects)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state.Phase() != wizard.PhaseLoading || m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case jobSignalMsg:
		m.lastJob = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJob = msg.Snapshot
		if m.done || msg.Snapshot.Status == jobStatusCancelled {
			return m, nil
		}
		if result, ok := msg.Payload.(catalogResultMsg); ok {
			return m, m.applyCatalogResult(result)
		}
		return m, nil
	case catalogResultMsg:
		if m.done {
			return m, nil
		}
		return m, m.applyCatalogResult(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		if !m.layout.compactSteps {
			m.stepsOpen = false
		}
		m.help.Width = msg.Width
		m.viewport.Width = m.layout.viewportWidth
		m.syncKeys()
		m.markViewportDirty()
		return m, nil
	case tea.MouseMsg:
		if m.state.Phase() != wizard.PhaseLoaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) applyCatalogResult(msg catalogResultMsg) tea.Cmd {
	if msg.err != nil {
		return m.dispatch(wizard.CatalogFailed{Gen: msg.gen, Err: msg.err})
	}
	return m.dispatch(wizard.CatalogLoaded{Gen: msg.gen, Options: msg.options})
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.finish(wizard.HandOff{Action: wizard.ActionQuit, Option: m.selectedOption()})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.ToggleSteps):
		m.stepsOpen = !m.stepsOpen
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, m.dispatch(wizard.Back{})
	case key.Matches(msg, m.keys.Retry):
		return m, m.dispatch(wizard.Retry{})
	}

	if m.state.Phase() != wizard.PhaseLoaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-m.layout.columns)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(m.layout.columns)
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Select):
		return m, m.selectFocused()
	case key.Matches(msg, m.keys.NextPage):
		return m, m.dispatch(wizard.NextPage{})
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.dispatch(wizard.PrevPage{})
	case key.Matches(msg, m.keys.GoToPage):
		return m, m.dispatch(wizard.GoToPage{Page: int(msg.String()[0] - '0')})
	case key.Matches(msg, m.keys.Continue):
		return m, m.dispatch(wizard.Continue{})
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
	}
	return m, nil
}

func (m *model) selectFocused() tea.Cmd {
	visible := m.state.Visible()
	if m.focus < 0 || m.focus >= len(visible) {
		return nil
	}
	before, _ := m.state.SelectedID()
	cmd := m.dispatch(wizard.SelectItem{ID: visible[m.focus].ID})
	if after, _ := m.state.SelectedID(); after != before {
		metrics.Selections.Inc()
		m.logger.Debug().Str("skip", after).Msg("skip selected")
	}
	return cmd
}

func (m *model) moveFocus(delta int) {
	count := len(m.state.Visible())
	if count == 0 {
		return
	}
	target := m.focus + delta
	if target < 0 {
		target = 0
	}
	if target >= count {
		target = count - 1
	}
	if target == m.focus {
		return
	}
	m.focus = target
	m.followFocus = true
	m.markViewportDirty()
}

// dispatch feeds intent through the reducer and performs the resulting
// effects.
func (m *model) dispatch(intent wizard.Intent) tea.Cmd {
	var effects []wizard.Effect
	m.state, effects = wizard.Reduce(m.state, intent)
	if count := len(m.state.Visible()); m.focus >= count {
		m.focus = 0
	}
	m.syncKeys()
	m.markViewportDirty()
	return m.runEffects(effects)
}

func (m *model) runEffects(effects []wizard.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case wizard.FetchCatalog:
			m.logger.Info().Int("generation", e.Gen).Str("source", m.config.Source.Name()).Msg("fetching catalog")
			cmds = append(cmds, m.jobs.Start(jobKindFetch, m.fetchJob(e.Gen)), m.spinner.Tick)
		case wizard.ScrollTop:
			metrics.PageChanges.Inc()
			m.focus = 0
			m.followFocus = false
			m.viewport.GotoTop()
		case wizard.HandOff:
			cmds = append(cmds, m.finish(e))
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m *model) fetchJob(gen int) jobRunner {
	return fetchCatalogJob(m.config.Source, gen, m.config.FetchTimeout, m.catalogLogger)
}

// finish records how the step ended, cancels outstanding jobs and quits.
func (m *model) finish(handOff wizard.HandOff) tea.Cmd {
	m.done = true
	m.result = Result{Action: handOff.Action, Selected: handOff.Option, SessionID: m.config.SessionID}
	m.jobs.Close()
	metrics.HandOffs.WithLabelValues(string(handOff.Action)).Inc()
	event := m.logger.Info().Str("action", string(handOff.Action))
	if handOff.Option != nil {
		event = event.Str("skip", handOff.Option.ID)
	}
	event.Msg("leaving skip selection")
	return tea.Quit
}

func (m *model) selectedOption() *catalog.SkipOption {
	option, ok := m.state.Selected()
	if !ok {
		return nil
	}
	return &option
}

func (m *model) syncKeys() {
	loaded := m.state.Phase() == wizard.PhaseLoaded
	multiPage := loaded && m.state.TotalPages() > 1
	for _, binding := range []*key.Binding{&m.keys.Up, &m.keys.Down, &m.keys.Left, &m.keys.Right, &m.keys.Select, &m.keys.ScrollUp, &m.keys.ScrollDown} {
		binding.SetEnabled(loaded)
	}
	m.keys.NextPage.SetEnabled(multiPage)
	m.keys.PrevPage.SetEnabled(multiPage)
	m.keys.GoToPage.SetEnabled(multiPage)
	m.keys.Continue.SetEnabled(m.state.CanContinue())
	m.keys.Retry.SetEnabled(m.state.Phase() == wizard.PhaseError)
	m.keys.ToggleSteps.SetEnabled(m.layout.compactSteps)
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

func (m *model) refreshViewport() {
	m.viewportDirty = false
	if m.state.Phase() != wizard.PhaseLoaded {
		m.cardSpans = map[int]lineSpan{}
		m.viewport.SetContent("")
		return
	}
	prevYOffset := m.viewport.YOffset
	view := m.buildCatalogContent()
	m.cardSpans = view.cardSpans
	m.viewport.SetContent(view.content)
	m.viewport.SetYOffset(prevYOffset)
	if m.followFocus {
		m.ensureFocusVisible()
		m.followFocus = false
	}
}

func (m *model) ensureFocusVisible() {
	span, ok := m.cardSpans[m.focus]
	if !ok {
		return
	}
	if span.start < m.viewport.YOffset {
		m.viewport.SetYOffset(span.start)
		return
	}
	lowerBound := m.viewport.YOffset + m.viewport.Height
	if span.end > lowerBound {
		target := span.end - m.viewport.Height
		if target > span.start {
			target = span.start
		}
		m.viewport.SetYOffset(target)
	}
}
