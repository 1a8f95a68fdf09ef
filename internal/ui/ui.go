package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/DaanHessen/survey-demo-tui/internal/sdk"
	"github.com/DaanHessen/survey-demo-tui/internal/text"
)

const (
	appTitle    = "Formbricks In-product Survey Demo App"
	appSubtitle = "This app helps you test your in-app surveys. You can create and test user actions, create and update user attributes, etc."

	defaultWidth   = 100
	stackedBelow   = 90 // narrower terminals get a single column
	widgetLogLines = 8
)

// Options wires the view to its collaborators.
type Options struct {
	EnvironmentID string
	Client        sdk.Client
	Journal       *sdk.Journal       // optional, feeds the Widget Logs panel
	Renderer      *lipgloss.Renderer // nil means lipgloss.DefaultRenderer()
	Host          StyleHost          // nil means the renderer itself
	Theme         string
	Logger        *log.Logger
}

// dispatchedMsg reports that a button's call has been handed to the SDK.
type dispatchedMsg struct{ label string }

type model struct {
	ctx           context.Context
	client        sdk.Client
	journal       *sdk.Journal
	host          StyleHost
	renderer      *lipgloss.Renderer
	logger        *log.Logger
	environmentID string

	darkMode  bool
	themeName string
	styles    styles
	keys      keyMap
	help      help.Model
	spinner   spinner.Model

	focus    int
	status   string
	entries  []sdk.Entry
	helpText []string // rendered markdown per action

	width  int
	height int
}

func newModel(ctx context.Context, opts Options) model {
	if ctx == nil {
		ctx = context.Background()
	}
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	host := opts.Host
	if host == nil {
		host = rendererHost{r: r}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	themeName := opts.Theme
	if _, ok := palettes[themeName]; !ok {
		themeName = defaultTheme
	}
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: []string{"●", "◉", "○", "◉"}, FPS: spinner.Pulse.FPS}

	m := model{
		ctx:           ctx,
		client:        opts.Client,
		journal:       opts.Journal,
		host:          host,
		renderer:      r,
		logger:        logger,
		environmentID: opts.EnvironmentID,
		themeName:     themeName,
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
	}
	m.restyle()
	// The host starts out light, the same as on mount.
	m.host.SetDarkMode(m.darkMode)
	m.renderHelpText()
	return m
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return m.spinner.Tick }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.renderHelpText()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case dispatchedMsg:
		m.status = "sent: " + msg.label
		m.entries = m.journal.Entries()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggleDarkMode()
		case key.Matches(msg, m.keys.Palette):
			m.themeName = nextThemeName(m.themeName, 1)
			m.restyle()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.focus = (m.focus - 1 + len(actions)) % len(actions)
		case key.Matches(msg, m.keys.Down):
			m.focus = (m.focus + 1) % len(actions)
		case key.Matches(msg, m.keys.Press):
			return m.press(m.focus)
		case key.Matches(msg, m.keys.Shortcut):
			return m.press(int(msg.String()[0] - '1'))
		}
	}
	return m, nil
}

// toggleDarkMode inverts the view state and tells the host.
func (m *model) toggleDarkMode() {
	m.darkMode = !m.darkMode
	m.host.SetDarkMode(m.darkMode)
	m.renderHelpText()
	m.logger.Debug("dark mode toggled", "on", m.darkMode)
}

// press hands one call to the SDK. The result is the SDK's business: the
// command reports the dispatch whatever the call returned.
func (m model) press(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(actions) || m.client == nil {
		return m, nil
	}
	a := actions[i]
	m.focus = i
	m.status = "sending: " + a.label
	ctx, client := m.ctx, m.client
	return m, func() tea.Msg {
		_ = a.dispatch(ctx, client)
		return dispatchedMsg{label: a.label}
	}
}

func (m *model) restyle() {
	m.styles = newStyles(m.renderer, paletteFor(m.themeName))
}

func (m model) layoutWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m model) columnWidth() int {
	w := m.layoutWidth() - 4
	if w >= stackedBelow {
		w = w/2 - 1
	}
	// never cut the environment id
	if minW := lipgloss.Width(m.environmentID) + 8; w < minW {
		w = minW
	}
	return w
}

func (m *model) renderHelpText() {
	style := text.StyleLight
	if m.darkMode {
		style = text.StyleDark
	}
	var md text.Renderer
	if r, err := text.NewMarkdown(style, m.columnWidth()-4); err == nil {
		md = r
	}
	renderer := text.WithFallback(md, text.NewPlain())
	out := make([]string, len(actions))
	for i, a := range actions {
		s, err := renderer.Render(a.help)
		if err != nil {
			s = a.help
		}
		out[i] = s
	}
	m.helpText = out
}

// Layout rendering -----------------------------------------------------------
func (m model) View() string {
	colW := m.columnWidth()
	left := lipgloss.JoinVertical(lipgloss.Left, m.renderSetup(colW), m.renderWidgetLogs(colW))
	right := m.renderActions(colW)
	var body string
	if m.layoutWidth()-4 >= stackedBelow {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return m.styles.page.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), "", body, "", m.renderFooter()))
}

func (m model) renderHeader() string {
	mode := "off"
	if m.darkMode {
		mode = "on"
	}
	toggle := m.styles.toggle.Render(fmt.Sprintf("Toggle Dark Mode [d] (%s)", mode))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(appTitle),
		m.styles.subtitle.Render(appSubtitle),
		"",
		toggle,
	)
}

func (m model) renderSetup(w int) string {
	var b strings.Builder
	b.WriteString(m.styles.panelTitle.Render("1. Setup .env") + "\n")
	b.WriteString(m.styles.body.Render("Copy the environment ID of your Formbricks app to FORMBRICKS_ENVIRONMENT_ID in .env") + "\n\n")
	b.WriteString(m.styles.body.Render("You're connected with env:") + "\n")
	b.WriteString(m.styles.env.Render(m.environmentID) + " " + m.styles.indicator.Render(m.spinner.View()))
	return m.styles.panel.Width(w).Render(b.String())
}

func (m model) renderWidgetLogs(w int) string {
	var b strings.Builder
	b.WriteString(m.styles.panelTitle.Render("2. Widget Logs") + "\n")
	b.WriteString(m.styles.body.Render("Look at the logs to understand how the widget works.") + "\n\n")
	entries := m.entries
	if len(entries) > widgetLogLines {
		entries = entries[len(entries)-widgetLogLines:]
	}
	if len(entries) == 0 {
		b.WriteString(m.styles.note.Render("(no calls yet)"))
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.note.Render(e.Time.Format("15:04:05") + " " + e.String()))
	}
	return m.styles.panel.Width(w).Render(b.String())
}

func (m model) renderActions(w int) string {
	var b strings.Builder
	b.WriteString(m.styles.panelTitle.Render("Reset person / pull data from Formbricks app") + "\n\n")
	for i, a := range actions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		style := m.styles.button
		cursor := "  "
		if i == m.focus {
			style = m.styles.focused
			cursor = "▸ "
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("[%d] %s", i+1, a.label)) + "\n")
		if i < len(m.helpText) {
			b.WriteString(m.helpText[i])
		}
	}
	return m.styles.panel.Width(w).Render(b.String())
}

func (m model) renderFooter() string {
	status := m.status
	if status == "" {
		status = "ready"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.status.Render(status), m.help.View(m.keys))
}
