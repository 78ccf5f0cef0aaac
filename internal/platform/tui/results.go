package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cuprace/internal/storage"
)

// Results layout constants
const (
	maxResults     = 100 // Max results to load
	resultsChrome  = 9   // Rows taken by title, totals, help and margins
	minTableHeight = 3
)

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the results screen.
type ResultsModel struct {
	store    *storage.Store
	results  []storage.Result
	counts   storage.WinCounts
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ResultsKeyMap
	width    int
	height   int
	quitting bool
}

// NewResultsModel creates a results model and loads the stored games.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	m := ResultsModel{
		store:  store,
		keys:   DefaultResultsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Winner", Width: 12},
		{Title: "Players", Width: 22},
		{Title: "Cups", Width: 7},
		{Title: "Races", Width: 6},
		{Title: "Turns", Width: 6},
		{Title: "End", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(minTableHeight, m.height-resultsChrome)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads recent results and win counts from the store.
func (m *ResultsModel) load() {
	m.results, m.counts, m.loadErr = nil, storage.WinCounts{}, nil
	if m.store != nil {
		m.results, m.loadErr = m.store.RecentResults(maxResults)
		if m.loadErr == nil {
			m.counts, m.loadErr = m.store.WinCounts()
		}
	}
	m.table.SetRows(resultRows(m.results))
	m.table.GotoTop()
}

// resultRows formats results as table rows.
func resultRows(results []storage.Result) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.WinnerName(),
			fmt.Sprintf("%s v %s", r.Names[0], r.Names[1]),
			fmt.Sprintf("%d-%d", len(r.Cups[0]), len(r.Cups[1])),
			fmt.Sprintf("%d", r.Races),
			fmt.Sprintf("%d", r.Turns),
			r.EndReason,
		}
	}
	return rows
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(resultRows(m.results))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RESULTS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.totals(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// totals summarises wins per seat.
func (m ResultsModel) totals() string {
	c := m.counts
	return fmt.Sprintf("%d games  left %d  right %d  draws %d", c.Games, c.Left, c.Right, c.Draws)
}

// renderTableContent renders the table or an empty message.
func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load results: %v", m.loadErr))
	case len(m.results) == 0:
		return emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunResults runs the results screen.
func RunResults(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewResultsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
