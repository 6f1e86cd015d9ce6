package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const (
	minWidthForDetails = 90 // below this the run details panel is hidden
	detailsWidth       = 26
	maxScores          = 100
)

// RunFilter narrows the scoreboard to one kind of attempt.
type RunFilter int

const (
	FilterAll RunFilter = iota
	FilterCleared
	FilterFailed
)

func (f RunFilter) String() string {
	switch f {
	case FilterCleared:
		return "cleared"
	case FilterFailed:
		return "failed"
	}
	return "all runs"
}

func (f RunFilter) keep(e storage.ScoreEntry) bool {
	switch f {
	case FilterCleared:
		return e.Won()
	case FilterFailed:
		return !e.Won()
	}
	return true
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Filter   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Filter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Filter, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the saved runs of one game at a time.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	filter      RunFilter
	runs        []storage.ScoreEntry // loaded runs, best first
	shown       []storage.ScoreEntry // runs passing the filter
	stats       *storage.GameStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showDetails bool
}

// NewScoreboardModel creates a scoreboard for every registered game.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showDetails: width >= minWidthForDetails,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 14},
		{Title: "Result", Width: 9},
		{Title: "Time", Width: 7},
	}

	tableWidth := m.width - 4
	if m.showDetails {
		tableWidth -= detailsWidth + 4
	}
	fixed := 0
	for i, c := range columns {
		if i != 2 {
			fixed += c.Width + 2
		}
	}
	if spare := tableWidth - fixed - 2; spare > columns[2].Width {
		columns[2].Width = min(spare, 28)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches runs and stats of the selected game.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameCursor].ID
		if runs, err := m.store.TopScores(id, maxScores); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.applyFilter()
}

func (m *ScoreboardModel) applyFilter() {
	m.shown = nil
	for _, e := range m.runs {
		if m.filter.keep(e) {
			m.shown = append(m.shown, e)
		}
	}
	rows := make([]table.Row, len(m.shown))
	for i, e := range m.shown {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			e.Level,
			outcomeLabel(e.Outcome),
			fmt.Sprintf("%.1fs", e.Elapsed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) moveGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.moveGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.moveGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % 3
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetails = m.width >= minWidthForDetails
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.tabLine()))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := boxStyle.Render(m.renderTableContent())
	if m.showDetails {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ",
			boxStyle.Width(detailsWidth).Render(m.details()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabLine lists the games with the selected one highlighted.
func (m ScoreboardModel) tabLine() string {
	if len(m.games) == 0 {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	tabs := make([]string, len(m.games))
	plain := 0
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = active.Render(g.Title)
		} else {
			tabs[i] = idle.Render(g.Title)
		}
		plain += len(g.Title) + 3
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.shown) == 0 {
		msg := "No runs recorded yet.\nFinish a level to set a high score!"
		if len(m.runs) > 0 {
			msg = fmt.Sprintf("No %s runs yet.\nPress f to change the filter.", m.filter)
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render(msg)
	}
	return m.table.View()
}

// details describes the highlighted run.
func (m ScoreboardModel) details() string {
	e, ok := m.Selected()
	if !ok {
		return "Run\n-"
	}
	return fmt.Sprintf("Run #%d\n\n%s\n%d points\n%s\n%.1fs played\n%s",
		m.table.Cursor()+1, e.Level, e.Score, outcomeText(e.Outcome), e.Elapsed,
		e.CreatedAt.Format("Jan 02 2006 15:04"))
}

// Selected returns the highlighted run, if any.
func (m ScoreboardModel) Selected() (storage.ScoreEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.shown) {
		return storage.ScoreEntry{}, false
	}
	return m.shown[i], true
}

// Filter returns the active run filter.
func (m ScoreboardModel) Filter() RunFilter {
	return m.filter
}

// statsLine summarizes the selected game's history.
func (m ScoreboardModel) statsLine() string {
	label := "showing " + m.filter.String()
	if m.stats == nil || m.stats.GamesCount == 0 {
		return label
	}
	return fmt.Sprintf("runs %d  cleared %d  best %d  avg %.0f  (%s)",
		m.stats.GamesCount, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore, label)
}

// outcomeLabel turns a stored outcome into a table cell.
func outcomeLabel(outcome string) string {
	switch outcome {
	case "complete":
		return "cleared"
	case "":
		return "-"
	}
	return outcome
}

func outcomeText(outcome string) string {
	switch outcome {
	case "complete":
		return "level cleared"
	case "health":
		return "out of health"
	case "timeout":
		return "ran out of time"
	case "fell":
		return "fell off the map"
	}
	return outcomeLabel(outcome)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
