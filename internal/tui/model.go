// Package tui renders the audit panel as a bubbletea program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/lzjever/project-audit/internal/core"
	"github.com/lzjever/project-audit/internal/panel"
)

const (
	heading         = "Project User Audit Data"
	labelRefresh    = "Refresh User Data"
	labelRefreshing = "Refreshing..."
	labelNoContext  = "Loading project data..."
)

// Styles
var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0052CC")).
			PaddingLeft(1).
			PaddingRight(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0065FF")).
			PaddingLeft(1).
			PaddingRight(1)

	buttonDisabledStyle = buttonStyle.
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("237"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var columnWidths = []int{28, 30, 22, 12, 12}

type contextResolvedMsg struct {
	projectID string
}

type fetchCompletedMsg struct {
	token uint64
	users []core.AuditRecord
}

// Model is the presenter. Outbound calls run as commands and report back
// through messages, so the state only changes inside Update.
type Model struct {
	ctx      context.Context
	resolver panel.ContextResolver
	data     panel.DataSource
	log      *zap.Logger

	state panel.State
	sort  panel.Sort
	rows  []panel.Row

	table   table.Model
	pager   paginator.Model
	spinner spinner.Model
	keys    keyMap
}

func New(ctx context.Context, resolver panel.ContextResolver, data panel.DataSource, log *zap.Logger) Model {
	t := table.New(
		table.WithColumns(columns(panel.Sort{})),
		table.WithFocused(true),
		table.WithHeight(panel.RowsPerPage),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = panel.RowsPerPage
	p.Page = panel.DefaultPage - 1
	p.KeyMap = pageKeys()

	sp := spinner.New()
	sp.Spinner = spinner.Globe

	return Model{
		ctx:      ctx,
		resolver: resolver,
		data:     data,
		log:      log,
		state:    panel.NewState(),
		table:    t,
		pager:    p,
		spinner:  sp,
		keys:     defaultKeyMap(),
	}
}

// State exposes the presenter state, mainly for tests.
func (m Model) State() panel.State { return m.state }

// Rows returns all rows in display order, across pages.
func (m Model) Rows() []panel.Row { return m.rows }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.resolveContext(), m.spinner.Tick)
}

func (m Model) resolveContext() tea.Cmd {
	ctx, resolver, log := m.ctx, m.resolver, m.log
	return func() tea.Msg {
		id, err := resolver.ResolveProjectID(ctx)
		if err != nil {
			log.Error("Error fetching project context", zap.Error(err))
			return contextResolvedMsg{}
		}
		return contextResolvedMsg{projectID: id}
	}
}

// fetchData is a no-op while the project is unresolved. Otherwise it starts
// a fetch whose failures degrade to an empty user list.
func (m Model) fetchData() (Model, tea.Cmd) {
	if !m.state.Resolved() {
		return m, nil
	}
	var token uint64
	m.state, token = m.state.FetchStarted()

	ctx, data, log, projectID := m.ctx, m.data, m.log, m.state.ProjectID
	return m, func() tea.Msg {
		users, err := data.FetchUsers(ctx, projectID)
		if err != nil {
			log.Error("Error fetching user data", zap.String("project_id", projectID), zap.Error(err))
			users = nil
		}
		return fetchCompletedMsg{token: token, users: users}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contextResolvedMsg:
		wasResolved := m.state.Resolved()
		m.state = m.state.ContextResolved(msg.projectID)
		if !wasResolved && m.state.Resolved() {
			return m.fetchData()
		}
		return m, nil

	case fetchCompletedMsg:
		m.state = m.state.FetchCompleted(msg.token, msg.users)
		m.refreshRows()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if !m.state.CanRefresh() {
				return m, nil
			}
			return m.fetchData()
		case key.Matches(msg, m.keys.SortName):
			m.sortBy("name")
			return m, nil
		case key.Matches(msg, m.keys.SortEmail):
			m.sortBy("email")
			return m, nil
		}

		page := m.pager.Page
		m.pager, _ = m.pager.Update(msg)
		if m.pager.Page != page {
			m.renderPage()
			m.table.SetCursor(0)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) sortBy(column string) {
	m.sort = m.sort.Toggle(column)
	m.table.SetColumns(columns(m.sort))
	m.refreshRows()
}

// refreshRows rebuilds the rows from state and keeps the page in range.
func (m *Model) refreshRows() {
	m.rows = panel.SortRows(panel.BuildRows(m.state.Users), m.sort)
	m.pager.TotalPages = panel.PageCount(len(m.rows), panel.RowsPerPage)
	if m.pager.Page >= m.pager.TotalPages {
		m.pager.Page = m.pager.TotalPages - 1
	}
	m.renderPage()
}

func (m *Model) renderPage() {
	page := panel.Page(m.rows, m.pager.Page+1, panel.RowsPerPage)
	out := make([]table.Row, 0, len(page))
	for _, r := range page {
		cells := make(table.Row, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.Content
		}
		cells[0] = fmt.Sprintf("[%s] %s", r.Cells[0].Avatar, r.Cells[0].Content)
		out = append(out, cells)
	}
	m.table.SetRows(out)
}

func columns(s panel.Sort) []table.Column {
	cols := make([]table.Column, len(panel.Columns))
	for i, c := range panel.Columns {
		title := c.Title
		if c.Key == s.Column {
			switch s.Order {
			case panel.Ascending:
				title += " ▲"
			case panel.Descending:
				title += " ▼"
			}
		}
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	return cols
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(m.button())
	b.WriteString("\n\n")

	if !m.state.Resolved() {
		b.WriteString(labelNoContext)
		b.WriteString("\n")
		return baseStyle.Render(b.String()) + "\n"
	}

	if m.state.Loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Page %s  ·  %d users  ·  project %s",
		m.pager.View(), len(m.rows), m.state.ProjectID)))
	if sel := m.selected(); sel != nil {
		b.WriteString("\n")
		b.WriteString(avatarBadge(sel.Cells[0]))
		b.WriteString(" " + sel.Cells[0].Content + " <" + sel.Cells[1].Content + ">")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[r] Refresh  [n/e] Sort name/email  [←/→] Page  [↑/↓] Navigate  [q] Quit"))

	return baseStyle.Render(b.String()) + "\n"
}

func (m Model) button() string {
	label := "[r] " + labelRefresh
	if m.state.Loading {
		label = labelRefreshing
	}
	if !m.state.CanRefresh() {
		return buttonDisabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) selected() *panel.Row {
	if len(m.table.Rows()) == 0 {
		return nil
	}
	i := (m.pager.Page)*panel.RowsPerPage + m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return &m.rows[i]
}

func avatarBadge(c panel.Cell) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(panel.AvatarColor(c.Content))).
		Padding(0, 1).
		Render(c.Avatar)
}
