// Package tui is the interactive terminal film browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ogero/ghibli-films/internal/catalog"
	"github.com/ogero/ghibli-films/internal/common"
	"github.com/ogero/ghibli-films/pkg/ghibli"
)

const (
	cardWidth = 30
	maxCols   = 3
)

// filmsLoadedMsg carries the outcome of the single fetch.
type filmsLoadedMsg struct {
	films []*ghibli.Film
	err   error
}

// Model is the Bubble Tea model of the browser.
type Model struct {
	ctx      context.Context
	ghibli   ghibli.Ghibli
	pageSize int

	loading bool
	err     string
	films   []*ghibli.Film

	state  *catalog.State
	page   *catalog.Page
	cursor int

	search  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  Styles

	width  int
	height int
}

// New creates the browser model. The fetch starts with Init and lives as long as ctx.
func New(ctx context.Context, g ghibli.Ghibli, pageSize int) Model {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or original title"
	search.CharLimit = 100

	return Model{
		ctx:      ctx,
		ghibli:   g,
		pageSize: pageSize,
		loading:  true,
		state:    catalog.NewState(),
		search:   search,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   DefaultStyles(),
		width:    maxCols * (cardWidth + 2),
	}
}

// Init starts the spinner and the one and only fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchFilms())
}

func (m Model) fetchFilms() tea.Cmd {
	ctx, g := m.ctx, m.ghibli
	return func() tea.Msg {
		films, err := g.GetFilms(ctx)
		return filmsLoadedMsg{films: films, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case filmsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			common.Log.Error("Failed to ghibli.Ghibli.GetFilms", "err", msg.err)
			m.err = common.LoadFailedMessage
			return m, nil
		}
		common.Log.Info("Loaded films", "count", len(msg.films))
		m.films = msg.films
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.loading || m.err != "" {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.state.ModalOpen {
		if key.Matches(msg, m.keys.Close) {
			m.state.Close()
		}
		return m, nil
	}

	if m.search.Focused() {
		if key.Matches(msg, m.keys.Blur) {
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != m.state.SearchQuery {
			m.state.SetSearch(m.search.Value())
			m.cursor = 0
			m.refresh()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.NextSort):
		m.state.SetSort(m.state.SortKey.Next())
	case key.Matches(msg, m.keys.PrevSort):
		m.state.SetSort(m.state.SortKey.Prev())
	case key.Matches(msg, m.keys.NextPage):
		m.state.NextPage(m.page.TotalPages)
		m.cursor = 0
	case key.Matches(msg, m.keys.PrevPage):
		m.state.PrevPage(m.page.TotalPages)
		m.cursor = 0
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Open):
		if len(m.page.Films) > 0 {
			m.state.Open(m.page.Films[m.cursor])
		}
		return m, nil
	}

	m.refresh()
	return m, nil
}

// refresh recomputes the visible page and keeps the cursor on it.
func (m *Model) refresh() {
	m.page = m.state.View(m.films, m.pageSize)
	m.cursor = max(0, min(m.cursor, len(m.page.Films)-1))
}

// View renders the browser.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Studio Ghibli Films"))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " Loading…\n")
		return sb.String()
	case m.err != "":
		sb.WriteString(m.styles.Error.Render(m.err) + "\n")
		sb.WriteString(m.styles.Muted.Render("press q to quit") + "\n")
		return sb.String()
	}

	if m.state.ModalOpen && m.state.Selected != nil {
		sb.WriteString(m.renderModal(m.state.Selected))
		sb.WriteString("\n")
		sb.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Close}))
		return sb.String()
	}

	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Sort: %s · %d movies", m.state.SortKey.Label(), m.page.TotalFilms)))
	sb.WriteString("\n\n")

	if len(m.page.Films) == 0 {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("No movies match %q.", m.state.SearchQuery)))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.renderGrid())
		sb.WriteString("\n")
	}

	if m.page.TotalPages > 1 {
		sb.WriteString(m.renderPagination())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderGrid() string {
	cols := max(1, min(maxCols, m.width/(cardWidth+2)))

	var rows []string
	var row []string
	for i, f := range m.page.Films {
		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.CardSelected
		}
		card := style.Width(cardWidth).Render(
			m.styles.CardTitle.Render(truncate(f.Title, cardWidth-2)) + "\n" +
				m.styles.Muted.Render(truncate(f.OriginalTitle, cardWidth-2)) + "\n" +
				truncate(fmt.Sprintf("%s · %s", f.Director, f.ReleaseDate), cardWidth-2),
		)
		row = append(row, card)
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderPagination() string {
	parts := make([]string, 0, len(m.page.Pages)+2)

	if m.page.HasPrev() {
		parts = append(parts, m.styles.PageOther.Render("‹ Prev"))
	} else {
		parts = append(parts, m.styles.PageDisabled.Render("‹ Prev"))
	}
	for _, p := range m.page.Pages {
		if p == m.page.CurrentPage {
			parts = append(parts, m.styles.PageCurrent.Render(fmt.Sprintf("[%d]", p)))
		} else {
			parts = append(parts, m.styles.PageOther.Render(fmt.Sprint(p)))
		}
	}
	if m.page.HasNext() {
		parts = append(parts, m.styles.PageOther.Render("Next ›"))
	} else {
		parts = append(parts, m.styles.PageDisabled.Render("Next ›"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderModal(f *ghibli.Film) string {
	width := max(40, min(80, m.width-4))

	var sb strings.Builder
	sb.WriteString(m.styles.ModalTitle.Render(f.Title))
	sb.WriteString("\n")
	original := f.OriginalTitle
	if f.OriginalTitleRomanised != "" {
		original = fmt.Sprintf("%s (%s)", original, f.OriginalTitleRomanised)
	}
	sb.WriteString(m.styles.Muted.Render(original))
	sb.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(m.styles.Label.Render(label+": ") + value + "\n")
	}
	field("Director", f.Director)
	field("Producer", f.Producer)
	field("Released", f.ReleaseDate)
	if f.RunningTime != "" {
		field("Running time", f.RunningTime+" min")
	}
	if f.RTScore != "" {
		field("Rotten Tomatoes", f.RTScore+"%")
	}
	sb.WriteString("\n")
	sb.WriteString(f.Description)

	return m.styles.Modal.Width(width).Render(sb.String())
}

func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l-1]) + "…"
	}
	return s
}
