// Package tui implements the interactive day-by-day transaction browser.
package tui

import (
	"time"

	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Store is the part of the transaction store the browser reads and mutates.
type Store interface {
	All() []model.Transaction
	Delete(id string) bool
}

// Mode represents what the keyboard currently drives.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeConfirmDelete
)

// Model is the main TUI model.
type Model struct {
	day     time.Time
	store   Store
	theme   themes.Theme
	status  string
	ledgers []string
	visible []model.Transaction
	search  textinput.Model
	help    help.Model
	keys    KeyMap
	month   model.MonthRange
	ledger  int
	cursor  int
	width   int
	height  int
	mode    Mode
}

// New creates a browser over store.
func New(store Store, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.Ledgers) == 0 {
		cfg.Ledgers = []string{model.DefaultLedger()}
	}

	search := textinput.New()
	search.Placeholder = "note, amount or category"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		store:   store,
		theme:   cfg.Theme,
		ledgers: cfg.Ledgers,
		search:  search,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		width:   cfg.Width,
		height:  cfg.Height,
	}
	for i, name := range cfg.Ledgers {
		if name == cfg.Ledger {
			m.ledger = i
		}
	}
	m.setDay(cfg.Day)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeSearch:
			return m.handleSearchKeys(msg)
		case ModeConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "esc":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevDay):
		m.setDay(m.day.AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		m.setDay(m.day.AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.PrevMonth):
		m.setDay(m.month.Prev().Start)

	case key.Matches(msg, m.keys.NextMonth):
		m.setDay(m.month.Next().Start)

	case key.Matches(msg, m.keys.Today):
		m.setDay(time.Now().In(m.day.Location()))

	case key.Matches(msg, m.keys.NextLedger):
		m.ledger = (m.ledger + 1) % len(m.ledgers)
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); ok {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = ModeBrowse
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.mode = ModeBrowse
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if tx, ok := m.Selected(); ok && m.store.Delete(tx.ID) {
			m.status = "Deleted " + model.CategoryName(tx.CategoryID) + " " + tx.Amount.StringFixed(2)
		}
		m.mode = ModeBrowse
		m.refresh()
	case key.Matches(msg, m.keys.Cancel):
		m.status = "Delete cancelled"
		m.mode = ModeBrowse
	}
	return m, nil
}

// setDay moves the selection to day; the shown month follows it.
func (m *Model) setDay(day time.Time) {
	m.day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	m.month = model.MonthOf(m.day)
	m.cursor = 0
	m.refresh()
}

// refresh recomputes the visible rows from the store.
func (m *Model) refresh() {
	txs := ledger.FilterByLedger(m.store.All(), m.Ledger())
	txs = ledger.FilterByDay(txs, m.day)
	m.visible = ledger.FilterByQuery(txs, m.search.Value())
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// Ledger returns the ledger being browsed.
func (m Model) Ledger() string {
	return m.ledgers[m.ledger]
}

// Day returns the selected day.
func (m Model) Day() time.Time {
	return m.day
}

// Month returns the month shown in the header.
func (m Model) Month() model.MonthRange {
	return m.month
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Visible returns the rows of the selected day after filtering.
func (m Model) Visible() []model.Transaction {
	return m.visible
}

// Selected returns the row under the cursor.
func (m Model) Selected() (model.Transaction, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return model.Transaction{}, false
	}
	return m.visible[m.cursor], true
}
