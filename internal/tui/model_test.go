package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/testutil"
	"github.com/Veraticus/pocketbook/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jan5 = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	jan6 = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
)

func newTestStore() *ledger.Store {
	main := model.DefaultLedger()
	travel := model.Ledgers[3]
	return ledger.NewStore([]model.Transaction{
		testutil.NewTx("a").Expense("12.50").Category("coffee").Note("latte").Ledger(main).At(jan5.Add(9 * time.Hour)).Build(),
		testutil.NewTx("b").Expense("30").Category("meals").Ledger(main).At(jan5.Add(12 * time.Hour)).Build(),
		testutil.NewTx("c").Income("5000").Ledger(main).At(jan6.Add(10 * time.Hour)).Build(),
		testutil.NewTx("d").Expense("800").Category("travel").Ledger(travel).At(jan5.Add(8 * time.Hour)).Build(),
		testutil.NewTx("e").Expense("99").Ledger(main).At(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)).Build(),
	}, nil)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func visibleIDs(m Model) []string {
	ids := make([]string, 0, len(m.Visible()))
	for _, tx := range m.Visible() {
		ids = append(ids, tx.ID)
	}
	return ids
}

func TestNew_ShowsSelectedDayOfLedger(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5.Add(15*time.Hour)))

	assert.Equal(t, model.DefaultLedger(), m.Ledger())
	assert.Equal(t, jan5, m.Day())
	assert.Equal(t, "2024-01", m.Month().String())
	assert.ElementsMatch(t, []string{"a", "b"}, visibleIDs(m))
	assert.Equal(t, ModeBrowse, m.Mode())
}

func TestUpdate_DayNavigation(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, jan6, m.Day())
	assert.Equal(t, []string{"c"}, visibleIDs(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, keyRunes("h"))
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), m.Day())
	assert.Empty(t, m.Visible())
}

func TestUpdate_DayCrossesMonthBoundary(t *testing.T) {
	m := New(newTestStore(), WithDay(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))

	m = send(t, m, keyRunes("l"))
	assert.Equal(t, "2024-02", m.Month().String())
	assert.Equal(t, []string{"e"}, visibleIDs(m))
}

func TestUpdate_MonthNavigation(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))

	m = send(t, m, keyRunes("]"))
	assert.Equal(t, "2024-02", m.Month().String())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m.Day())

	m = send(t, m, keyRunes("["), keyRunes("["))
	assert.Equal(t, "2023-12", m.Month().String())
}

func TestUpdate_NextLedgerWraps(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))

	for i := 1; i < len(model.Ledgers); i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, model.Ledgers[i], m.Ledger())
	}
	assert.Equal(t, []string{"d"}, visibleIDs(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.Ledgers[0], m.Ledger())
}

func TestUpdate_CursorStaysInRange(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))
	require.Len(t, m.Visible(), 2)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	first, ok := m.Selected()
	require.True(t, ok)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	last, ok := m.Selected()
	require.True(t, ok)
	assert.NotEqual(t, first.ID, last.ID)
	assert.Equal(t, m.Visible()[1].ID, last.ID)
}

func TestUpdate_Search(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))

	m = send(t, m, keyRunes("/"))
	require.Equal(t, ModeSearch, m.Mode())

	m = send(t, m, keyRunes("l"), keyRunes("a"), keyRunes("t"))
	assert.Equal(t, []string{"a"}, visibleIDs(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeBrowse, m.Mode())
	assert.Equal(t, []string{"a"}, visibleIDs(m), "query stays applied after enter")

	m = send(t, m, keyRunes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeBrowse, m.Mode())
	assert.Len(t, m.Visible(), 2, "esc clears the query")
}

func TestUpdate_SearchByAmount(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))

	m = send(t, m, keyRunes("/"), keyRunes("3"), keyRunes("0"))
	assert.Equal(t, []string{"b"}, visibleIDs(m))
}

func TestUpdate_DeleteConfirmed(t *testing.T) {
	store := newTestStore()
	m := New(store, WithDay(jan5))
	target, ok := m.Selected()
	require.True(t, ok)

	m = send(t, m, keyRunes("d"))
	require.Equal(t, ModeConfirmDelete, m.Mode())
	assert.Contains(t, m.View(), "(y/n)")

	m = send(t, m, keyRunes("y"))
	assert.Equal(t, ModeBrowse, m.Mode())
	assert.Len(t, m.Visible(), 1)

	_, found := store.Get(target.ID)
	assert.False(t, found)
	assert.Equal(t, 4, store.Len())
}

func TestUpdate_DeleteCancelled(t *testing.T) {
	store := newTestStore()
	m := New(store, WithDay(jan5))

	m = send(t, m, keyRunes("d"), keyRunes("n"))
	assert.Equal(t, ModeBrowse, m.Mode())
	assert.Equal(t, 5, store.Len())
	assert.Contains(t, m.View(), "Delete cancelled")
}

func TestUpdate_DeleteOnEmptyDayDoesNothing(t *testing.T) {
	m := New(newTestStore(), WithDay(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))

	m = send(t, m, keyRunes("d"))
	assert.Equal(t, ModeBrowse, m.Mode())
}

func TestUpdate_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", keyRunes("q")},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(newTestStore(), WithDay(jan5))
			_, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestUpdate_QuitKeyTypesIntoSearch(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))
	m = send(t, m, keyRunes("/"))

	m = send(t, m, keyRunes("q"))
	assert.Equal(t, ModeSearch, m.Mode())
	assert.Empty(t, m.Visible())
}

func TestUpdate_StoreChangesShowOnRefresh(t *testing.T) {
	store := newTestStore()
	m := New(store, WithDay(jan5))

	store.Add(testutil.NewTx("new").Ledger(model.DefaultLedger()).At(jan5.Add(20 * time.Hour)).Build())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Contains(t, visibleIDs(m), "new")
}

func TestView_HeaderTotals(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5), WithTheme(themes.CatppuccinMocha), WithSize(100, 30))
	view := m.View()

	assert.Contains(t, view, model.DefaultLedger())
	assert.Contains(t, view, "2024-01")
	assert.Contains(t, view, "5000.00")
	assert.Contains(t, view, "42.50")
	assert.Contains(t, view, "4957.50")
	assert.Contains(t, view, "latte")
}

func TestView_EmptyDay(t *testing.T) {
	m := New(newTestStore(), WithDay(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)))
	assert.Contains(t, m.View(), "No transactions")
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(newTestStore(), WithDay(jan5))
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestThemes_ByName(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Primary, themes.ByName("Mocha").Primary)
	assert.Equal(t, themes.Default.Primary, themes.ByName("").Primary)
	assert.True(t, strings.HasPrefix(string(themes.Default.Primary), "#"))
}
