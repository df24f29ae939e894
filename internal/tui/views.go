package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderDay(),
		m.renderList(),
	}
	if m.mode == ModeSearch || m.search.Value() != "" {
		sections = append(sections, m.search.View())
	}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	totals := stats.Monthly(ledger.FilterByLedger(m.store.All(), m.Ledger()), m.month)

	title := m.theme.Title.Render(fmt.Sprintf("👛 %s  %s", m.Ledger(), m.month))
	summary := strings.Join([]string{
		m.theme.Subtitle.Render("Income ") + m.theme.Income.Render(totals.Income.StringFixed(2)),
		m.theme.Subtitle.Render("Expense ") + m.theme.Expense.Render(totals.Expense.StringFixed(2)),
		m.theme.Subtitle.Render("Balance ") + m.theme.Normal.Render(totals.Balance.StringFixed(2)),
	}, "   ")

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return m.theme.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, summary))
}

func (m Model) renderDay() string {
	label := m.day.Format("2006-01-02 Mon")
	return m.theme.Muted.Render("‹ ") + m.theme.Title.Render(label) + m.theme.Muted.Render(" ›")
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return m.theme.Muted.Render("  No transactions")
	}

	rows := make([]string, 0, len(m.visible))
	for i, tx := range m.visible {
		line := m.formatRow(tx)
		if i == m.cursor {
			rows = append(rows, m.theme.Selected.Render("▸ "+line))
			continue
		}
		rows = append(rows, "  "+line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) formatRow(tx model.Transaction) string {
	name := model.CategoryName(tx.CategoryID)

	amount := tx.Amount.StringFixed(2)
	style := m.theme.Transfer
	switch tx.Type {
	case model.TypeExpense:
		amount = "-" + amount
		style = m.theme.Expense
	case model.TypeIncome:
		amount = "+" + amount
		style = m.theme.Income
	}

	account := tx.Account
	if tx.Type == model.TypeTransfer {
		account += " → " + tx.ToAccount
	}

	line := fmt.Sprintf("%s %-8s %12s  %s", tx.Date.Format("15:04"), name, style.Render(amount), account)
	if tx.Note != "" {
		line += "  " + m.theme.Muted.Render(tx.Note)
	}
	if tx.IsFlagged {
		line += " 🚩"
	}
	return line
}

func (m Model) renderStatus() string {
	if m.mode == ModeConfirmDelete {
		tx, _ := m.Selected()
		return m.theme.Warning.Render(fmt.Sprintf("Delete %s %s? (y/n)", model.CategoryName(tx.CategoryID), tx.Amount.StringFixed(2)))
	}
	if m.status != "" {
		return m.theme.Subtitle.Render(m.status)
	}
	return ""
}
