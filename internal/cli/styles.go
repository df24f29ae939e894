// Package cli provides styled terminal output and context-aware prompts.
package cli

import (
	"strings"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#F4A261")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")
	// IncomeColor colors money coming in.
	IncomeColor = lipgloss.Color("#2A9D8F")
	// ExpenseColor colors money going out.
	ExpenseColor = lipgloss.Color("#E76F51")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	incomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	expenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	WalletIcon  = "👛"
	SyncIcon    = "🔄"
	ChartIcon   = "📊"
	FlagIcon    = "⚑"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the wallet icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatAmount renders tx's amount signed by direction: "-12.50" for
// expenses, "+12.50" for income, plain for transfers.
func FormatAmount(tx model.Transaction) string {
	amount := tx.Amount.StringFixed(2)
	switch tx.Type {
	case model.TypeExpense:
		return expenseStyle.Render("-" + amount)
	case model.TypeIncome:
		return incomeStyle.Render("+" + amount)
	default:
		return amount
	}
}

// DescribeTransaction is the one-line summary used in lists and prompts.
func DescribeTransaction(tx model.Transaction) string {
	parts := []string{
		tx.Date.Local().Format("2006-01-02"),
		model.CategoryName(tx.CategoryID),
		FormatAmount(tx),
	}
	account := tx.Account
	if tx.Type == model.TypeTransfer {
		account = tx.Account + " → " + tx.ToAccount
	}
	if account != "" {
		parts = append(parts, SubtleStyle.Render(account))
	}
	if tx.Note != "" {
		parts = append(parts, tx.Note)
	}
	if tx.IsFlagged {
		parts = append(parts, WarningStyle.Render(FlagIcon))
	}
	return strings.Join(parts, "  ")
}

// RenderTransactionTable renders txs with their IDs, one per row.
func RenderTransactionTable(txs []model.Transaction) string {
	if len(txs) == 0 {
		return SubtleStyle.Render("No transactions.")
	}

	idWidth := 0
	for _, tx := range txs {
		idWidth = max(idWidth, lipgloss.Width(tx.ID))
	}

	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, TableHeaderStyle.Render(padRight("ID", idWidth)+"  Transaction"))
	for _, tx := range txs {
		lines = append(lines, SubtleStyle.Render(padRight(tx.ID, idWidth))+"  "+DescribeTransaction(tx))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
