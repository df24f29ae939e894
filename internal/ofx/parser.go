// Package ofx turns OFX/QFX bank and credit card statements into
// transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// IDPrefix marks transactions created from a statement. The rest of the ID
// is the bank's FITID, so re-importing a statement is idempotent.
const IDPrefix = "ofx-"

// DefaultAccount is used when Options.Account is empty.
const DefaultAccount = "银行卡"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options controls how statement lines become transactions.
type Options struct {
	Ledger  string
	Account string
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
	opts   Options
}

// NewParser creates a new OFX parser.
func NewParser(opts Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Ledger == "" {
		opts.Ledger = model.DefaultLedger()
	}
	if opts.Account == "" {
		opts.Account = DefaultAccount
	}
	return &Parser{opts: opts, logger: logger}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of bare tags.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its transactions in
// statement order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList)...)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList) []model.Transaction {
	if list == nil {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		tx, err := p.convertTransaction(ofxTx)
		if err != nil {
			p.logger.Warn("Skipping OFX transaction", "fitid", string(ofxTx.FiTID), "error", err)
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions
}

// convertTransaction maps one statement line. Negative amounts are money
// out and become expenses; everything else is income.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, error) {
	if ofxTx.FiTID == "" {
		return model.Transaction{}, fmt.Errorf("transaction has no FITID")
	}

	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	tx := model.Transaction{
		ID:      IDPrefix + string(ofxTx.FiTID),
		Date:    ofxTx.DtPosted.Time,
		Note:    p.extractMerchantName(ofxTx),
		Account: p.opts.Account,
		Ledger:  p.opts.Ledger,
	}

	if amount.IsNegative() {
		tx.Type = model.TypeExpense
		tx.Amount = amount.Neg()
		tx.CategoryID = "other"
	} else {
		tx.Type = model.TypeIncome
		tx.Amount = amount
		tx.CategoryID = "salary"
	}

	// OFX has no categories; the transaction type gives a few hints.
	switch ofxTx.TrnType {
	case ofxgo.TrnTypeInt, ofxgo.TrnTypeDiv:
		if tx.Type == model.TypeIncome {
			tx.CategoryID = "investment"
		}
	case ofxgo.TrnTypeCheck:
		if ofxTx.CheckNum != "" && !strings.Contains(tx.Note, string(ofxTx.CheckNum)) {
			tx.Note = strings.TrimSpace(tx.Note + " #" + string(ofxTx.CheckNum))
		}
	}

	return tx, nil
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// MEMO sometimes carries the merchant when NAME is generic.
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// GetAccounts extracts unique account IDs from the OFX file, sorted.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}

// NewOnly drops imported records whose IDs already exist (or repeat within
// imported) and returns the rest oldest first, the order in which adding
// them leaves the newest at the front of the store.
func NewOnly(existing, imported []model.Transaction) []model.Transaction {
	seen := make(map[string]bool, len(existing)+len(imported))
	for _, tx := range existing {
		seen[tx.ID] = true
	}

	fresh := make([]model.Transaction, 0, len(imported))
	for _, tx := range imported {
		if seen[tx.ID] {
			continue
		}
		seen[tx.ID] = true
		fresh = append(fresh, tx)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Date.Before(fresh[j].Date)
	})
	return fresh
}
