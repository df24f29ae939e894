package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240128120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024012801
<NAME>ACME PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 4,
			expectedError: false,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
			expectedError: false,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedCount: 0,
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedCount: 0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(Options{}, nil)
			reader := strings.NewReader(tt.ofxData)

			transactions, err := parser.ParseFile(context.Background(), reader)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, transactions, tt.expectedCount)
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser(Options{Ledger: "日常账本"}, nil)
	reader := strings.NewReader(sampleBankOFX)

	transactions, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	tx1 := transactions[0]
	assert.Equal(t, "ofx-2024011501", tx1.ID)
	assert.Equal(t, model.TypeExpense, tx1.Type)
	assert.Equal(t, "other", tx1.CategoryID)
	assert.Equal(t, "STARBUCKS STORE #1234", tx1.Note)
	assert.Equal(t, "25.5", tx1.Amount.String())
	assert.Equal(t, DefaultAccount, tx1.Account)
	assert.Equal(t, "日常账本", tx1.Ledger)
	assert.Equal(t, 2024, tx1.Date.Year())
	assert.Equal(t, time.January, tx1.Date.Month())
	assert.Equal(t, 15, tx1.Date.Day())

	tx2 := transactions[1]
	assert.Equal(t, "ofx-2024012001", tx2.ID)
	assert.Equal(t, "Whole Foods Market", tx2.Note)
	assert.Equal(t, "125", tx2.Amount.String())

	tx3 := transactions[2]
	assert.Equal(t, "ofx-2024012501", tx3.ID)
	assert.Equal(t, "CHECK #1234", tx3.Note)
	assert.Equal(t, "500", tx3.Amount.String())

	deposit := transactions[3]
	assert.Equal(t, "ofx-2024012801", deposit.ID)
	assert.Equal(t, model.TypeIncome, deposit.Type)
	assert.Equal(t, "salary", deposit.CategoryID)
	assert.Equal(t, "2500", deposit.Amount.String())
	assert.Equal(t, "ACME PAYROLL", deposit.Note)

	for _, tx := range transactions {
		assert.NoError(t, model.ValidateForSave(tx), tx.ID)
	}
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser(Options{Account: "信用卡"}, nil)
	reader := strings.NewReader(sampleCreditCardOFX)

	transactions, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	tx1 := transactions[0]
	assert.Equal(t, "ofx-CC2024011001", tx1.ID)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", tx1.Note)
	assert.Equal(t, "45.99", tx1.Amount.String())
	assert.Equal(t, "信用卡", tx1.Account)
	assert.Equal(t, model.DefaultLedger(), tx1.Ledger)

	tx2 := transactions[1]
	assert.Equal(t, "ofx-CC2024011501", tx2.ID)
	assert.Equal(t, "NETFLIX.COM", tx2.Note)
	assert.Equal(t, "15", tx2.Amount.String())
}

func TestConvertTransactionInterest(t *testing.T) {
	parser := NewParser(Options{}, nil)

	tx, err := parser.convertTransaction(ofxgo.Transaction{
		TrnType: ofxgo.TrnTypeInt,
		FiTID:   "INT01",
		Name:    "INTEREST PAID",
		TrnAmt:  amount(t, "1.23"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TypeIncome, tx.Type)
	assert.Equal(t, "investment", tx.CategoryID)

	_, err = parser.convertTransaction(ofxgo.Transaction{TrnAmt: amount(t, "1")})
	assert.Error(t, err, "lines without FITID are rejected")
}

func amount(t *testing.T, s string) ofxgo.Amount {
	t.Helper()
	var a ofxgo.Amount
	_, ok := a.SetString(s)
	require.True(t, ok)
	return a
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser(Options{}, nil)

	tests := []struct {
		name     string
		input    string
		memo     string
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    "POS PURCHASE STARBUCKS",
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    "DEBIT CARD PURCHASE WHOLE FOODS",
			expected: "WHOLE FOODS",
		},
		{
			name:     "keep clean name",
			input:    "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "trim whitespace",
			input:    "  AMAZON.COM  ",
			expected: "AMAZON.COM",
		},
		{
			name:     "generic name falls back to memo",
			input:    "PURCHASE",
			memo:     "CORNER BAKERY",
			expected: "CORNER BAKERY",
		},
		{
			name:     "strip leading date",
			input:    "01/15 CORNER BAKERY",
			expected: "CORNER BAKERY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.input),
				Memo: ofxgo.String(tt.memo),
			}
			assert.Equal(t, tt.expected, parser.extractMerchantName(tx))
		})
	}
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser(Options{}, nil)

	got := parser.preprocessOFX("\n\n  <SEVERITY>Info</SEVERITY>\n<BANKTRANLIST\n")
	assert.Equal(t, "<SEVERITY>INFO</SEVERITY>\n<BANKTRANLIST>\n", got)
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser(Options{}, nil)

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}

func TestNewOnly(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC) }

	existing := []model.Transaction{{ID: "ofx-1", Date: day(1)}, {ID: "manual", Date: day(2)}}
	imported := []model.Transaction{
		{ID: "ofx-3", Date: day(20)},
		{ID: "ofx-1", Date: day(1)},
		{ID: "ofx-2", Date: day(10)},
		{ID: "ofx-3", Date: day(20)},
	}

	fresh := NewOnly(existing, imported)
	require.Len(t, fresh, 2)
	assert.Equal(t, "ofx-2", fresh[0].ID)
	assert.Equal(t, "ofx-3", fresh[1].ID)

	assert.Empty(t, NewOnly(imported, imported))
}
