package extract

import (
	"testing"

	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantID         model.BankID
		wantConfidence float64
	}{
		{"chase full name", "JPMorgan Chase Bank, N.A.\n05/01 COFFEE -6.50", model.BankChase, 0.9},
		{"chase url", "visit chase.com for details", model.BankChase, 0.9},
		{"bank of america", "BANK OF AMERICA\nStatement", model.BankOfAmerica, 0.9},
		{"wells fargo", "Wells Fargo Everyday Checking", model.BankWellsFargo, 0.9},
		{"case insensitive", "wElLs FaRgO", model.BankWellsFargo, 0.9},
		{"no signature", "05/01 STARBUCKS COFFEE #2451 -6.50", model.BankUnknown, 0.1},
		{"empty", "", model.BankUnknown, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBank(tt.text)
			assert.Equal(t, tt.wantID, got.ID)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestLooksLikeTransactionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"plain transaction", "05/01 STARBUCKS COFFEE #2451 -6.50", true},
		{"dollar amount", "05/03 SHELL OIL 5744 PORTLAND $45.00", true},
		{"column header", "Date Description Amount", false},
		{"summary row", "Summary of account activity", false},
		{"balance row", "05/01 Beginning balance 1,240.00", false},
		{"marker inside a word", "05/01 ADOBE UPDATE SUBSCRIPTION -9.99", true},
		{"marker word in merchant name", "05/02 TOTAL WINE AND MORE -32.18", true},
		{"amount without separators", "05/15 ACME PAYROLL DEPOSIT 1188.50", true},
		{"too short", "05/01 A 1.00", false},
		{"no date", "STARBUCKS COFFEE PURCHASE -6.50", false},
		{"no amount", "05/01 STARBUCKS COFFEE PURCHASE", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeTransactionLine(tt.line))
		})
	}
}
