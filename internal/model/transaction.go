// Package model defines the core data structures for the ledgerlift engine.
package model

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TransactionType tags a transaction by the sign of its amount.
type TransactionType string

const (
	// TransactionIncome marks money in (amount > 0).
	TransactionIncome TransactionType = "income"
	// TransactionExpense marks money out (amount <= 0).
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single candidate extracted from a bank statement, before
// and after classification. Category is empty until a rule assigns one; an
// empty category after classification means "needs manual review".
type Transaction struct {
	Date        time.Time
	ID          string
	Description string // Cleaned free text
	Payee       string // Best-effort payee, first words of Description
	SourceLine  string // Original statement line, kept for diagnostics
	Category    string
	Amount      float64 // Positive = money in, negative = money out
}

// Type derives the income/expense tag from the amount sign.
func (t *Transaction) Type() TransactionType {
	if t.Amount > 0 {
		return TransactionIncome
	}
	return TransactionExpense
}

// GenerateHash creates a stable hash for duplicate detection, so importing
// the same statement twice does not double-count lines.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.SourceLine)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// CoerceAmount accepts the loose numeric shapes that arrive at the JSON
// boundary (float64, int, json.Number-ish strings) and returns a float64.
func CoerceAmount(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
