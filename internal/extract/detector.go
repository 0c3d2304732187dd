// Package extract recovers transaction candidates and statement metadata
// from raw bank-statement text. Parsing is best-effort: lines that fail
// every grammar are skipped, never fatal.
package extract

import (
	"regexp"
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

const (
	knownBankConfidence   = 0.9
	unknownBankConfidence = 0.1
)

// bankSignatures maps each known issuer to the text markers its statements
// carry. Scanned in order; first hit wins. New banks are additive.
var bankSignatures = []struct {
	id      model.BankID
	markers []string
}{
	{model.BankChase, []string{"jpmorgan chase", "chase bank", "chase.com"}},
	{model.BankOfAmerica, []string{"bank of america", "bankofamerica.com"}},
	{model.BankWellsFargo, []string{"wells fargo", "wellsfargo.com"}},
}

// DetectBank scans whole-document text for known issuer signatures. A match
// returns fixed 0.9 confidence; no match returns unknown at 0.1.
func DetectBank(documentText string) model.BankInfo {
	lower := strings.ToLower(documentText)
	for _, sig := range bankSignatures {
		for _, marker := range sig.markers {
			if strings.Contains(lower, marker) {
				return model.BankInfo{ID: sig.id, Confidence: knownBankConfidence}
			}
		}
	}
	return model.BankInfo{ID: model.BankUnknown, Confidence: unknownBankConfidence}
}

// headerRe identifies column headers, footers, and summary rows. The words
// are matched at word boundaries so merchant names that merely contain one
// ("UPDATE", "TOTAL WINE") are not mistaken for headers.
var headerRe = regexp.MustCompile(`(?i)\b(date|description|amount|balance|summary)\b`)

// isHeaderLine reports whether a line is a recognized header/footer phrase.
func isHeaderLine(line string) bool {
	return headerRe.MatchString(line)
}

// minTransactionLineLen filters out fragments too short to hold a date,
// a description, and an amount.
const minTransactionLineLen = 15

// looksLikeTransactionLine is the gate for the generic fallback grammar:
// the line must carry a date-like token, an amount-like token, enough
// length, and must not be a header/footer phrase. Format-specific grammars
// do not use this gate; they try every non-empty, non-header line.
func looksLikeTransactionLine(line string) bool {
	if len(line) <= minTransactionLineLen {
		return false
	}
	if isHeaderLine(line) {
		return false
	}
	return dateTokenRe.MatchString(line) && amountTokenRe.MatchString(line)
}
