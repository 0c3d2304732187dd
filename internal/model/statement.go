package model

import "time"

// BankID identifies a known statement issuer.
type BankID string

const (
	// BankChase is JPMorgan Chase.
	BankChase BankID = "chase"
	// BankOfAmerica is Bank of America.
	BankOfAmerica BankID = "bank_of_america"
	// BankWellsFargo is Wells Fargo.
	BankWellsFargo BankID = "wells_fargo"
	// BankUnknown is any statement no signature matched.
	BankUnknown BankID = "unknown"
)

// BankInfo is the detected statement issuer with a confidence score in [0,1].
type BankInfo struct {
	ID         BankID
	Confidence float64
}

// StatementPeriod is the date range a statement covers.
type StatementPeriod struct {
	Start time.Time
	End   time.Time
}

// StatementMetadata describes one extracted statement.
type StatementMetadata struct {
	Bank   BankInfo
	Period *StatementPeriod // nil when the statement text carries no period
}
