package extract

import (
	"regexp"

	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/normalize"
)

var periodRe = regexp.MustCompile(
	`(?i)statement\s+period:?\s*(` + datePat + `)\s*(?:-|–|to|through)\s*(` + datePat + `)`)

// findPeriod scans whole-document text for a "Statement Period <date> - <date>"
// phrase. Returns nil when the phrase is absent or either date is invalid.
func findPeriod(documentText string, assumedYear int) *model.StatementPeriod {
	m := periodRe.FindStringSubmatch(documentText)
	if m == nil {
		return nil
	}

	start, err := normalize.Date(m[1], assumedYear)
	if err != nil {
		return nil
	}
	end, err := normalize.Date(m[2], assumedYear)
	if err != nil {
		return nil
	}

	return &model.StatementPeriod{Start: start, End: end}
}
