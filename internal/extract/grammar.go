package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/normalize"
)

// Shared pattern fragments. Amounts may carry a dollar sign, a leading
// minus, or accounting parentheses, with or without thousands separators.
const (
	datePat   = `\d{1,2}/\d{1,2}(?:/\d{2,4})?`
	amountPat = `-?\(?\$?(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}\)?`
)

var (
	dateTokenRe   = regexp.MustCompile(`\b` + datePat + `\b`)
	amountTokenRe = regexp.MustCompile(amountPat)
)

// linePattern pairs one line regexp with the capture-group positions of the
// date, description, and amount. Patterns that also see a trailing running
// balance capture the amount before it, so the balance is never mistaken
// for the transaction amount.
type linePattern struct {
	re        *regexp.Regexp
	dateIdx   int
	descIdx   int
	amountIdx int
}

// formatGrammars holds one ordered grammar per known bank, most specific
// pattern first. The first pattern that matches a line wins for that line.
var formatGrammars = map[model.BankID][]linePattern{
	model.BankChase: {
		// MM/DD description amount balance
		{regexp.MustCompile(`^(` + datePat + `)\s+(.+?)\s+(` + amountPat + `)\s+(` + amountPat + `)$`), 1, 2, 3},
		// MM/DD description amount
		{regexp.MustCompile(`^(` + datePat + `)\s+(.+?)\s+(` + amountPat + `)$`), 1, 2, 3},
	},
	model.BankOfAmerica: {
		// MM/DD/YY description amount balance
		{regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+?)\s+(` + amountPat + `)\s+(` + amountPat + `)$`), 1, 2, 3},
		// MM/DD/YY description amount
		{regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+?)\s+(` + amountPat + `)$`), 1, 2, 3},
		// MM/DD description amount (interim lines drop the year)
		{regexp.MustCompile(`^(` + datePat + `)\s+(.+?)\s+(` + amountPat + `)$`), 1, 2, 3},
	},
	model.BankWellsFargo: {
		// MM/DD check-number description amount
		{regexp.MustCompile(`^(` + datePat + `)\s+(\d{3,6}\s+.+?)\s+(` + amountPat + `)\s+(` + amountPat + `)$`), 1, 2, 3},
		// MM/DD description amount balance
		{regexp.MustCompile(`^(` + datePat + `)\s+(.+?)\s+(` + amountPat + `)\s+(` + amountPat + `)$`), 1, 2, 3},
		// MM/DD description amount
		{regexp.MustCompile(`^(` + datePat + `)\s+(.+?)\s+(` + amountPat + `)$`), 1, 2, 3},
	},
}

// tryGrammar runs a line through an ordered grammar and builds a candidate
// from the first matching pattern. Returns false when no pattern matches or
// the matched tokens fail normalization; the caller skips such lines.
func tryGrammar(grammar []linePattern, line string, assumedYear int) (model.Transaction, bool) {
	for _, p := range grammar {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := normalize.Date(m[p.dateIdx], assumedYear)
		if err != nil {
			continue
		}
		amount, err := normalize.Amount(m[p.amountIdx])
		if err != nil {
			continue
		}

		return buildCandidate(date, m[p.descIdx], amount, line), true
	}
	return model.Transaction{}, false
}

// parseGenericLine handles statements from unknown issuers: the first
// date-like token is the date, the last amount-like token is the amount,
// and whatever text remains is the description.
func parseGenericLine(line string, assumedYear int) (model.Transaction, bool) {
	dateToken := dateTokenRe.FindString(line)
	if dateToken == "" {
		return model.Transaction{}, false
	}
	amounts := amountTokenRe.FindAllStringIndex(line, -1)
	if len(amounts) == 0 {
		return model.Transaction{}, false
	}
	last := amounts[len(amounts)-1]
	amountToken := line[last[0]:last[1]]

	date, err := normalize.Date(dateToken, assumedYear)
	if err != nil {
		return model.Transaction{}, false
	}
	amount, err := normalize.Amount(amountToken)
	if err != nil {
		return model.Transaction{}, false
	}

	rest := line[:last[0]] + line[last[1]:]
	rest = strings.Replace(rest, dateToken, "", 1)

	return buildCandidate(date, rest, amount, line), true
}

// buildCandidate normalizes the description, derives the payee, and keeps
// the untouched source line for diagnostics.
func buildCandidate(date time.Time, rawDescription string, amount float64, sourceLine string) model.Transaction {
	description := normalize.Clean(rawDescription)
	return model.Transaction{
		Date:        date,
		Description: description,
		Payee:       normalize.Payee(description),
		Amount:      amount,
		SourceLine:  sourceLine,
	}
}
