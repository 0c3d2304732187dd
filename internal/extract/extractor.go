package extract

import (
	"context"
	"strings"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/normalize"
)

// TextSource is the upstream collaborator that turns a binary document into
// raw text. Its failure is the only fatal error in extraction.
type TextSource interface {
	Text(ctx context.Context, data []byte) (string, error)
}

// Result is the outcome of extracting one statement.
type Result struct {
	Metadata     map[string]any
	Statement    model.StatementMetadata
	Transactions []model.Transaction
	Success      bool
}

// Extractor orchestrates per-line parsing of statement text against the
// format-specific grammars, falling back to the generic grammar for
// unrecognized issuers.
type Extractor struct {
	source TextSource
	now    func() time.Time
}

// New creates an extractor backed by the given upstream text source.
// The source may be nil when callers only use Extract on pre-resolved text.
func New(source TextSource) *Extractor {
	return &Extractor{source: source, now: time.Now}
}

// ExtractDocument resolves a binary document to text through the upstream
// collaborator and extracts it. An upstream failure is fatal for the whole
// statement and is returned wrapped with the pass-through metadata.
func (e *Extractor) ExtractDocument(ctx context.Context, data []byte, metadata map[string]any) (*Result, error) {
	text, err := e.source.Text(ctx, data)
	if err != nil {
		return &Result{
			Success:  false,
			Metadata: e.resultMetadata(metadata, 0),
		}, common.NewExtractionError(err, metadata)
	}
	return e.Extract(text, metadata), nil
}

// Extract parses statement text into transaction candidates and statement
// metadata. Extraction is best-effort: individual lines that fail every
// grammar are skipped and never raise an error.
func (e *Extractor) Extract(documentText string, metadata map[string]any) *Result {
	bank := DetectBank(documentText)
	assumedYear := normalize.AssumedYear(documentText)
	grammar := formatGrammars[bank.ID]

	var transactions []model.Transaction
	skipped := 0

	for _, raw := range strings.Split(documentText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isHeaderLine(line) {
			continue
		}

		var (
			txn model.Transaction
			ok  bool
		)
		if grammar != nil {
			txn, ok = tryGrammar(grammar, line, assumedYear)
		} else if looksLikeTransactionLine(line) {
			txn, ok = parseGenericLine(line, assumedYear)
		} else {
			continue
		}

		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, txn)
	}

	common.LogDebug("statement extracted", common.Fields{
		"bank":          bank.ID,
		"confidence":    bank.Confidence,
		"transactions":  len(transactions),
		"skipped_lines": skipped,
	})

	return &Result{
		Success: true,
		Statement: model.StatementMetadata{
			Bank:   bank,
			Period: findPeriod(documentText, assumedYear),
		},
		Transactions: transactions,
		Metadata:     e.resultMetadata(metadata, len(transactions)),
	}
}

// resultMetadata copies the caller's metadata bag and stamps it with
// extraction bookkeeping.
func (e *Extractor) resultMetadata(metadata map[string]any, total int) map[string]any {
	out := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		out[k] = v
	}
	out["totalTransactions"] = total
	out["processingDate"] = e.now().UTC()
	return out
}
