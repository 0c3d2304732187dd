// Package engine implements the core classification engine for categorizing
// transactions.
package engine

import (
	"context"
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/rules"
)

// Engine assigns categories to transactions by scanning the user's rules
// (cache-backed, first match wins in store order) and then the built-in
// fallback table. It never fails a transaction: an unavailable rule store
// degrades to fallback-only classification, and a transaction nothing
// matches gets the empty-string category.
type Engine struct {
	cache *rules.Cache
}

// New creates a classification engine over the given rule cache.
func New(cache *rules.Cache) *Engine {
	return &Engine{cache: cache}
}

// Classify returns the category for one transaction. The empty string is a
// valid result meaning no rule matched ("needs manual review").
func (e *Engine) Classify(ctx context.Context, txn model.Transaction, userID string) string {
	searchText := strings.ToLower(txn.Description + " " + txn.Payee)

	userRules, err := e.cache.GetRules(ctx, userID)
	if err != nil {
		// Recoverable degradation: log and fall through to the fallback
		// table rather than failing the batch.
		common.LogWarn("rule fetch failed, using fallback rules only", common.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
		userRules = nil
	}

	for _, rule := range userRules {
		if !rule.Direction.Satisfies(txn.Amount) {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(searchText, strings.ToLower(keyword)) {
				return rule.Category
			}
		}
	}

	for _, fallback := range fallbackRules {
		for _, keyword := range fallback.keywords {
			if strings.Contains(searchText, keyword) {
				return fallback.category
			}
		}
	}

	return ""
}

// ClassifyDocument classifies a loosely-shaped transaction document as
// delivered by external callers, whose amount sometimes arrives as a
// numeric string. Missing fields are treated as empty; an uncoercible
// amount is treated as zero.
func (e *Engine) ClassifyDocument(ctx context.Context, doc map[string]any, userID string) string {
	var txn model.Transaction
	if s, ok := doc["description"].(string); ok {
		txn.Description = s
	}
	if s, ok := doc["payee"].(string); ok {
		txn.Payee = s
	}
	if amount, ok := model.CoerceAmount(doc["amount"]); ok {
		txn.Amount = amount
	}
	return e.Classify(ctx, txn, userID)
}
