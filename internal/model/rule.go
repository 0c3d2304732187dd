package model

import "encoding/json"

// AmountDirection restricts a rule to income-only, expense-only, or either.
type AmountDirection string

const (
	// DirectionPositive matches amounts >= 0.
	DirectionPositive AmountDirection = "positive"
	// DirectionNegative matches amounts < 0.
	DirectionNegative AmountDirection = "negative"
	// DirectionAny matches any amount.
	DirectionAny AmountDirection = "any"
)

// Satisfies reports whether the given amount meets the direction constraint.
func (d AmountDirection) Satisfies(amount float64) bool {
	switch d {
	case DirectionPositive:
		return amount >= 0
	case DirectionNegative:
		return amount < 0
	default:
		return true
	}
}

// ClassificationRule is a user-defined keyword-to-category mapping with an
// optional amount-direction constraint. Rules are evaluated in store order;
// the first match wins.
type ClassificationRule struct {
	ID       string
	Category string
	Keywords []string
	// Direction defaults to DirectionAny when the stored rule omits it.
	Direction AmountDirection
}

// ParseRule validates one loosely-shaped rule document (as stored in the
// rule store) into a strict ClassificationRule. Rule documents written by
// older clients sometimes carry a missing or mistyped keywords field, or
// individual keyword entries that are not strings; those entries are dropped
// here so the matching loop never re-checks types. A rule that survives with
// zero keywords is legal and simply never matches.
func ParseRule(doc map[string]any) ClassificationRule {
	rule := ClassificationRule{Direction: DirectionAny}

	if id, ok := doc["id"].(string); ok {
		rule.ID = id
	}
	if cat, ok := doc["category"].(string); ok {
		rule.Category = cat
	}
	if dir, ok := doc["amountDirection"].(string); ok {
		switch AmountDirection(dir) {
		case DirectionPositive, DirectionNegative:
			rule.Direction = AmountDirection(dir)
		}
	}

	if raw, ok := doc["keywords"].([]any); ok {
		for _, kw := range raw {
			if s, ok := kw.(string); ok && s != "" {
				rule.Keywords = append(rule.Keywords, s)
			}
		}
	}

	return rule
}

// ParseRules decodes a JSON array of rule documents, preserving order.
// Documents that are not objects are skipped rather than failing the batch.
func ParseRules(data []byte) ([]ClassificationRule, error) {
	var docs []any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}

	rules := make([]ClassificationRule, 0, len(docs))
	for _, d := range docs {
		doc, ok := d.(map[string]any)
		if !ok {
			continue
		}
		rules = append(rules, ParseRule(doc))
	}
	return rules, nil
}
