// Package rules provides access to user-defined classification rules,
// fronted by a time-bounded per-user cache.
package rules

import (
	"context"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

// Store is the external rule-store collaborator. Rules come back in the
// order the store defines; that order is the rule precedence.
type Store interface {
	GetClassificationRules(ctx context.Context, userID string) ([]model.ClassificationRule, error)
}
