package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
)

// GetClassificationRules returns a user's rules in precedence order. The
// keywords column holds a JSON array written by assorted clients over the
// years, so each row goes through the model.ParseRule boundary: mistyped
// keyword entries are dropped there rather than failing the fetch.
func (s *SQLiteStorage) GetClassificationRules(ctx context.Context, userID string) ([]model.ClassificationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, keywords, amount_direction
		FROM classification_rules
		WHERE user_id = ?
		ORDER BY position, created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.ClassificationRule
	for rows.Next() {
		var id, category, keywordsJSON, direction string
		if err := rows.Scan(&id, &category, &keywordsJSON, &direction); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}

		var keywords any
		_ = json.Unmarshal([]byte(keywordsJSON), &keywords)

		result = append(result, model.ParseRule(map[string]any{
			"id":              id,
			"category":        category,
			"keywords":        keywords,
			"amountDirection": direction,
		}))
	}
	return result, rows.Err()
}

// SaveClassificationRule appends a rule at the end of the user's precedence
// order. Callers must clear the rule cache for this user afterward.
func (s *SQLiteStorage) SaveClassificationRule(ctx context.Context, userID string, rule model.ClassificationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	keywordsJSON, err := json.Marshal(rule.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	direction := rule.Direction
	if direction == "" {
		direction = model.DirectionAny
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO classification_rules (id, user_id, category, keywords, amount_direction, position)
		VALUES (?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(position) + 1 FROM classification_rules WHERE user_id = ?), 0))
	`, rule.ID, userID, rule.Category, string(keywordsJSON), string(direction), userID)
	if err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	return nil
}

// DeleteClassificationRule removes one rule. Callers must clear the rule
// cache for this user afterward.
func (s *SQLiteStorage) DeleteClassificationRule(ctx context.Context, userID, ruleID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(ruleID, "ruleID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM classification_rules WHERE user_id = ? AND id = ?`, userID, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %s: %w", ruleID, common.ErrNotFound)
	}
	return nil
}
