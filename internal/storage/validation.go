package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidRule        = errors.New("invalid classification rule")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if txn.Date.IsZero() {
			return fmt.Errorf("%w: transaction at index %d has no date", ErrInvalidTransaction, i)
		}
	}
	return nil
}

// validateRule validates a classification rule before persistence.
func validateRule(rule model.ClassificationRule) error {
	if strings.TrimSpace(rule.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidRule)
	}
	switch rule.Direction {
	case model.DirectionPositive, model.DirectionNegative, model.DirectionAny, "":
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidRule, rule.Direction)
	}
	return nil
}
