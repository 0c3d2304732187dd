// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionsToClassify(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, id, category string) error

	// Classification rule operations
	GetClassificationRules(ctx context.Context, userID string) ([]model.ClassificationRule, error)
	SaveClassificationRule(ctx context.Context, userID string, rule model.ClassificationRule) error
	DeleteClassificationRule(ctx context.Context, userID, ruleID string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
