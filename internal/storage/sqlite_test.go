package storage

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{
			Date:        time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			Description: "STARBUCKS COFFEE 2451",
			Payee:       "STARBUCKS COFFEE 2451",
			Amount:      -6.50,
			SourceLine:  "05/01 STARBUCKS COFFEE #2451 -6.50",
		},
		{
			Date:        time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC),
			Description: "SHELL OIL 5744 PORTLAND OR",
			Payee:       "SHELL OIL 5744",
			Amount:      -45.00,
			SourceLine:  "05/03 SHELL OIL 5744 PORTLAND OR (45.00)",
		},
	}
}

func TestSaveAndLoadTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, sampleTransactions()))

	unclassified, err := store.GetTransactionsToClassify(ctx)
	require.NoError(t, err)
	require.Len(t, unclassified, 2)
	assert.Equal(t, "STARBUCKS COFFEE 2451", unclassified[0].Description)
	assert.InDelta(t, -6.50, unclassified[0].Amount, 1e-9)
	assert.NotEmpty(t, unclassified[0].ID)
}

func TestSaveTransactionsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, sampleTransactions()))
	require.NoError(t, store.SaveTransactions(ctx, sampleTransactions()))

	all, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "re-saving the same statement must not duplicate rows")
}

func TestSaveTransactionsValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.ErrorIs(t, store.SaveTransactions(ctx, nil), ErrNilParameter)
	require.ErrorIs(t, store.SaveTransactions(ctx, []model.Transaction{}), ErrEmptySlice)
	require.ErrorIs(t, store.SaveTransactions(ctx, []model.Transaction{{Description: "no date"}}), ErrInvalidTransaction)
}

func TestUpdateTransactionCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, sampleTransactions()))
	unclassified, err := store.GetTransactionsToClassify(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpdateTransactionCategory(ctx, unclassified[0].ID, "Meals"))

	remaining, err := store.GetTransactionsToClassify(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	classified, err := store.GetTransactionByID(ctx, unclassified[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Meals", classified.Category)
}

func TestUpdateTransactionCategoryNotFound(t *testing.T) {
	store := newTestStorage(t)
	err := store.UpdateTransactionCategory(context.Background(), "missing", "Meals")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetTransactionsFilter(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTransactions(ctx, sampleTransactions()))

	cutoff := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)
	recent, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &cutoff})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "SHELL OIL 5744 PORTLAND OR", recent[0].Description)

	limited, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestClassificationRuleRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	first := model.ClassificationRule{
		ID:        "r1",
		Category:  "Meals",
		Keywords:  []string{"starbucks", "coffee"},
		Direction: model.DirectionNegative,
	}
	second := model.ClassificationRule{
		ID:       "r2",
		Category: "Subscriptions",
		Keywords: []string{"netflix"},
	}

	require.NoError(t, store.SaveClassificationRule(ctx, "u1", first))
	require.NoError(t, store.SaveClassificationRule(ctx, "u1", second))

	rules, err := store.GetClassificationRules(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "r1", rules[0].ID, "store order is precedence order")
	assert.Equal(t, []string{"starbucks", "coffee"}, rules[0].Keywords)
	assert.Equal(t, model.DirectionNegative, rules[0].Direction)
	assert.Equal(t, model.DirectionAny, rules[1].Direction, "missing direction defaults to any")
}

func TestClassificationRulesPerUser(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveClassificationRule(ctx, "u1",
		model.ClassificationRule{ID: "r1", Category: "Meals", Keywords: []string{"coffee"}}))

	other, err := store.GetClassificationRules(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteClassificationRule(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveClassificationRule(ctx, "u1",
		model.ClassificationRule{ID: "r1", Category: "Meals", Keywords: []string{"coffee"}}))

	require.NoError(t, store.DeleteClassificationRule(ctx, "u1", "r1"))
	require.ErrorIs(t, store.DeleteClassificationRule(ctx, "u1", "r1"), common.ErrNotFound)

	rules, err := store.GetClassificationRules(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestMalformedKeywordsColumnTolerated(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Simulate a rule written by an older client with a mistyped keywords
	// column. The fetch must succeed and the rule must come back inert.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO classification_rules (id, user_id, category, keywords, amount_direction, position)
		VALUES ('bad', 'u1', 'Meals', '"not-an-array"', 'any', 0)
	`)
	require.NoError(t, err)

	rules, err := store.GetClassificationRules(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Empty(t, rules[0].Keywords)
	assert.Equal(t, "Meals", rules[0].Category)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}
