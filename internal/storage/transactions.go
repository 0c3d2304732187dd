package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/service"
)

// SaveTransactions saves extracted transactions. Duplicate lines (same
// hash) are ignored so re-extracting a statement is idempotent.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, description, payee, amount, source_line, category
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		hash := txn.GenerateHash()
		id := txn.ID
		if id == "" {
			id = hash
		}

		if _, err := stmt.ExecContext(ctx,
			id, hash, txn.Date, txn.Description, txn.Payee,
			txn.Amount, txn.SourceLine, txn.Category,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsToClassify returns stored transactions that have no
// category yet, oldest first.
func (s *SQLiteStorage) GetTransactionsToClassify(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, payee, amount, source_line, category
		FROM transactions
		WHERE category = ''
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactionByID fetches one transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, description, payee, amount, source_line, category
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactions returns transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := strings.Builder{}
	query.WriteString(`
		SELECT id, date, description, payee, amount, source_line, category
		FROM transactions
		WHERE 1=1
	`)
	var args []any

	if filter.StartDate != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, *filter.EndDate)
	}
	query.WriteString(" ORDER BY date DESC, id")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query.WriteString(" OFFSET ?")
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// UpdateTransactionCategory writes a classification result back.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, id, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category = ?, classified_at = CURRENT_TIMESTAMP WHERE id = ?`,
		category, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var payee, sourceLine sql.NullString
		if err := rows.Scan(&txn.ID, &txn.Date, &txn.Description, &payee,
			&txn.Amount, &sourceLine, &txn.Category); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Payee = payee.String
		txn.SourceLine = sourceLine.String
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

func scanTransaction(row *sql.Row) (model.Transaction, error) {
	var txn model.Transaction
	var payee, sourceLine sql.NullString
	err := row.Scan(&txn.ID, &txn.Date, &txn.Description, &payee,
		&txn.Amount, &sourceLine, &txn.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return txn, common.ErrNotFound
	}
	if err != nil {
		return txn, fmt.Errorf("failed to scan transaction: %w", err)
	}
	txn.Payee = payee.String
	txn.SourceLine = sourceLine.String
	return txn, nil
}
