package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/ledgerlift/ledgerlift/internal/cli"
	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/engine"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Categorize stored transactions",
		Long: `Categorize every stored transaction that has no category yet.

User rules are fetched once per batch through a short-lived cache and
applied in order; transactions no user rule matches fall back to the
built-in keyword table. Transactions nothing matches are left
uncategorized for manual review.`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("user", "u", "default", "User whose classification rules apply")
	cmd.Flags().IntP("workers", "w", 4, "Number of parallel classification workers")
	_ = viper.BindPFlag("classify.user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("classify.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("classify.user")
	workers := viper.GetInt("classify.workers")
	if workers < 1 {
		workers = 1
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", nil)
		}
	}()

	transactions, err := store.GetTransactionsToClassify(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println(cli.FormatSuccess("Nothing to classify"))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Classifying %d transactions", len(transactions))))

	eng := engine.New(sharedRuleCache(store))
	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying..."),
	)

	categorized, uncategorized, err := classifyBatch(ctx, store, eng, transactions, userID, workers,
		func() { _ = bar.Add(1) })
	fmt.Println()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categorized %d transactions", categorized)))
	if uncategorized > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transactions need manual review", uncategorized)))
	}
	return nil
}

// classifyBatch fans transactions out to a bounded worker pool and writes
// each non-empty category back through the store. A store failure is
// remembered and returned only after every in-flight result has been
// drained, so no worker is ever left blocked on the results channel.
func classifyBatch(ctx context.Context, store service.Storage, eng *engine.Engine,
	transactions []model.Transaction, userID string, workers int, progress func(),
) (categorized, uncategorized int, err error) {
	type outcome struct {
		id       string
		category string
	}

	jobs := make(chan model.Transaction)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for txn := range jobs {
				results <- outcome{id: txn.ID, category: eng.Classify(ctx, txn, userID)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, txn := range transactions {
			select {
			case jobs <- txn:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if progress != nil {
			progress()
		}
		if res.category == "" {
			uncategorized++
			continue
		}
		if err != nil {
			continue
		}
		if updateErr := store.UpdateTransactionCategory(ctx, res.id, res.category); updateErr != nil {
			err = fmt.Errorf("failed to store category: %w", updateErr)
			continue
		}
		categorized++
	}
	return categorized, uncategorized, err
}
