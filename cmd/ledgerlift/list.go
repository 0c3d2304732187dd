package main

import (
	"fmt"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/cli"
	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		Long:  `List stored transactions, newest first, with their categories.`,
		RunE:  runList,
	}

	cmd.Flags().IntP("limit", "n", 50, "Maximum number of transactions to show")
	cmd.Flags().String("since", "", "Only show transactions on or after this date (YYYY-MM-DD)")
	_ = viper.BindPFlag("list.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("list.since", cmd.Flags().Lookup("since"))

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter := service.TransactionFilter{Limit: viper.GetInt("list.limit")}
	if since := viper.GetString("list.since"); since != "" {
		start, err := time.Parse("2006-01-02", since)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("invalid --since date %q, want YYYY-MM-DD", since), err)
		}
		filter.StartDate = &start
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

	transactions, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println(cli.FormatSubtle("No transactions stored"))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%d transactions", len(transactions))))
	for _, txn := range transactions {
		category := txn.Category
		if category == "" {
			category = cli.FormatSubtle("uncategorized")
		}
		fmt.Printf("  %s  %10.2f  %-40s  %s\n",
			txn.Date.Format("2006-01-02"), txn.Amount, txn.Description, category)
	}
	return nil
}
