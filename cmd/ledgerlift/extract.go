package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/cli"
	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/extract"
	"github.com/ledgerlift/ledgerlift/internal/pdftext"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract transactions from a bank statement",
		Long: `Extract structured transactions from a bank statement document.

PDF statements are decoded to text first; anything else is read as plain
text. Extracted transactions are stored locally for later categorization.
Lines that cannot be parsed are skipped; extraction is best-effort.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be extracted without saving")
	_ = viper.BindPFlag("extract.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return common.NewUserError(
			fmt.Sprintf("%s contains no statement text", filepath.Base(path)),
			common.ErrEmptyDocument)
	}

	metadata := map[string]any{
		"filename":   filepath.Base(path),
		"uploadedAt": time.Now().UTC(),
	}

	extractor := extract.New(pdftext.ForFilename(path))
	result, err := extractor.ExtractDocument(ctx, data, metadata)
	if err != nil {
		if errors.Is(err, common.ErrExtractionFailed) {
			fmt.Println(cli.FormatError("Could not extract text from document"))
		}
		return err
	}

	fmt.Println(cli.FormatTitle("Statement extracted"))
	fmt.Printf("  Bank: %s (confidence %.1f)\n", result.Statement.Bank.ID, result.Statement.Bank.Confidence)
	if period := result.Statement.Period; period != nil {
		fmt.Printf("  Period: %s - %s\n",
			period.Start.Format("2006-01-02"),
			period.End.Format("2006-01-02"))
	}
	fmt.Printf("  Transactions: %d\n", len(result.Transactions))

	if len(result.Transactions) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in statement"))
		return nil
	}

	if viper.GetBool("extract.dry_run") {
		for _, txn := range result.Transactions {
			fmt.Printf("  %s  %10.2f  %s\n",
				txn.Date.Format("2006-01-02"), txn.Amount, txn.Description)
		}
		fmt.Println(cli.FormatSubtle("Dry run: nothing saved"))
		return nil
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

	if err := store.SaveTransactions(ctx, result.Transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d transactions", len(result.Transactions))))
	return nil
}
