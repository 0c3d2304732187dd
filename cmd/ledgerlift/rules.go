package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/cli"
	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/ledgerlift/ledgerlift/internal/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ruleCache lives for the process so rule mutations can invalidate it the
// moment they land, per the cache contract. Long-running callers embedding
// these commands share the same instance.
var ruleCache *rules.Cache

// sharedRuleCache returns the process-wide rule cache, creating it over the
// given store on first use.
func sharedRuleCache(store rules.Store) *rules.Cache {
	if ruleCache == nil {
		ruleCache = rules.NewCache(store)
	}
	return ruleCache
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
		Long: `Manage the keyword rules used to categorize transactions.

Rules are evaluated in the order they were created; the first rule whose
keyword matches a transaction wins. A rule may be restricted to income
(positive amounts) or expenses (negative amounts).`,
	}

	cmd.PersistentFlags().StringP("user", "u", "default", "User who owns the rules")
	_ = viper.BindPFlag("rules.user", cmd.PersistentFlags().Lookup("user"))

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesDeleteCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List classification rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := viper.GetString("rules.user")
			userRules, err := store.GetClassificationRules(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to load rules: %w", err)
			}

			if len(userRules) == 0 {
				fmt.Println(cli.FormatSubtle("No rules defined"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Rules for %s", userID)))
			for i, rule := range userRules {
				fmt.Printf("  %2d. [%s] %s  (%s)  keywords: %s\n",
					i+1, rule.ID, rule.Category, rule.Direction,
					strings.Join(rule.Keywords, ", "))
			}
			return nil
		},
	}
}

func rulesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a classification rule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category, _ := cmd.Flags().GetString("category")
			keywords, _ := cmd.Flags().GetStringSlice("keywords")
			direction, _ := cmd.Flags().GetString("direction")

			rule := model.ClassificationRule{
				ID:        fmt.Sprintf("r-%d", time.Now().UnixNano()),
				Category:  category,
				Keywords:  keywords,
				Direction: model.AmountDirection(direction),
			}

			userID := viper.GetString("rules.user")
			if err := store.SaveClassificationRule(ctx, userID, rule); err != nil {
				return fmt.Errorf("failed to save rule: %w", err)
			}
			invalidateRuleCache(userID)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added rule %s -> %s", rule.ID, rule.Category)))
			return nil
		},
	}

	cmd.Flags().StringP("category", "c", "", "Category the rule assigns")
	cmd.Flags().StringSliceP("keywords", "k", nil, "Keywords to match (comma-separated)")
	cmd.Flags().StringP("direction", "d", "any", "Amount direction: positive, negative, or any")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("keywords")

	return cmd
}

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <rule-id>",
		Short: "Delete a classification rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := viper.GetString("rules.user")
			if err := store.DeleteClassificationRule(ctx, userID, args[0]); err != nil {
				return fmt.Errorf("failed to delete rule: %w", err)
			}
			invalidateRuleCache(userID)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted rule %s", args[0])))
			return nil
		},
	}
}

// invalidateRuleCache clears a user's cached rules after a mutation so the
// TTL never serves stale rules past this point.
func invalidateRuleCache(userID string) {
	if ruleCache == nil {
		return
	}
	ruleCache.Clear(userID)
	common.LogDebug("rule cache cleared", common.Fields{"user_id": userID})
}
