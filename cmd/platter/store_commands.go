package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"platter/internal/store"
)

func newStoreCommand(ctx *commandContext) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Store inventory building and pricing",
	}

	storeCmd.AddCommand(newStoreBuildCommand(ctx))
	storeCmd.AddCommand(newStoreSyncCommand(ctx))
	storeCmd.AddCommand(newStoreExportSheetCommand(ctx))
	storeCmd.AddCommand(newStoreApplyPricesCommand(ctx))

	return storeCmd
}

func newStoreBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the inventory from gallery CSV exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := storeBuilder(ctx)
			if err != nil {
				return err
			}
			result, err := builder.BuildFromCSV(cmd.Context())
			if err != nil {
				return err
			}
			printBuildSummary(cmd, result)
			return nil
		},
	}
}

func newStoreSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the inventory from the Discogs collection API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDiscogs(); err != nil {
				return err
			}
			builder, err := storeBuilder(ctx)
			if err != nil {
				return err
			}
			result, err := builder.SyncFromDiscogs(cmd.Context())
			if err != nil {
				return err
			}
			printBuildSummary(cmd, result)
			printPricingDiagnostics(cmd, result.Stats)
			return nil
		},
	}
}

func newStoreExportSheetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export-sheet",
		Short: "Export the price sheet CSV, preserving hand-entered fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			files, err := store.DiscoverRecordsCSVs(cfg.Paths.GalleryDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no records.csv found under %s", cfg.Paths.GalleryDir)
			}
			rows, err := store.ReadRecordsCSVs(files)
			if err != nil {
				return err
			}
			agg := store.Aggregate(rows, store.Options{
				SaleFolderPrefix: cfg.Store.SaleFolderPrefix,
				MinYear:          cfg.Store.MinYear,
			})
			groups := agg.Groups()
			items := make([]store.Item, 0, len(groups))
			for _, group := range groups {
				items = append(items, group.Item)
			}
			count, err := store.ExportPriceSheet(cfg.PriceSheetPath(), items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", count, cfg.PriceSheetPath())
			return nil
		},
	}
}

func newStoreApplyPricesCommand(ctx *commandContext) *cobra.Command {
	var sheetPath string

	cmd := &cobra.Command{
		Use:   "apply-prices",
		Short: "Apply sheet prices to the inventory by variant release ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sheet := sheetPath
			if sheet == "" {
				sheet = cfg.PriceSheetPath()
			}
			result, err := store.ApplyPrices(sheet, cfg.StoreInventoryPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Matched %d items, updated %d\n", result.Matched, result.Updated)
			if result.BackupPath != "" {
				fmt.Fprintf(out, "Backup written to %s\n", result.BackupPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetPath, "sheet", "", "Price sheet CSV to apply")
	return cmd
}

func storeBuilder(ctx *commandContext) (*store.Builder, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return store.NewBuilder(cfg, logger), nil
}

func printBuildSummary(cmd *cobra.Command, result *store.Result) {
	out := cmd.OutOrStdout()
	rows := [][]string{
		{"Items", strconv.Itoa(len(result.Items))},
		{"Groups", strconv.Itoa(result.Stats.Groups)},
		{"Duplicate rows", strconv.Itoa(result.Stats.DupRows)},
		{"Images copied", strconv.Itoa(result.Stats.ImagesCopied)},
		{"Inventory", result.InventoryPath},
	}
	if result.BackupPath != "" {
		rows = append(rows, []string{"Backup", result.BackupPath})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Summary", ""},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	))
}

func printPricingDiagnostics(cmd *cobra.Command, stats store.Stats) {
	out := cmd.OutOrStdout()
	for _, line := range renderSectionHeader("Pricing diagnostics", shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
	rows := [][]string{
		{"groups", strconv.Itoa(stats.Groups)},
		{"pages", strconv.Itoa(stats.Pages)},
		{"median_ok", strconv.Itoa(stats.MedianOK)},
		{"median_missing", strconv.Itoa(stats.MedianMissing)},
		{"median_errors", strconv.Itoa(stats.MedianErrors)},
		{"http_401", strconv.Itoa(stats.HTTP401)},
		{"http_403", strconv.Itoa(stats.HTTP403)},
		{"http_404", strconv.Itoa(stats.HTTP404)},
		{"http_429", strconv.Itoa(stats.HTTP429)},
		{"http_other", strconv.Itoa(stats.HTTPOther)},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Counter", "Value"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}
