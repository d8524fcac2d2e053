package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"patrimonio/internal/cli"
	"patrimonio/internal/stats"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Aggregate a statement file into balance tables",
		Long: `Analyze ingests a CSV (or OFX) statement, computes per-date totals, the
per-institution pivot and trailing-window statistics, and renders them as
tables. A malformed row rejects the whole file; nothing renders partially.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("format", "f", "auto", "statement format (csv, ofx, auto)")
	cmd.Flags().String("section", "all", "which tables to render (all, daily, institutions, stats)")
	cmd.Flags().String("date", "", "render the institution distribution at this date (format: 2006-01-02)")

	_ = viper.BindPFlag("analyze.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("analyze.section", cmd.Flags().Lookup("section"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	transactions, err := loadTransactions(args[0], viper.GetString("analyze.format"))
	if err != nil {
		return err
	}

	slog.Info("loaded statement", "file", args[0], "transactions", len(transactions))

	result := stats.Aggregate(transactions)
	out := cmd.OutOrStdout()
	section := viper.GetString("analyze.section")

	if section == "all" || section == "daily" {
		fmt.Fprintln(out, cli.FormatTitle("Daily totals"))
		fmt.Fprintln(out, cli.RenderDailyTable(result.Daily))
	}

	if section == "all" || section == "institutions" {
		fmt.Fprintln(out, cli.FormatTitle("Institutions"))
		fmt.Fprintln(out, cli.RenderMatrixTable(result.Matrix))
	}

	if section == "all" || section == "stats" {
		fmt.Fprintln(out, cli.FormatTitle("General statistics"))
		fmt.Fprintln(out, cli.RenderStatsTable(result.Series))
	}

	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		date, parseErr := time.Parse("2006-01-02", dateStr)
		if parseErr != nil {
			return fmt.Errorf("invalid --date: %w", parseErr)
		}

		row, ok := result.Matrix.Row(date)
		if !ok {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("no data on %s: pick a date from the series", dateStr)))
		} else {
			fmt.Fprintln(out, cli.FormatTitle("Distribution on "+dateStr))
			fmt.Fprintln(out, cli.RenderSnapshot(result.Matrix, row))
		}
	}

	return nil
}
