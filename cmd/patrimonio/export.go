package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"patrimonio/internal/cli"
	"patrimonio/internal/sheets"
	"patrimonio/internal/stats"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export aggregation results to Google Sheets",
		Long: `Export runs the same aggregation as analyze and writes the daily totals
and statistics series to a Google Sheet. Authentication comes from
PATRIMONIO_SHEETS_* environment variables (service account path or OAuth2
client credentials).`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("format", "f", "auto", "statement format (csv, ofx, auto)")
	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	config := sheets.DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		return err
	}

	transactions, err := loadTransactions(args[0], viper.GetString("export.format"))
	if err != nil {
		return err
	}

	result := stats.Aggregate(transactions)

	writer, err := sheets.NewWriter(ctx, config, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.Write(ctx, result); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	slog.Info(cli.FormatSuccess("Export complete"))
	return nil
}
