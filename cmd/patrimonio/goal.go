package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"patrimonio/internal/cli"
	"patrimonio/internal/common"
	"patrimonio/internal/stats"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal <file>",
		Short: "Project a savings goal against a statement file",
		Long: `Goal anchors on the balance at (or immediately before) the chosen start
date, derives monthly and annual saving capacity from income and fixed
costs, and projects the final balance once the goal is met. The goal
defaults to the annual capacity unless --target overrides it.`,
		Args: cobra.ExactArgs(1),
		RunE: runGoal,
	}

	cmd.Flags().StringP("format", "f", "auto", "statement format (csv, ofx, auto)")
	cmd.Flags().String("start", "", "goal start date (format: 2006-01-02)")
	cmd.Flags().Float64("fixed-costs", 0, "fixed monthly costs")
	cmd.Flags().Float64("gross-income", 0, "gross monthly income (informational)")
	cmd.Flags().Float64("net-income", 0, "net monthly income")
	cmd.Flags().Float64("target", 0, "goal amount (default: annual capacity)")
	_ = cmd.MarkFlagRequired("start")

	_ = viper.BindPFlag("goal.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runGoal(cmd *cobra.Command, args []string) error {
	startStr, _ := cmd.Flags().GetString("start")
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	transactions, err := loadTransactions(args[0], viper.GetString("goal.format"))
	if err != nil {
		return err
	}

	result := stats.Aggregate(transactions)

	fixedCosts, _ := cmd.Flags().GetFloat64("fixed-costs")
	grossIncome, _ := cmd.Flags().GetFloat64("gross-income")
	netIncome, _ := cmd.Flags().GetFloat64("net-income")

	input := stats.GoalInput{
		StartDate:   start,
		FixedCosts:  fixedCosts,
		GrossIncome: grossIncome,
		NetIncome:   netIncome,
	}
	if cmd.Flags().Changed("target") {
		target, _ := cmd.Flags().GetFloat64("target")
		input.Target = &target
	}

	projection, err := stats.Project(result.Series, input)
	if err != nil {
		if errors.Is(err, common.ErrNoPriorData) {
			return common.NewUserError(
				fmt.Sprintf("goal start date predates all data: choose a date on or after %s", firstDate(result)),
				err)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderProjection(projection))
	return nil
}

func firstDate(result *stats.Result) string {
	if len(result.Daily) == 0 {
		return "(no data)"
	}
	return result.Daily[0].Date.Format("2006-01-02")
}
