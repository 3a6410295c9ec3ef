package cmd

import (
	"context"
	"fmt"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/cli"
	"github.com/fatali-fataliyev/event_finance/internal/contextutil"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/spf13/cobra"
)

var (
	flagSummaryEvent        string
	flagSummaryExpenditures bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the financial summary of an event",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&flagSummaryEvent, "event", "e", "", "Event id")
	summaryCmd.Flags().BoolVar(&flagSummaryExpenditures, "expenditures", false, "Also list expenditures")
	_ = summaryCmd.MarkFlagRequired("event")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	ctx := contextutil.WithTraceID(context.Background())

	tracker, closeStorage, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStorage()

	data, err := tracker.GetEventFinancialData(ctx, flagSummaryEvent)
	if err != nil {
		return fmt.Errorf("failed to load finances: %s", appErrors.MessageOf(err))
	}
	if data.Budget == nil && data.Fundraising == nil {
		fmt.Printf("\n  No finances recorded for event '%s'.\n", flagSummaryEvent)
		fmt.Println("  Run `event_finance init --event <id>` first.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderSummary(data))

	if flagSummaryExpenditures {
		expenditures, err := tracker.ListExpenditures(ctx, flagSummaryEvent, finance.ExpenditureFilter{})
		if err != nil {
			return fmt.Errorf("failed to list expenditures: %s", appErrors.MessageOf(err))
		}
		fmt.Println()
		fmt.Print(cli.RenderExpenditures(expenditures))
	}
	fmt.Println()
	return nil
}
