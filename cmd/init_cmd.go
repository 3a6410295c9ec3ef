package cmd

import (
	"context"
	"fmt"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/contextutil"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagInitEvent    string
	flagInitTitle    string
	flagInitGoal     string
	flagInitCurrency string
	flagInitBudget   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the finances of an event",
	Long:  "Create the fundraising record of an event and, when --budget is given, its draft budget.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVarP(&flagInitEvent, "event", "e", "", "Event id")
	initCmd.Flags().StringVar(&flagInitTitle, "title", "", "Event title")
	initCmd.Flags().StringVar(&flagInitGoal, "goal", "0", "Fundraising goal")
	initCmd.Flags().StringVar(&flagInitCurrency, "currency", "", "ISO currency code (defaults to config)")
	initCmd.Flags().StringVar(&flagInitBudget, "budget", "", "Total budget; creates a draft budget when set")
	_ = initCmd.MarkFlagRequired("event")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	ctx := contextutil.WithActor(contextutil.WithTraceID(context.Background()), "cli")

	goal, err := decimal.NewFromString(flagInitGoal)
	if err != nil {
		return fmt.Errorf("invalid goal '%s': %w", flagInitGoal, err)
	}

	tracker, closeStorage, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStorage()

	event := finance.Event{
		ID:              flagInitEvent,
		Title:           flagInitTitle,
		FundraisingGoal: goal,
		Currency:        flagInitCurrency,
	}
	if err := tracker.InitializeEventFinances(ctx, event); err != nil {
		return fmt.Errorf("failed to initialize event: %s", appErrors.MessageOf(err))
	}
	fmt.Printf("  Finances of event '%s' initialized.\n", flagInitEvent)

	if flagInitBudget == "" {
		return nil
	}
	total, err := decimal.NewFromString(flagInitBudget)
	if err != nil {
		return fmt.Errorf("invalid budget '%s': %w", flagInitBudget, err)
	}
	budget, err := tracker.CreateBudget(ctx, flagInitEvent, total)
	if err != nil {
		return fmt.Errorf("failed to create budget: %s", appErrors.MessageOf(err))
	}
	fmt.Printf("  Draft budget of %s %s created.\n", budget.TotalBudget.StringFixed(2), budget.Currency)
	return nil
}
