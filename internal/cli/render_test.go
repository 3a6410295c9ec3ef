package cli

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		expected string
	}{
		{"0", "USD", "0.00 USD"},
		{"12.5", "USD", "12.50 USD"},
		{"1234.5", "EUR", "1,234.50 EUR"},
		{"1234567.891", "", "1,234,567.89"},
		{"-9876.1", "USD", "-9,876.10 USD"},
		{"100", "", "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	require.Equal(t, "125.0%", FormatPercent(1.25))
	require.Equal(t, "40.0%", FormatPercentValue(40))
}

func TestDisplayTables(t *testing.T) {
	for _, p := range []finance.Priority{finance.PriorityHigh, finance.PriorityMedium, finance.PriorityLow} {
		require.NotEqual(t, unknownDisplay, PriorityDisplay(p), p)
	}
	for _, s := range []finance.ApprovalStatus{finance.ApprovalDraft, finance.ApprovalPending, finance.ApprovalApproved, finance.ApprovalRejected} {
		require.NotEqual(t, unknownDisplay, ApprovalDisplay(s), s)
	}
	for _, s := range []finance.ExpenditureStatus{finance.ExpenditurePending, finance.ExpenditureApproved, finance.ExpenditurePaid, finance.ExpenditureRejected} {
		require.NotEqual(t, unknownDisplay, ExpenditureDisplay(s), s)
	}

	require.Equal(t, "HIGH", PriorityDisplay(finance.PriorityHigh).Label)
	require.Equal(t, unknownDisplay, PriorityDisplay("urgent"))
	require.Equal(t, unknownDisplay, ExpenditureDisplay("lost"))
}

func TestBar(t *testing.T) {
	tests := []struct {
		ratio  float64
		filled int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.25, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := Bar(tt.ratio, 10)
		require.Equal(t, 10, utf8.RuneCountInString(bar))
		require.Equal(t, tt.filled, strings.Count(bar, "█"))
	}
	require.Equal(t, "", Bar(0.5, 0))
}

func TestUtilizationColor(t *testing.T) {
	require.Equal(t, ColorGreen, UtilizationColor(0.5))
	require.Equal(t, ColorOrange, UtilizationColor(0.95))
	require.Equal(t, ColorRed, UtilizationColor(1.25))
}

func TestRenderSummary(t *testing.T) {
	require.Equal(t, "", RenderSummary(finance.EventFinancialData{}))

	budget := finance.EventBudget{
		EventID:        "gala",
		TotalBudget:    decimal.RequireFromString("5000"),
		Currency:       "USD",
		ApprovalStatus: finance.ApprovalApproved,
		Categories: []finance.BudgetCategory{
			{ID: "venue", Name: "Venue", Priority: finance.PriorityHigh, AllocatedAmount: decimal.RequireFromString("800")},
		},
	}
	fundraising := finance.EventFundraising{
		EventID:       "gala",
		TargetAmount:  decimal.RequireFromString("1000"),
		CurrentAmount: decimal.RequireFromString("250"),
		Currency:      "USD",
		FundraisingMethods: []finance.MethodBreakdown{
			{Method: finance.MethodCash, Amount: decimal.RequireFromString("250"), Percentage: 100},
		},
	}
	expenditures := []finance.EventExpenditure{
		{
			ID:               "e1",
			BudgetCategoryID: "venue",
			Amount:           decimal.RequireFromString("1000"),
			Currency:         "USD",
			Status:           finance.ExpenditurePaid,
			Date:             time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	data := finance.EventFinancialData{
		Budget:       &budget,
		Fundraising:  &fundraising,
		Expenditures: expenditures,
		Summary:      finance.BuildSummary("gala", &budget, &fundraising, expenditures),
	}

	out := RenderSummary(data)
	require.Contains(t, out, "EVENT FINANCES  gala")
	require.Contains(t, out, "APPROVED")
	require.Contains(t, out, "Venue")
	require.Contains(t, out, "5,000.00 USD")
	require.Contains(t, out, "125.0%")
	require.Contains(t, out, string(finance.WarningCategoryOverAllocated))
	require.Contains(t, out, "Raised")

	listing := RenderExpenditures(expenditures)
	require.Contains(t, listing, "2026-05-01")
	require.Contains(t, listing, "PAID")
	require.Contains(t, RenderExpenditures(nil), "No expenditures")
}
