package finance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryUtilization(t *testing.T) {
	paid := func(categoryID string, amount string) EventExpenditure {
		return EventExpenditure{BudgetCategoryID: categoryID, Amount: dec(amount), Status: ExpenditurePaid}
	}

	tests := []struct {
		name         string
		category     BudgetCategory
		expenditures []EventExpenditure
		want         float64
	}{
		{
			name:         "Zero allocation with spend",
			category:     BudgetCategory{ID: "venue", AllocatedAmount: dec("0")},
			expenditures: []EventExpenditure{paid("venue", "500")},
			want:         0,
		},
		{
			name:     "No expenditures",
			category: BudgetCategory{ID: "venue", AllocatedAmount: dec("800")},
			want:     0,
		},
		{
			name:         "Full",
			category:     BudgetCategory{ID: "venue", AllocatedAmount: dec("800")},
			expenditures: []EventExpenditure{paid("venue", "800")},
			want:         1,
		},
		{
			name:         "Over",
			category:     BudgetCategory{ID: "venue", AllocatedAmount: dec("800")},
			expenditures: []EventExpenditure{paid("venue", "600"), paid("venue", "400")},
			want:         1.25,
		},
		{
			name:     "Ignores other categories and unpaid",
			category: BudgetCategory{ID: "venue", AllocatedAmount: dec("100")},
			expenditures: []EventExpenditure{
				paid("food", "100"),
				{BudgetCategoryID: "venue", Amount: dec("50"), Status: ExpenditureApproved},
				{BudgetCategoryID: "venue", Amount: dec("50"), Status: ExpenditurePending},
				{BudgetCategoryID: "venue", Amount: dec("50"), Status: ExpenditureRejected},
				paid("venue", "25"),
			},
			want: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryUtilization(tt.category, tt.expenditures)
			require.InDelta(t, tt.want, got, 1e-9)
			require.GreaterOrEqual(t, DisplayUtilization(got), 0.0)
			require.LessOrEqual(t, DisplayUtilization(got), 1.0)
		})
	}
}

func TestBudgetAllocatedTotal(t *testing.T) {
	budget := EventBudget{Categories: []BudgetCategory{
		{ID: "a", AllocatedAmount: dec("100.10")},
		{ID: "b", AllocatedAmount: dec("0.20")},
	}}
	require.True(t, BudgetAllocatedTotal(budget).Equal(dec("100.30")))
	require.True(t, BudgetAllocatedTotal(EventBudget{}).IsZero())
}

func TestItemsTotal(t *testing.T) {
	category := BudgetCategory{Items: []BudgetCategoryItem{
		{Quantity: dec("3"), EstimatedCost: dec("2.50")},
		{Quantity: dec("0.5"), EstimatedCost: dec("10")},
	}}
	require.True(t, ItemsTotal(category).Equal(dec("12.5")))
}

func TestFundraisingPercent(t *testing.T) {
	tests := []struct {
		name         string
		current      string
		target       string
		wantProgress float64
		wantFunded   float64
	}{
		{name: "Nothing raised", current: "0", target: "1000", wantProgress: 0, wantFunded: 0},
		{name: "Half", current: "500", target: "1000", wantProgress: 50, wantFunded: 50},
		{name: "Over target", current: "1400", target: "1000", wantProgress: 100, wantFunded: 140},
		{name: "Zero target", current: "100", target: "0", wantProgress: 0, wantFunded: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := EventFundraising{CurrentAmount: dec(tt.current), TargetAmount: dec(tt.target)}
			require.InDelta(t, tt.wantProgress, FundraisingProgressPercent(f), 1e-9)
			require.InDelta(t, tt.wantFunded, FundedPercent(f), 1e-9)
		})
	}
}

func TestMethodPercentage(t *testing.T) {
	methods := []MethodBreakdown{
		{Method: MethodOnline, Amount: dec("500")},
		{Method: MethodCash, Amount: dec("200")},
	}
	RecalculateMethodPercentages(methods)
	require.InDelta(t, 71.428571, methods[0].Percentage, 1e-5)
	require.InDelta(t, 28.571428, methods[1].Percentage, 1e-5)

	empty := []MethodBreakdown{{Method: MethodCash, Amount: dec("0")}}
	require.Equal(t, 0.0, MethodPercentage(empty[0], empty))
}

func TestBuildSummary(t *testing.T) {
	require.Nil(t, BuildSummary("evt1", nil, nil, nil))

	budget := &EventBudget{
		EventID:     "evt1",
		TotalBudget: dec("1000"),
		Currency:    "USD",
		Contingency: Contingency{Amount: dec("100"), Percentage: 10},
		Categories: []BudgetCategory{
			{ID: "venue", Name: "Venue", Priority: PriorityHigh, AllocatedAmount: dec("400")},
			{ID: "food", Name: "Food", Priority: PriorityLow, AllocatedAmount: dec("0")},
		},
	}
	expenditures := []EventExpenditure{
		{BudgetCategoryID: "venue", Amount: dec("300"), Status: ExpenditurePaid},
		{BudgetCategoryID: "venue", Amount: dec("50"), Status: ExpenditureApproved},
		{BudgetCategoryID: "food", Amount: dec("20"), Status: ExpenditurePending},
		{BudgetCategoryID: "food", Amount: dec("99"), Status: ExpenditureRejected},
	}

	summary := BuildSummary("evt1", budget, nil, expenditures)
	require.NotNil(t, summary)
	require.Equal(t, "USD", summary.Currency)
	require.True(t, summary.TotalAllocated.Equal(dec("400")))
	require.True(t, summary.Unallocated.Equal(dec("500")))
	require.True(t, summary.TotalSpent.Equal(dec("300")))
	require.True(t, summary.TotalCommitted.Equal(dec("50")))
	require.True(t, summary.TotalPending.Equal(dec("20")))
	require.True(t, summary.RemainingBudget.Equal(dec("700")))
	require.InDelta(t, 0.3, summary.BudgetUtilization, 1e-9)
	require.True(t, summary.NetPosition.Equal(dec("-300")))
	require.Empty(t, summary.Warnings)

	require.Len(t, summary.Categories, 2)
	venue := summary.Categories[0]
	require.InDelta(t, 0.75, venue.Utilization, 1e-9)
	require.InDelta(t, 40.0, venue.PercentOfBudget, 1e-9)
	require.True(t, venue.Remaining.Equal(dec("100")))
	require.True(t, venue.Committed.Equal(dec("50")))
	require.Equal(t, 0.0, summary.Categories[1].Utilization)
}
