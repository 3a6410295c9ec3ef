package finance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBudgetWarnings(t *testing.T) {
	budget := func(total string, allocations ...string) EventBudget {
		b := EventBudget{TotalBudget: dec(total), Contingency: contingencyOf(dec(total), 10)}
		for i, a := range allocations {
			b.Categories = append(b.Categories, BudgetCategory{ID: string(rune('a' + i)), AllocatedAmount: dec(a)})
		}
		return b
	}

	tests := []struct {
		name  string
		input EventBudget
		want  []WarningKind
	}{
		{name: "Empty budget", input: budget("1000"), want: []WarningKind{}},
		{name: "Fits outside contingency", input: budget("1000", "500", "400"), want: []WarningKind{}},
		{name: "Eats contingency", input: budget("1000", "500", "450"), want: []WarningKind{WarningContingencyEncroached}},
		{name: "Over total", input: budget("1000", "800", "300"), want: []WarningKind{WarningBudgetOverAllocated}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := BudgetWarnings(tt.input)
			require.NotNil(t, warnings)
			kinds := []WarningKind{}
			for _, w := range warnings {
				kinds = append(kinds, w.Kind)
			}
			require.Equal(t, tt.want, kinds)
		})
	}
}

func TestBudgetWarnings_Items(t *testing.T) {
	b := EventBudget{
		TotalBudget: dec("1000"),
		Categories: []BudgetCategory{{
			ID:              "venue",
			AllocatedAmount: dec("100"),
			Items:           []BudgetCategoryItem{{Quantity: dec("11"), EstimatedCost: dec("10")}},
		}},
	}
	warnings := BudgetWarnings(b)
	require.Len(t, warnings, 1)
	require.Equal(t, WarningItemsExceedAllocation, warnings[0].Kind)
	require.Equal(t, "venue", warnings[0].CategoryID)
	require.True(t, warnings[0].Actual.Equal(dec("110")))
}

func TestExpenditureWarnings(t *testing.T) {
	category := BudgetCategory{ID: "venue", AllocatedAmount: dec("100")}

	within := []EventExpenditure{
		{BudgetCategoryID: "venue", Amount: dec("60"), Status: ExpenditurePaid},
		{BudgetCategoryID: "venue", Amount: dec("500"), Status: ExpenditureRejected},
		{BudgetCategoryID: "food", Amount: dec("500"), Status: ExpenditurePaid},
	}
	require.Empty(t, ExpenditureWarnings(category, within))

	over := append(within, EventExpenditure{BudgetCategoryID: "venue", Amount: dec("41"), Status: ExpenditurePending})
	warnings := ExpenditureWarnings(category, over)
	require.Len(t, warnings, 1)
	require.Equal(t, WarningExpenditureExceedsAllocation, warnings[0].Kind)
	require.True(t, warnings[0].Actual.Equal(dec("101")))
}
