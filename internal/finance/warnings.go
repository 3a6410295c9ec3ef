package finance

import "github.com/shopspring/decimal"

type WarningKind string

const (
	// Paid spend in a category is above its allocation.
	WarningCategoryOverAllocated WarningKind = "category_over_allocated"
	// Recorded (non-rejected) spend in a category went above its allocation on write.
	WarningExpenditureExceedsAllocation WarningKind = "expenditure_exceeds_allocation"
	// Sum of category allocations is above the total budget.
	WarningBudgetOverAllocated WarningKind = "budget_over_allocated"
	// Allocations fit the total but eat into the contingency reserve.
	WarningContingencyEncroached WarningKind = "contingency_encroached"
	// Line items cost more than the category allocation.
	WarningItemsExceedAllocation WarningKind = "items_exceed_allocation"
)

// ConflictWarning is a non-fatal finding reported alongside a successful write or in a summary.
type ConflictWarning struct {
	Kind       WarningKind     `json:"kind"`
	CategoryID string          `json:"category_id,omitempty"`
	Limit      decimal.Decimal `json:"limit"`
	Actual     decimal.Decimal `json:"actual"`
}

// BudgetWarnings checks category allocations against the total and the contingency reserve.
func BudgetWarnings(budget EventBudget) []ConflictWarning {
	warnings := []ConflictWarning{}
	allocated := BudgetAllocatedTotal(budget)

	switch {
	case allocated.GreaterThan(budget.TotalBudget):
		warnings = append(warnings, ConflictWarning{
			Kind:   WarningBudgetOverAllocated,
			Limit:  budget.TotalBudget,
			Actual: allocated,
		})
	case allocated.GreaterThan(budget.TotalBudget.Sub(budget.Contingency.Amount)):
		warnings = append(warnings, ConflictWarning{
			Kind:   WarningContingencyEncroached,
			Limit:  budget.TotalBudget.Sub(budget.Contingency.Amount),
			Actual: allocated,
		})
	}

	for _, category := range budget.Categories {
		itemsTotal := ItemsTotal(category)
		if itemsTotal.GreaterThan(category.AllocatedAmount) {
			warnings = append(warnings, ConflictWarning{
				Kind:       WarningItemsExceedAllocation,
				CategoryID: category.ID,
				Limit:      category.AllocatedAmount,
				Actual:     itemsTotal,
			})
		}
	}
	return warnings
}

// ExpenditureWarnings reports when the recorded spend of a category exceeds its allocation.
func ExpenditureWarnings(category BudgetCategory, expenditures []EventExpenditure) []ConflictWarning {
	recorded := sumByStatus(category.ID, expenditures, ExpenditurePending, ExpenditureApproved, ExpenditurePaid)
	if recorded.GreaterThan(category.AllocatedAmount) {
		return []ConflictWarning{{
			Kind:       WarningExpenditureExceedsAllocation,
			CategoryID: category.ID,
			Limit:      category.AllocatedAmount,
			Actual:     recorded,
		}}
	}
	return []ConflictWarning{}
}
