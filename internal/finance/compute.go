package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// Everything in this file is derived from stored records on every call; nothing here is cached.

func ItemCost(item BudgetCategoryItem) decimal.Decimal {
	return item.EstimatedCost.Mul(item.Quantity)
}

func ItemsTotal(category BudgetCategory) decimal.Decimal {
	total := decimal.Zero
	for _, item := range category.Items {
		total = total.Add(ItemCost(item))
	}
	return total
}

func BudgetAllocatedTotal(budget EventBudget) decimal.Decimal {
	total := decimal.Zero
	for _, category := range budget.Categories {
		total = total.Add(category.AllocatedAmount)
	}
	return total
}

// CategorySpent sums paid expenditures of one category.
func CategorySpent(categoryID string, expenditures []EventExpenditure) decimal.Decimal {
	return sumByStatus(categoryID, expenditures, ExpenditurePaid)
}

// CategoryUtilization is paid spend over allocation as a ratio (1.0 == 100%).
// A zero allocation always yields 0.
func CategoryUtilization(category BudgetCategory, expenditures []EventExpenditure) float64 {
	if !category.AllocatedAmount.IsPositive() {
		return 0
	}
	return ratio(CategorySpent(category.ID, expenditures), category.AllocatedAmount)
}

// DisplayUtilization clamps a utilization ratio to [0, 1] for progress bars.
func DisplayUtilization(utilization float64) float64 {
	return clamp(utilization, 0, 1)
}

func CategoryPercentOfBudget(category BudgetCategory, budget EventBudget) float64 {
	return ratio(category.AllocatedAmount, budget.TotalBudget) * 100
}

// FundedPercent is the unclamped share of the target raised so far, e.g. 140 for 140%.
func FundedPercent(fundraising EventFundraising) float64 {
	return ratio(fundraising.CurrentAmount, fundraising.TargetAmount) * 100
}

// FundraisingProgressPercent is FundedPercent clamped to [0, 100] for display.
func FundraisingProgressPercent(fundraising EventFundraising) float64 {
	return clamp(FundedPercent(fundraising), 0, 100)
}

func MethodPercentage(method MethodBreakdown, all []MethodBreakdown) float64 {
	total := decimal.Zero
	for _, m := range all {
		total = total.Add(m.Amount)
	}
	return ratio(method.Amount, total) * 100
}

// RecalculateMethodPercentages rewrites every bucket's percentage from the current amounts.
func RecalculateMethodPercentages(methods []MethodBreakdown) {
	for i := range methods {
		methods[i].Percentage = MethodPercentage(methods[i], methods)
	}
}

// BuildSummary derives the financial report of one event. It returns nil when neither
// a budget nor a fundraising record exists.
func BuildSummary(eventID string, budget *EventBudget, fundraising *EventFundraising, expenditures []EventExpenditure) *EventFinancialSummary {
	if budget == nil && fundraising == nil {
		return nil
	}

	summary := EventFinancialSummary{
		EventID:         eventID,
		TotalBudget:     decimal.Zero,
		TotalAllocated:  decimal.Zero,
		Contingency:     decimal.Zero,
		Unallocated:     decimal.Zero,
		TotalSpent:      sumByStatus("", expenditures, ExpenditurePaid),
		TotalCommitted:  sumByStatus("", expenditures, ExpenditureApproved),
		TotalPending:    sumByStatus("", expenditures, ExpenditurePending),
		RemainingBudget: decimal.Zero,
		TotalRaised:     decimal.Zero,
		TargetAmount:    decimal.Zero,
		RemainingToGoal: decimal.Zero,
		Categories:      []CategorySummary{},
		Warnings:        []ConflictWarning{},
	}

	if budget != nil {
		summary.Currency = budget.Currency
		summary.TotalBudget = budget.TotalBudget
		summary.TotalAllocated = BudgetAllocatedTotal(*budget)
		summary.Contingency = budget.Contingency.Amount
		summary.Unallocated = budget.TotalBudget.Sub(summary.TotalAllocated).Sub(budget.Contingency.Amount)
		summary.RemainingBudget = budget.TotalBudget.Sub(summary.TotalSpent)
		summary.BudgetUtilization = ratio(summary.TotalSpent, budget.TotalBudget)
		summary.Warnings = append(summary.Warnings, BudgetWarnings(*budget)...)

		for _, category := range budget.Categories {
			categorySummary := summarizeCategory(category, *budget, expenditures)
			summary.Categories = append(summary.Categories, categorySummary)
			if categorySummary.OverAllocated {
				summary.Warnings = append(summary.Warnings, ConflictWarning{
					Kind:       WarningCategoryOverAllocated,
					CategoryID: category.ID,
					Limit:      category.AllocatedAmount,
					Actual:     categorySummary.Spent,
				})
			}
		}
	}

	if fundraising != nil {
		if summary.Currency == "" {
			summary.Currency = fundraising.Currency
		}
		summary.TotalRaised = fundraising.CurrentAmount
		summary.TargetAmount = fundraising.TargetAmount
		summary.RemainingToGoal = decimal.Max(fundraising.TargetAmount.Sub(fundraising.CurrentAmount), decimal.Zero)
		summary.FundraisingProgress = FundraisingProgressPercent(*fundraising)
		summary.FundedPercent = FundedPercent(*fundraising)
	}

	summary.NetPosition = summary.TotalRaised.Sub(summary.TotalSpent)
	return &summary
}

func summarizeCategory(category BudgetCategory, budget EventBudget, expenditures []EventExpenditure) CategorySummary {
	spent := CategorySpent(category.ID, expenditures)
	utilization := CategoryUtilization(category, expenditures)
	return CategorySummary{
		CategoryID:         category.ID,
		Name:               category.Name,
		Priority:           category.Priority,
		Allocated:          category.AllocatedAmount,
		ItemsTotal:         ItemsTotal(category),
		Spent:              spent,
		Committed:          sumByStatus(category.ID, expenditures, ExpenditureApproved),
		Remaining:          category.AllocatedAmount.Sub(spent),
		Utilization:        utilization,
		DisplayUtilization: DisplayUtilization(utilization),
		PercentOfBudget:    CategoryPercentOfBudget(category, budget),
		OverAllocated:      spent.GreaterThan(category.AllocatedAmount),
	}
}

// sumByStatus adds up expenditures in any of statuses; an empty categoryID matches every category.
func sumByStatus(categoryID string, expenditures []EventExpenditure, statuses ...ExpenditureStatus) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenditures {
		if categoryID != "" && e.BudgetCategoryID != categoryID {
			continue
		}
		for _, status := range statuses {
			if e.Status == status {
				total = total.Add(e.Amount)
				break
			}
		}
	}
	return total
}

func ratio(numerator, denominator decimal.Decimal) float64 {
	if denominator.IsZero() {
		return 0
	}
	f, _ := numerator.Div(denominator).Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
