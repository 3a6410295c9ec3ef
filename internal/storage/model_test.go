package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeLayoutSortsLexically(t *testing.T) {
	a := formatTime(time.Date(2026, 1, 2, 3, 4, 5, 100, time.UTC))
	b := formatTime(time.Date(2026, 1, 2, 3, 4, 5, 1000, time.UTC))
	require.Less(t, a, b)
	require.Len(t, a, len(b))

	parsed, err := parseTime(a)
	require.NoError(t, err)
	require.Equal(t, 100, parsed.Nanosecond())

	_, err = parseTime("yesterday")
	require.Error(t, err)
}

func TestMongoDocuments(t *testing.T) {
	budget := sampleBudget()
	gotBudget, err := newDocBudget(budget).toModel()
	require.NoError(t, err)
	require.True(t, gotBudget.TotalBudget.Equal(budget.TotalBudget))
	require.Len(t, gotBudget.Categories, 2)
	require.Len(t, gotBudget.Categories[0].Items, 2)
	require.True(t, gotBudget.Categories[0].Items[0].EstimatedCost.Equal(dec("750")))
	require.True(t, gotBudget.ApprovedDate.Equal(*budget.ApprovedDate))

	fundraising := sampleFundraising()
	gotFundraising, err := newDocFundraising(fundraising).toModel()
	require.NoError(t, err)
	require.True(t, gotFundraising.CurrentAmount.Equal(dec("700")))
	require.Len(t, gotFundraising.FundraisingMethods, 2)

	expenditure := sampleExpenditure("exp-1", testNow)
	expenditure.Tags = nil
	gotExpenditure, err := newDocExpenditure(expenditure).toModel()
	require.NoError(t, err)
	require.NotNil(t, gotExpenditure.Tags)
	require.True(t, gotExpenditure.Amount.Equal(expenditure.Amount))
}

func TestCorruptedAmount(t *testing.T) {
	doc := newDocExpenditure(sampleExpenditure("exp-1", testNow))
	doc.Amount = "12,50"
	_, err := doc.toModel()
	require.Error(t, err)
}
