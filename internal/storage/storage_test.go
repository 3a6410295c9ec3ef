package storage

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC)

func sampleBudget() finance.EventBudget {
	approvedDate := testNow.Add(time.Hour)
	return finance.EventBudget{
		EventID:     "evt1",
		TotalBudget: dec("5000.50"),
		Currency:    "USD",
		Contingency: finance.Contingency{Amount: dec("500.05"), Percentage: 10},
		Categories: []finance.BudgetCategory{
			{
				ID:              "venue",
				Name:            "Venue",
				Description:     "Main hall",
				Priority:        finance.PriorityHigh,
				AllocatedAmount: dec("800"),
				Items: []finance.BudgetCategoryItem{
					{ID: "item-1", Name: "Hall", Quantity: dec("1"), Unit: "day", EstimatedCost: dec("750")},
					{ID: "item-2", Name: "Chairs", Quantity: dec("100"), Unit: "pcs", EstimatedCost: dec("0.5")},
				},
			},
			{
				ID:              "food",
				Name:            "Food",
				Priority:        finance.PriorityLow,
				AllocatedAmount: dec("1200.25"),
				Items:           []finance.BudgetCategoryItem{},
			},
		},
		ApprovalStatus: finance.ApprovalApproved,
		ApprovedBy:     "treasurer",
		ApprovedDate:   &approvedDate,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	}
}

func sampleFundraising() finance.EventFundraising {
	return finance.EventFundraising{
		EventID:       "evt1",
		TargetAmount:  dec("1000"),
		CurrentAmount: dec("700"),
		Currency:      "USD",
		FundraisingMethods: []finance.MethodBreakdown{
			{Method: finance.MethodOnline, Amount: dec("500"), Percentage: 71.42857142857143},
			{Method: finance.MethodCash, Amount: dec("200"), Percentage: 28.571428571428573},
		},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func sampleExpenditure(id string, date time.Time) finance.EventExpenditure {
	return finance.EventExpenditure{
		ID:               id,
		EventID:          "evt1",
		BudgetCategoryID: "venue",
		Amount:           dec("120.75"),
		Currency:         "USD",
		Description:      "Deposit",
		Date:             date,
		PaymentMethod:    "card",
		Vendor:           "Hall Inc",
		Status:           finance.ExpenditurePending,
		Tags:             []string{"deposit"},
		CreatedAt:        testNow,
		UpdatedAt:        testNow,
	}
}

// runStorageContract checks the behavior every finance.Storage backend must share.
func runStorageContract(t *testing.T, newStore func(t *testing.T) finance.Storage) {
	ctx := context.Background()

	t.Run("Missing records are NOT FOUND", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetBudget(ctx, "nope")
		require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound), "got %v", err)
		_, err = store.GetFundraising(ctx, "nope")
		require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound), "got %v", err)
		_, err = store.GetExpenditure(ctx, "nope", "x")
		require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound), "got %v", err)

		expenditures, err := store.GetExpenditures(ctx, "nope")
		require.NoError(t, err)
		require.Empty(t, expenditures)
	})

	t.Run("Budget round trip and replace", func(t *testing.T) {
		store := newStore(t)
		budget := sampleBudget()
		require.NoError(t, store.SaveBudget(ctx, budget))

		got, err := store.GetBudget(ctx, "evt1")
		require.NoError(t, err)
		require.Equal(t, budget.ApprovalStatus, got.ApprovalStatus)
		require.True(t, got.TotalBudget.Equal(budget.TotalBudget))
		require.True(t, got.Contingency.Amount.Equal(budget.Contingency.Amount))
		require.Equal(t, budget.Contingency.Percentage, got.Contingency.Percentage)
		require.NotNil(t, got.ApprovedDate)
		require.True(t, got.ApprovedDate.Equal(*budget.ApprovedDate))
		require.True(t, got.CreatedAt.Equal(testNow))
		require.Len(t, got.Categories, 2)
		require.Equal(t, "venue", got.Categories[0].ID)
		require.Len(t, got.Categories[0].Items, 2)
		require.Equal(t, "Chairs", got.Categories[0].Items[1].Name)
		require.True(t, got.Categories[0].Items[1].EstimatedCost.Equal(dec("0.5")))
		require.NotNil(t, got.Categories[1].Items)
		require.Empty(t, got.Categories[1].Items)

		// mutating the returned value does not leak into the store
		got.Categories[0].Items = got.Categories[0].Items[:1]
		got.Categories = got.Categories[:1]
		got.ApprovedDate = nil
		again, err := store.GetBudget(ctx, "evt1")
		require.NoError(t, err)
		require.Len(t, again.Categories, 2)

		require.NoError(t, store.SaveBudget(ctx, got))
		replaced, err := store.GetBudget(ctx, "evt1")
		require.NoError(t, err)
		require.Len(t, replaced.Categories, 1)
		require.Len(t, replaced.Categories[0].Items, 1)
		require.Nil(t, replaced.ApprovedDate)
	})

	t.Run("Fundraising and donations", func(t *testing.T) {
		store := newStore(t)
		fundraising := sampleFundraising()
		require.NoError(t, store.SaveFundraising(ctx, fundraising))

		fundraising.CurrentAmount = dec("750")
		fundraising.FundraisingMethods = append(fundraising.FundraisingMethods, finance.MethodBreakdown{Method: finance.MethodCard, Amount: dec("50")})
		finance.RecalculateMethodPercentages(fundraising.FundraisingMethods)
		donation := finance.DonationRecord{
			ID:         "don-1",
			EventID:    "evt1",
			DonorName:  "Anonymous",
			Amount:     dec("50"),
			Currency:   "USD",
			Method:     finance.MethodCard,
			ReceivedAt: testNow.Add(time.Minute),
		}
		require.NoError(t, store.RecordDonation(ctx, donation, fundraising))

		got, err := store.GetFundraising(ctx, "evt1")
		require.NoError(t, err)
		require.True(t, got.CurrentAmount.Equal(dec("750")))
		require.Len(t, got.FundraisingMethods, 3)
		require.Equal(t, finance.MethodOnline, got.FundraisingMethods[0].Method)
		require.InDelta(t, fundraising.FundraisingMethods[2].Percentage, got.FundraisingMethods[2].Percentage, 1e-9)

		donations, err := store.GetDonations(ctx, "evt1")
		require.NoError(t, err)
		require.Len(t, donations, 1)
		require.True(t, donations[0].Amount.Equal(dec("50")))
		require.Equal(t, finance.MethodCard, donations[0].Method)
	})

	t.Run("Expenditures upsert and order", func(t *testing.T) {
		store := newStore(t)
		later := sampleExpenditure("exp-2", testNow.AddDate(0, 0, 2))
		earlier := sampleExpenditure("exp-1", testNow)
		require.NoError(t, store.SaveExpenditure(ctx, later))
		require.NoError(t, store.SaveExpenditure(ctx, earlier))

		earlier.Status = finance.ExpenditureApproved
		earlier.ApprovedBy = "treasurer"
		require.NoError(t, store.SaveExpenditure(ctx, earlier))

		got, err := store.GetExpenditure(ctx, "evt1", "exp-1")
		require.NoError(t, err)
		require.Equal(t, finance.ExpenditureApproved, got.Status)
		require.Equal(t, "treasurer", got.ApprovedBy)
		require.Equal(t, []string{"deposit"}, got.Tags)
		require.True(t, got.Amount.Equal(dec("120.75")))

		_, err = store.GetExpenditure(ctx, "evt2", "exp-1")
		require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

		all, err := store.GetExpenditures(ctx, "evt1")
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("Delete event finances", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SaveBudget(ctx, sampleBudget()))
		require.NoError(t, store.SaveFundraising(ctx, sampleFundraising()))
		require.NoError(t, store.SaveExpenditure(ctx, sampleExpenditure("exp-1", testNow)))

		require.NoError(t, store.DeleteEventFinances(ctx, "evt1"))

		_, err := store.GetBudget(ctx, "evt1")
		require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
		_, err = store.GetFundraising(ctx, "evt1")
		require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
		expenditures, err := store.GetExpenditures(ctx, "evt1")
		require.NoError(t, err)
		require.Empty(t, expenditures)
	})
}

func TestInMemoryStorage(t *testing.T) {
	runStorageContract(t, func(t *testing.T) finance.Storage {
		return NewInMemoryStorage()
	})
}

func TestSQLStorage_SQLite(t *testing.T) {
	runStorageContract(t, func(t *testing.T) finance.Storage {
		db, err := OpenSQLite(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return NewSQLStorage(db, DriverSQLite)
	})
}

// The facade runs end to end on SQLite.
func TestFinanceTrackerOnSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ft := finance.NewFinanceTracker(NewSQLStorage(db, DriverSQLite), finance.Options{DefaultCurrency: "USD", DefaultContingencyPercent: 10})

	require.NoError(t, ft.InitializeEventFinances(ctx, finance.Event{ID: "evt1", FundraisingGoal: dec("1000")}))
	_, err = ft.CreateBudget(ctx, "evt1", dec("5000"))
	require.NoError(t, err)
	_, _, err = ft.AddBudgetCategory(ctx, "evt1", finance.CategoryRequest{Name: "Venue", AllocatedAmount: dec("800")})
	require.NoError(t, err)
	_, err = ft.AddDonation(ctx, "evt1", finance.Donation{DonorName: "John", Amount: dec("500"), Method: finance.MethodOnline})
	require.NoError(t, err)
	_, _, err = ft.AddExpenditure(ctx, finance.ExpenditureRequest{EventID: "evt1", BudgetCategoryID: "venue", Amount: dec("1000"), Status: finance.ExpenditurePaid})
	require.NoError(t, err)

	summary, err := ft.GetCategoryUtilization(ctx, "evt1", "venue")
	require.NoError(t, err)
	require.InDelta(t, 1.25, summary.Utilization, 1e-9)

	data, err := ft.GetEventFinancialData(ctx, "evt1")
	require.NoError(t, err)
	require.True(t, data.Summary.TotalSpent.Equal(dec("1000")))
	require.True(t, data.Summary.TotalRaised.Equal(dec("500")))

	donations, err := ft.ListDonations(ctx, "evt1")
	require.NoError(t, err)
	require.Len(t, donations, 1)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migration").Scan(&applied))
	files, err := getMigrationFiles()
	require.NoError(t, err)
	require.Equal(t, len(files), applied)
}

func TestFilterNewMigrations(t *testing.T) {
	all := []string{"001_a.sql", "002_b.sql", "003_c.sql"}
	require.Equal(t, all, filterNewMigrations(all, ""))
	require.Equal(t, []string{"003_c.sql"}, filterNewMigrations(all, "002_b.sql"))
	require.Empty(t, filterNewMigrations(all, "003_c.sql"))
}
