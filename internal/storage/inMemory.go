package storage

import (
	"context"
	"sync"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
)

// InMemoryStorage keeps every record in maps keyed by event id. Values are copied on the way
// in and out so callers never share slices with the store.
type InMemoryStorage struct {
	mu           sync.RWMutex
	fundraising  map[string]finance.EventFundraising
	budgets      map[string]finance.EventBudget
	expenditures map[string][]finance.EventExpenditure
	donations    map[string][]finance.DonationRecord
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		fundraising:  map[string]finance.EventFundraising{},
		budgets:      map[string]finance.EventBudget{},
		expenditures: map[string][]finance.EventExpenditure{},
		donations:    map[string][]finance.DonationRecord{},
	}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) SaveFundraising(ctx context.Context, f finance.EventFundraising) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	inMem.fundraising[f.EventID] = copyFundraising(f)
	return nil
}

func (inMem *InMemoryStorage) GetFundraising(ctx context.Context, eventID string) (finance.EventFundraising, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	f, ok := inMem.fundraising[eventID]
	if !ok {
		return finance.EventFundraising{}, appErrors.New(appErrors.ErrNotFound, "fundraising for event '%s' not found", eventID)
	}
	return copyFundraising(f), nil
}

func (inMem *InMemoryStorage) RecordDonation(ctx context.Context, d finance.DonationRecord, f finance.EventFundraising) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	inMem.fundraising[f.EventID] = copyFundraising(f)
	inMem.donations[d.EventID] = append(inMem.donations[d.EventID], d)
	return nil
}

func (inMem *InMemoryStorage) GetDonations(ctx context.Context, eventID string) ([]finance.DonationRecord, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	result := make([]finance.DonationRecord, len(inMem.donations[eventID]))
	copy(result, inMem.donations[eventID])
	return result, nil
}

func (inMem *InMemoryStorage) SaveBudget(ctx context.Context, b finance.EventBudget) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	inMem.budgets[b.EventID] = copyBudget(b)
	return nil
}

func (inMem *InMemoryStorage) GetBudget(ctx context.Context, eventID string) (finance.EventBudget, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	b, ok := inMem.budgets[eventID]
	if !ok {
		return finance.EventBudget{}, appErrors.New(appErrors.ErrNotFound, "budget for event '%s' not found", eventID)
	}
	return copyBudget(b), nil
}

func (inMem *InMemoryStorage) SaveExpenditure(ctx context.Context, e finance.EventExpenditure) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	e = copyExpenditure(e)
	list := inMem.expenditures[e.EventID]
	for i := range list {
		if list[i].ID == e.ID {
			list[i] = e
			return nil
		}
	}
	inMem.expenditures[e.EventID] = append(list, e)
	return nil
}

func (inMem *InMemoryStorage) GetExpenditure(ctx context.Context, eventID string, expenditureID string) (finance.EventExpenditure, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	for _, e := range inMem.expenditures[eventID] {
		if e.ID == expenditureID {
			return copyExpenditure(e), nil
		}
	}
	return finance.EventExpenditure{}, appErrors.New(appErrors.ErrNotFound, "expenditure '%s' not found", expenditureID)
}

func (inMem *InMemoryStorage) GetExpenditures(ctx context.Context, eventID string) ([]finance.EventExpenditure, error) {
	inMem.mu.RLock()
	defer inMem.mu.RUnlock()

	result := make([]finance.EventExpenditure, 0, len(inMem.expenditures[eventID]))
	for _, e := range inMem.expenditures[eventID] {
		result = append(result, copyExpenditure(e))
	}
	return result, nil
}

func (inMem *InMemoryStorage) DeleteEventFinances(ctx context.Context, eventID string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	delete(inMem.fundraising, eventID)
	delete(inMem.budgets, eventID)
	delete(inMem.expenditures, eventID)
	delete(inMem.donations, eventID)
	return nil
}

func copyFundraising(f finance.EventFundraising) finance.EventFundraising {
	methods := make([]finance.MethodBreakdown, len(f.FundraisingMethods))
	copy(methods, f.FundraisingMethods)
	f.FundraisingMethods = methods
	return f
}

func copyBudget(b finance.EventBudget) finance.EventBudget {
	categories := make([]finance.BudgetCategory, len(b.Categories))
	for i, c := range b.Categories {
		items := make([]finance.BudgetCategoryItem, len(c.Items))
		copy(items, c.Items)
		c.Items = items
		categories[i] = c
	}
	b.Categories = categories
	if b.ApprovedDate != nil {
		approvedDate := *b.ApprovedDate
		b.ApprovedDate = &approvedDate
	}
	return b
}

func copyExpenditure(e finance.EventExpenditure) finance.EventExpenditure {
	tags := make([]string, len(e.Tags))
	copy(tags, e.Tags)
	e.Tags = tags
	return e
}
