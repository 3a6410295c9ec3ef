package finance

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/contextutil"
	"github.com/fatali-fataliyev/event_finance/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MAX_NAME_LENGTH        = 255
	MAX_EVENT_ID_LENGTH    = 64
	MAX_DESCRIPTION_LENGTH = 1000
	MAX_MESSAGE_LENGTH     = 1000
	MAX_TAGS               = 20
	MAX_TAG_LENGTH         = 50
	DEFAULT_CURRENCY       = "USD"
	ANONYMOUS_DONOR        = "Anonymous"
)

var MAX_AMOUNT_LIMIT = decimal.RequireFromString("999999999999.99")

var (
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
	slugRegex     = regexp.MustCompile(`[^a-z0-9]+`)
)

// Storage is the repository every backend implements. Save methods are upserts keyed by
// event id (and record id where one exists). Missing records come back as NOT FOUND errors.
type Storage interface {
	SaveFundraising(ctx context.Context, f EventFundraising) error
	GetFundraising(ctx context.Context, eventID string) (EventFundraising, error)
	RecordDonation(ctx context.Context, d DonationRecord, f EventFundraising) error
	GetDonations(ctx context.Context, eventID string) ([]DonationRecord, error)
	SaveBudget(ctx context.Context, b EventBudget) error
	GetBudget(ctx context.Context, eventID string) (EventBudget, error)
	SaveExpenditure(ctx context.Context, e EventExpenditure) error
	GetExpenditure(ctx context.Context, eventID string, expenditureID string) (EventExpenditure, error)
	GetExpenditures(ctx context.Context, eventID string) ([]EventExpenditure, error)
	DeleteEventFinances(ctx context.Context, eventID string) error
	GetStorageType() string
}

type Options struct {
	DefaultCurrency           string
	DefaultContingencyPercent float64
}

// FinanceTracker is the single entry point for event financial tracking.
// Concurrent edits of the same event are last-write-wins.
type FinanceTracker struct {
	storage     Storage
	options     Options
	clock       func() time.Time
	StorageType string
}

func NewFinanceTracker(s Storage, opts Options) FinanceTracker {
	return FinanceTracker{
		storage:     s,
		options:     opts,
		clock:       time.Now,
		StorageType: s.GetStorageType(),
	}
}

func (ft *FinanceTracker) now() time.Time {
	if ft.clock == nil {
		return time.Now().UTC()
	}
	return ft.clock().UTC()
}

func (ft *FinanceTracker) defaultCurrency() string {
	if ft.options.DefaultCurrency == "" {
		return DEFAULT_CURRENCY
	}
	return strings.ToUpper(ft.options.DefaultCurrency)
}

// ---- EVENT LIFECYCLE ---- //

// InitializeEventFinances seeds the fundraising record of a new event. Calling it again for an
// already initialized event is a no-op: existing totals and donations are kept.
func (ft *FinanceTracker) InitializeEventFinances(ctx context.Context, event Event) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	if err := validateEventID(event.ID); err != nil {
		return err
	}
	if event.FundraisingGoal.IsNegative() {
		return appErrors.New(appErrors.ErrInvalidInput, "fundraising goal cannot be negative")
	}
	if event.FundraisingGoal.GreaterThan(MAX_AMOUNT_LIMIT) {
		return appErrors.New(appErrors.ErrInvalidInput, "fundraising goal is too large, the limit is: %s", MAX_AMOUNT_LIMIT)
	}
	currency, err := ft.normalizeCurrency(event.Currency)
	if err != nil {
		return err
	}

	_, err = ft.storage.GetFundraising(ctx, event.ID)
	if err == nil {
		logging.Logger.Infof("[TraceID=%s] | finances of event '%s' already initialized, skipping", traceID, event.ID)
		return nil
	}
	if !appErrors.HasCode(err, appErrors.ErrNotFound) {
		return fmt.Errorf("failed to check fundraising record: %w", err)
	}

	now := ft.now()
	fundraising := EventFundraising{
		EventID:            event.ID,
		TargetAmount:       event.FundraisingGoal,
		CurrentAmount:      decimal.Zero,
		Currency:           currency,
		FundraisingMethods: []MethodBreakdown{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := ft.storage.SaveFundraising(ctx, fundraising); err != nil {
		return fmt.Errorf("failed to save fundraising record: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | initialized finances of event '%s' with goal %s %s", traceID, event.ID, event.FundraisingGoal, currency)
	return nil
}

func (ft *FinanceTracker) DeleteEventFinances(ctx context.Context, eventID string) error {
	if err := validateEventID(eventID); err != nil {
		return err
	}
	if err := ft.storage.DeleteEventFinances(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event finances: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | deleted finances of event '%s'", contextutil.TraceIDFromContext(ctx), eventID)
	return nil
}

// ---- BUDGET ---- //

func (ft *FinanceTracker) CreateBudget(ctx context.Context, eventID string, totalAmount decimal.Decimal) (EventBudget, error) {
	if err := validateEventID(eventID); err != nil {
		return EventBudget{}, err
	}
	if err := validateAmount("total budget", totalAmount); err != nil {
		return EventBudget{}, err
	}

	_, err := ft.storage.GetBudget(ctx, eventID)
	if err == nil {
		return EventBudget{}, appErrors.New(appErrors.ErrConflict, "budget for event '%s' already exists", eventID)
	}
	if !appErrors.HasCode(err, appErrors.ErrNotFound) {
		return EventBudget{}, fmt.Errorf("failed to check existing budget: %w", err)
	}

	currency := ft.defaultCurrency()
	if fundraising, err := ft.storage.GetFundraising(ctx, eventID); err == nil {
		currency = fundraising.Currency
	}

	now := ft.now()
	budget := EventBudget{
		EventID:        eventID,
		TotalBudget:    totalAmount,
		Currency:       currency,
		Categories:     []BudgetCategory{},
		Contingency:    contingencyOf(totalAmount, ft.options.DefaultContingencyPercent),
		ApprovalStatus: ApprovalDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return EventBudget{}, fmt.Errorf("failed to save budget: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | created draft budget of %s %s for event '%s'", contextutil.TraceIDFromContext(ctx), totalAmount, currency, eventID)
	return budget, nil
}

func (ft *FinanceTracker) UpdateBudget(ctx context.Context, eventID string, fields UpdateBudgetRequest) (EventBudget, []ConflictWarning, error) {
	if fields.NewTotalBudget != nil {
		if err := validateAmount("total budget", *fields.NewTotalBudget); err != nil {
			return EventBudget{}, nil, err
		}
	}
	if fields.NewContingencyPercent != nil {
		if err := validateContingencyPercent(*fields.NewContingencyPercent); err != nil {
			return EventBudget{}, nil, err
		}
	}

	budget, err := ft.loadEditableBudget(ctx, eventID)
	if err != nil {
		return EventBudget{}, nil, err
	}

	if fields.NewTotalBudget != nil {
		budget.TotalBudget = *fields.NewTotalBudget
	}
	percentage := budget.Contingency.Percentage
	if fields.NewContingencyPercent != nil {
		percentage = *fields.NewContingencyPercent
	}
	budget.Contingency = contingencyOf(budget.TotalBudget, percentage)
	budget.UpdatedAt = ft.now()

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return EventBudget{}, nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, BudgetWarnings(budget), nil
}

func (ft *FinanceTracker) AddBudgetCategory(ctx context.Context, eventID string, category CategoryRequest) (BudgetCategory, []ConflictWarning, error) {
	name := strings.TrimSpace(category.Name)
	if name == "" {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "category name is empty")
	}
	if len(name) > MAX_NAME_LENGTH {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "category name is too long, the limit is: %d", MAX_NAME_LENGTH)
	}
	if len(category.Description) > MAX_DESCRIPTION_LENGTH {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "description so long, maximum allowed length is: %d", MAX_DESCRIPTION_LENGTH)
	}
	if err := validateNonNegative("allocated amount", category.AllocatedAmount); err != nil {
		return BudgetCategory{}, nil, err
	}
	priority := category.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "invalid priority: %s", category.Priority)
	}

	budget, err := ft.loadEditableBudget(ctx, eventID)
	if err != nil {
		return BudgetCategory{}, nil, err
	}

	id := strings.TrimSpace(category.ID)
	if id == "" {
		id = Slugify(name)
	}
	if budget.Category(id) >= 0 {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrConflict, "category '%s' already exists", id)
	}

	newCategory := BudgetCategory{
		ID:              id,
		Name:            name,
		Description:     category.Description,
		Priority:        priority,
		AllocatedAmount: category.AllocatedAmount,
		Items:           []BudgetCategoryItem{},
	}
	budget.Categories = append(budget.Categories, newCategory)
	budget.UpdatedAt = ft.now()

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return BudgetCategory{}, nil, fmt.Errorf("failed to save category: %w", err)
	}
	return newCategory, BudgetWarnings(budget), nil
}

func (ft *FinanceTracker) UpdateBudgetCategory(ctx context.Context, eventID string, fields UpdateCategoryRequest) (BudgetCategory, []ConflictWarning, error) {
	if len(fields.NewName) > MAX_NAME_LENGTH {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "category name is too long, the limit is: %d", MAX_NAME_LENGTH)
	}
	if len(fields.NewDescription) > MAX_DESCRIPTION_LENGTH {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "description so long, maximum allowed length is: %d", MAX_DESCRIPTION_LENGTH)
	}
	if fields.NewPriority != "" && !fields.NewPriority.IsValid() {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrInvalidInput, "invalid priority: %s", fields.NewPriority)
	}
	if fields.NewAllocatedAmount != nil {
		if err := validateNonNegative("allocated amount", *fields.NewAllocatedAmount); err != nil {
			return BudgetCategory{}, nil, err
		}
	}

	budget, err := ft.loadEditableBudget(ctx, eventID)
	if err != nil {
		return BudgetCategory{}, nil, err
	}
	idx := budget.Category(fields.ID)
	if idx < 0 {
		return BudgetCategory{}, nil, appErrors.New(appErrors.ErrNotFound, "category '%s' not found", fields.ID)
	}

	category := &budget.Categories[idx]
	if name := strings.TrimSpace(fields.NewName); name != "" {
		category.Name = name
	}
	if fields.NewDescription != "" {
		category.Description = fields.NewDescription
	}
	if fields.NewPriority != "" {
		category.Priority = fields.NewPriority
	}
	if fields.NewAllocatedAmount != nil {
		category.AllocatedAmount = *fields.NewAllocatedAmount
	}
	budget.UpdatedAt = ft.now()

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return BudgetCategory{}, nil, fmt.Errorf("failed to update category: %w", err)
	}
	return budget.Categories[idx], BudgetWarnings(budget), nil
}

// RemoveBudgetCategory refuses to drop a category that still has non-rejected expenditures.
func (ft *FinanceTracker) RemoveBudgetCategory(ctx context.Context, eventID string, categoryID string) error {
	budget, err := ft.loadEditableBudget(ctx, eventID)
	if err != nil {
		return err
	}
	idx := budget.Category(categoryID)
	if idx < 0 {
		return appErrors.New(appErrors.ErrNotFound, "category '%s' not found", categoryID)
	}

	expenditures, err := ft.storage.GetExpenditures(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get expenditures: %w", err)
	}
	for _, e := range expenditures {
		if e.BudgetCategoryID == categoryID && e.Status != ExpenditureRejected {
			return appErrors.New(appErrors.ErrConflict, "category '%s' has recorded expenditures", categoryID)
		}
	}

	budget.Categories = append(budget.Categories[:idx], budget.Categories[idx+1:]...)
	budget.UpdatedAt = ft.now()
	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	return nil
}

func (ft *FinanceTracker) AddCategoryItem(ctx context.Context, eventID string, categoryID string, item CategoryItemRequest) (BudgetCategoryItem, []ConflictWarning, error) {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return BudgetCategoryItem{}, nil, appErrors.New(appErrors.ErrInvalidInput, "item name is empty")
	}
	if len(name) > MAX_NAME_LENGTH {
		return BudgetCategoryItem{}, nil, appErrors.New(appErrors.ErrInvalidInput, "item name is too long, the limit is: %d", MAX_NAME_LENGTH)
	}
	if !item.Quantity.IsPositive() {
		return BudgetCategoryItem{}, nil, appErrors.New(appErrors.ErrInvalidInput, "item quantity must be positive")
	}
	if err := validateNonNegative("estimated cost", item.EstimatedCost); err != nil {
		return BudgetCategoryItem{}, nil, err
	}

	budget, err := ft.loadEditableBudget(ctx, eventID)
	if err != nil {
		return BudgetCategoryItem{}, nil, err
	}
	idx := budget.Category(categoryID)
	if idx < 0 {
		return BudgetCategoryItem{}, nil, appErrors.New(appErrors.ErrNotFound, "category '%s' not found", categoryID)
	}

	newItem := BudgetCategoryItem{
		ID:            uuid.New().String(),
		Name:          name,
		Quantity:      item.Quantity,
		Unit:          strings.TrimSpace(item.Unit),
		EstimatedCost: item.EstimatedCost,
	}
	budget.Categories[idx].Items = append(budget.Categories[idx].Items, newItem)
	budget.UpdatedAt = ft.now()

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return BudgetCategoryItem{}, nil, fmt.Errorf("failed to save category item: %w", err)
	}
	return newItem, BudgetWarnings(budget), nil
}

func (ft *FinanceTracker) RemoveCategoryItem(ctx context.Context, eventID string, categoryID string, itemID string) error {
	budget, err := ft.loadEditableBudget(ctx, eventID)
	if err != nil {
		return err
	}
	idx := budget.Category(categoryID)
	if idx < 0 {
		return appErrors.New(appErrors.ErrNotFound, "category '%s' not found", categoryID)
	}

	items := budget.Categories[idx].Items
	for i, item := range items {
		if item.ID == itemID {
			budget.Categories[idx].Items = append(items[:i], items[i+1:]...)
			budget.UpdatedAt = ft.now()
			if err := ft.storage.SaveBudget(ctx, budget); err != nil {
				return fmt.Errorf("failed to remove category item: %w", err)
			}
			return nil
		}
	}
	return appErrors.New(appErrors.ErrNotFound, "item '%s' not found in category '%s'", itemID, categoryID)
}

// ---- BUDGET APPROVAL ---- //

var budgetTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalDraft:    {ApprovalPending, ApprovalApproved, ApprovalRejected},
	ApprovalPending:  {ApprovalApproved, ApprovalRejected},
	ApprovalRejected: {ApprovalDraft},
}

func CanTransitionBudget(from ApprovalStatus, to ApprovalStatus) bool {
	for _, next := range budgetTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (ft *FinanceTracker) SubmitBudget(ctx context.Context, eventID string) (EventBudget, error) {
	return ft.transitionBudget(ctx, eventID, ApprovalPending, func(b *EventBudget) {})
}

func (ft *FinanceTracker) ApproveBudget(ctx context.Context, eventID string, approvedBy string) (EventBudget, error) {
	approvedBy = strings.TrimSpace(approvedBy)
	if approvedBy == "" {
		return EventBudget{}, appErrors.New(appErrors.ErrInvalidInput, "approver is required")
	}
	return ft.transitionBudget(ctx, eventID, ApprovalApproved, func(b *EventBudget) {
		approvedDate := ft.now()
		b.ApprovedBy = approvedBy
		b.ApprovedDate = &approvedDate
	})
}

func (ft *FinanceTracker) RejectBudget(ctx context.Context, eventID string, rejectedBy string, reason string) (EventBudget, error) {
	rejectedBy = strings.TrimSpace(rejectedBy)
	if rejectedBy == "" {
		return EventBudget{}, appErrors.New(appErrors.ErrInvalidInput, "reviewer is required")
	}
	if len(reason) > MAX_DESCRIPTION_LENGTH {
		return EventBudget{}, appErrors.New(appErrors.ErrInvalidInput, "reason so long, maximum allowed length is: %d", MAX_DESCRIPTION_LENGTH)
	}
	return ft.transitionBudget(ctx, eventID, ApprovalRejected, func(b *EventBudget) {
		b.RejectedBy = rejectedBy
		b.RejectionReason = reason
	})
}

// ReopenBudget moves a rejected budget back to draft so it can be edited and resubmitted.
func (ft *FinanceTracker) ReopenBudget(ctx context.Context, eventID string) (EventBudget, error) {
	return ft.transitionBudget(ctx, eventID, ApprovalDraft, func(b *EventBudget) {
		b.RejectedBy = ""
		b.RejectionReason = ""
	})
}

func (ft *FinanceTracker) transitionBudget(ctx context.Context, eventID string, to ApprovalStatus, stamp func(b *EventBudget)) (EventBudget, error) {
	budget, err := ft.loadBudget(ctx, eventID)
	if err != nil {
		return EventBudget{}, err
	}
	if !CanTransitionBudget(budget.ApprovalStatus, to) {
		return EventBudget{}, appErrors.New(appErrors.ErrConflict, "budget cannot move from %s to %s", budget.ApprovalStatus, to)
	}

	from := budget.ApprovalStatus
	budget.ApprovalStatus = to
	stamp(&budget)
	budget.UpdatedAt = ft.now()

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return EventBudget{}, fmt.Errorf("failed to save budget status: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | budget of event '%s' moved from %s to %s", contextutil.TraceIDFromContext(ctx), eventID, from, to)
	return budget, nil
}

// ---- FUNDRAISING ---- //

// AddDonation folds one donation into the event's fundraising totals and method breakdown.
func (ft *FinanceTracker) AddDonation(ctx context.Context, eventID string, donation Donation) (EventFundraising, error) {
	if err := validateAmount("donation amount", donation.Amount); err != nil {
		return EventFundraising{}, err
	}
	if !donation.Method.IsValid() {
		return EventFundraising{}, appErrors.New(appErrors.ErrInvalidInput, "invalid fundraising method: %s", donation.Method)
	}
	donorName := strings.TrimSpace(donation.DonorName)
	if donation.IsAnonymous {
		donorName = ANONYMOUS_DONOR
	}
	if donorName == "" {
		return EventFundraising{}, appErrors.New(appErrors.ErrInvalidInput, "donor name is required for non-anonymous donations")
	}
	if len(donorName) > MAX_NAME_LENGTH {
		return EventFundraising{}, appErrors.New(appErrors.ErrInvalidInput, "donor name is too long, the limit is: %d", MAX_NAME_LENGTH)
	}
	if len(donation.Message) > MAX_MESSAGE_LENGTH {
		return EventFundraising{}, appErrors.New(appErrors.ErrInvalidInput, "message so long, maximum allowed length is: %d", MAX_MESSAGE_LENGTH)
	}

	fundraising, err := ft.loadFundraising(ctx, eventID)
	if err != nil {
		return EventFundraising{}, err
	}

	now := ft.now()
	fundraising.CurrentAmount = fundraising.CurrentAmount.Add(donation.Amount)
	fundraising.FundraisingMethods = addToMethod(fundraising.FundraisingMethods, donation.Method, donation.Amount)
	RecalculateMethodPercentages(fundraising.FundraisingMethods)
	fundraising.UpdatedAt = now

	record := DonationRecord{
		ID:          uuid.New().String(),
		EventID:     eventID,
		DonorName:   donorName,
		Amount:      donation.Amount,
		Currency:    fundraising.Currency,
		Method:      donation.Method,
		IsAnonymous: donation.IsAnonymous,
		Message:     donation.Message,
		ReceivedAt:  now,
	}

	if err := ft.storage.RecordDonation(ctx, record, fundraising); err != nil {
		return EventFundraising{}, fmt.Errorf("failed to record donation: %w", err)
	}
	logging.Logger.Debugf("[TraceID=%s] | donation of %s via %s recorded for event '%s'", contextutil.TraceIDFromContext(ctx), donation.Amount, donation.Method, eventID)
	return fundraising, nil
}

func addToMethod(methods []MethodBreakdown, method FundraisingMethod, amount decimal.Decimal) []MethodBreakdown {
	for i := range methods {
		if methods[i].Method == method {
			methods[i].Amount = methods[i].Amount.Add(amount)
			return methods
		}
	}
	return append(methods, MethodBreakdown{Method: method, Amount: amount})
}

func (ft *FinanceTracker) SetFundraisingTarget(ctx context.Context, eventID string, target decimal.Decimal) (EventFundraising, error) {
	if err := validateNonNegative("target amount", target); err != nil {
		return EventFundraising{}, err
	}
	fundraising, err := ft.loadFundraising(ctx, eventID)
	if err != nil {
		return EventFundraising{}, err
	}
	fundraising.TargetAmount = target
	fundraising.UpdatedAt = ft.now()
	if err := ft.storage.SaveFundraising(ctx, fundraising); err != nil {
		return EventFundraising{}, fmt.Errorf("failed to update fundraising target: %w", err)
	}
	return fundraising, nil
}

func (ft *FinanceTracker) ListDonations(ctx context.Context, eventID string) ([]DonationRecord, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	donations, err := ft.storage.GetDonations(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donations: %w", err)
	}
	if donations == nil {
		donations = []DonationRecord{}
	}
	sort.SliceStable(donations, func(i, j int) bool {
		return donations[i].ReceivedAt.Before(donations[j].ReceivedAt)
	})
	return donations, nil
}

// ---- EXPENDITURES ---- //

var expenditureTransitions = map[ExpenditureStatus][]ExpenditureStatus{
	ExpenditurePending:  {ExpenditureApproved, ExpenditureRejected},
	ExpenditureApproved: {ExpenditurePaid, ExpenditureRejected},
}

func CanTransitionExpenditure(from ExpenditureStatus, to ExpenditureStatus) bool {
	for _, next := range expenditureTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AddExpenditure records a spend against an existing budget category. Going over the category
// allocation is allowed and reported through the returned warnings.
func (ft *FinanceTracker) AddExpenditure(ctx context.Context, expenditure ExpenditureRequest) (EventExpenditure, []ConflictWarning, error) {
	if err := validateEventID(expenditure.EventID); err != nil {
		return EventExpenditure{}, nil, err
	}
	if err := validateAmount("expenditure amount", expenditure.Amount); err != nil {
		return EventExpenditure{}, nil, err
	}
	if len(expenditure.Description) > MAX_DESCRIPTION_LENGTH {
		return EventExpenditure{}, nil, appErrors.New(appErrors.ErrInvalidInput, "description so long, maximum allowed length is: %d", MAX_DESCRIPTION_LENGTH)
	}
	status := expenditure.Status
	if status == "" {
		status = ExpenditurePending
	}
	if !status.IsValid() || status == ExpenditureRejected {
		return EventExpenditure{}, nil, appErrors.New(appErrors.ErrInvalidInput, "invalid initial expenditure status: %s", expenditure.Status)
	}
	tags, err := normalizeTags(expenditure.Tags)
	if err != nil {
		return EventExpenditure{}, nil, err
	}

	budget, err := ft.loadBudget(ctx, expenditure.EventID)
	if err != nil {
		return EventExpenditure{}, nil, err
	}
	idx := budget.Category(expenditure.BudgetCategoryID)
	if idx < 0 {
		return EventExpenditure{}, nil, appErrors.New(appErrors.ErrNotFound, "budget category '%s' not found for event '%s'", expenditure.BudgetCategoryID, expenditure.EventID)
	}

	currency := budget.Currency
	if expenditure.Currency != "" {
		currency = strings.ToUpper(strings.TrimSpace(expenditure.Currency))
		if currency != budget.Currency {
			return EventExpenditure{}, nil, appErrors.New(appErrors.ErrInvalidInput, "expenditure currency %s does not match budget currency %s", currency, budget.Currency)
		}
	}

	now := ft.now()
	date := expenditure.Date
	if date.IsZero() {
		date = now
	}

	newExpenditure := EventExpenditure{
		ID:               uuid.New().String(),
		EventID:          expenditure.EventID,
		BudgetCategoryID: expenditure.BudgetCategoryID,
		Amount:           expenditure.Amount,
		Currency:         currency,
		Description:      expenditure.Description,
		Date:             date.UTC(),
		PaymentMethod:    strings.TrimSpace(expenditure.PaymentMethod),
		Vendor:           strings.TrimSpace(expenditure.Vendor),
		ReceiptNumber:    strings.TrimSpace(expenditure.ReceiptNumber),
		ApprovedBy:       strings.TrimSpace(expenditure.ApprovedBy),
		Status:           status,
		Tags:             tags,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// the save is the last storage call: warnings use the stored expenditures plus the new one
	existing, err := ft.storage.GetExpenditures(ctx, expenditure.EventID)
	if err != nil {
		return EventExpenditure{}, nil, fmt.Errorf("failed to check allocation: %w", err)
	}
	if err := ft.storage.SaveExpenditure(ctx, newExpenditure); err != nil {
		return EventExpenditure{}, nil, fmt.Errorf("failed to save expenditure: %w", err)
	}

	warnings := ExpenditureWarnings(budget.Categories[idx], append(existing, newExpenditure))
	for _, w := range warnings {
		logging.Logger.Warnf("[TraceID=%s] | category '%s' of event '%s' is over allocation: %s > %s", contextutil.TraceIDFromContext(ctx), w.CategoryID, expenditure.EventID, w.Actual, w.Limit)
	}
	return newExpenditure, warnings, nil
}

func (ft *FinanceTracker) UpdateExpenditureStatus(ctx context.Context, eventID string, expenditureID string, status ExpenditureStatus, actor string) (EventExpenditure, error) {
	if err := validateEventID(eventID); err != nil {
		return EventExpenditure{}, err
	}
	if !status.IsValid() {
		return EventExpenditure{}, appErrors.New(appErrors.ErrInvalidInput, "invalid expenditure status: %s", status)
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return EventExpenditure{}, appErrors.New(appErrors.ErrInvalidInput, "actor is required to change expenditure status")
	}

	expenditure, err := ft.storage.GetExpenditure(ctx, eventID, expenditureID)
	if err != nil {
		return EventExpenditure{}, fmt.Errorf("failed to get expenditure: %w", err)
	}
	if !CanTransitionExpenditure(expenditure.Status, status) {
		return EventExpenditure{}, appErrors.New(appErrors.ErrConflict, "expenditure cannot move from %s to %s", expenditure.Status, status)
	}

	from := expenditure.Status
	expenditure.Status = status
	if status == ExpenditureApproved {
		expenditure.ApprovedBy = actor
	}
	expenditure.UpdatedAt = ft.now()

	if err := ft.storage.SaveExpenditure(ctx, expenditure); err != nil {
		return EventExpenditure{}, fmt.Errorf("failed to update expenditure status: %w", err)
	}
	logging.Logger.Infof("[TraceID=%s] | expenditure '%s' of event '%s' moved from %s to %s by %s", contextutil.TraceIDFromContext(ctx), expenditureID, eventID, from, status, actor)
	return expenditure, nil
}

func (ft *FinanceTracker) ListExpenditures(ctx context.Context, eventID string, filter ExpenditureFilter) ([]EventExpenditure, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	expenditures, err := ft.storage.GetExpenditures(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenditures: %w", err)
	}

	result := []EventExpenditure{}
	for _, e := range expenditures {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.BudgetCategoryID != "" && e.BudgetCategoryID != filter.BudgetCategoryID {
			continue
		}
		if filter.Tag != "" && !e.HasTag(filter.Tag) {
			continue
		}
		result = append(result, e)
	}
	sortExpenditures(result)
	return result, nil
}

// ---- REPORTING ---- //

func (ft *FinanceTracker) GetCategoryUtilization(ctx context.Context, eventID string, categoryID string) (CategorySummary, error) {
	budget, err := ft.loadBudget(ctx, eventID)
	if err != nil {
		return CategorySummary{}, err
	}
	idx := budget.Category(categoryID)
	if idx < 0 {
		return CategorySummary{}, appErrors.New(appErrors.ErrNotFound, "category '%s' not found", categoryID)
	}
	expenditures, err := ft.storage.GetExpenditures(ctx, eventID)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("failed to get expenditures: %w", err)
	}
	return summarizeCategory(budget.Categories[idx], budget, expenditures), nil
}

// GetEventFinancialData never reports missing records as errors: absent parts are nil and
// expenditures is empty. Only storage failures are returned.
func (ft *FinanceTracker) GetEventFinancialData(ctx context.Context, eventID string) (EventFinancialData, error) {
	data := EventFinancialData{Expenditures: []EventExpenditure{}}

	budget, err := ft.storage.GetBudget(ctx, eventID)
	switch {
	case err == nil:
		data.Budget = &budget
	case !appErrors.HasCode(err, appErrors.ErrNotFound):
		return EventFinancialData{}, fmt.Errorf("failed to get budget: %w", err)
	}

	fundraising, err := ft.storage.GetFundraising(ctx, eventID)
	switch {
	case err == nil:
		data.Fundraising = &fundraising
	case !appErrors.HasCode(err, appErrors.ErrNotFound):
		return EventFinancialData{}, fmt.Errorf("failed to get fundraising: %w", err)
	}

	expenditures, err := ft.storage.GetExpenditures(ctx, eventID)
	if err != nil {
		return EventFinancialData{}, fmt.Errorf("failed to get expenditures: %w", err)
	}
	if expenditures != nil {
		sortExpenditures(expenditures)
		data.Expenditures = expenditures
	}

	data.Summary = BuildSummary(eventID, data.Budget, data.Fundraising, data.Expenditures)
	return data, nil
}

// ---- HELPERS ---- //

func (ft *FinanceTracker) loadBudget(ctx context.Context, eventID string) (EventBudget, error) {
	if err := validateEventID(eventID); err != nil {
		return EventBudget{}, err
	}
	budget, err := ft.storage.GetBudget(ctx, eventID)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotFound) {
			return EventBudget{}, appErrors.New(appErrors.ErrNotFound, "budget for event '%s' not found", eventID)
		}
		return EventBudget{}, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

func (ft *FinanceTracker) loadEditableBudget(ctx context.Context, eventID string) (EventBudget, error) {
	budget, err := ft.loadBudget(ctx, eventID)
	if err != nil {
		return EventBudget{}, err
	}
	if budget.ApprovalStatus != ApprovalDraft {
		return EventBudget{}, appErrors.New(appErrors.ErrConflict, "budget is %s, only draft budgets can be changed", budget.ApprovalStatus)
	}
	return budget, nil
}

func (ft *FinanceTracker) loadFundraising(ctx context.Context, eventID string) (EventFundraising, error) {
	if err := validateEventID(eventID); err != nil {
		return EventFundraising{}, err
	}
	fundraising, err := ft.storage.GetFundraising(ctx, eventID)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotFound) {
			return EventFundraising{}, appErrors.New(appErrors.ErrNotFound, "finances of event '%s' are not initialized", eventID)
		}
		return EventFundraising{}, fmt.Errorf("failed to get fundraising: %w", err)
	}
	return fundraising, nil
}

func validateEventID(eventID string) error {
	if strings.TrimSpace(eventID) == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "event id is empty")
	}
	if len(eventID) > MAX_EVENT_ID_LENGTH {
		return appErrors.New(appErrors.ErrInvalidInput, "event id is too long, the limit is: %d", MAX_EVENT_ID_LENGTH)
	}
	return nil
}

func (ft *FinanceTracker) normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return ft.defaultCurrency(), nil
	}
	if !currencyRegex.MatchString(currency) {
		return "", appErrors.New(appErrors.ErrInvalidInput, "invalid currency code: %s, example: USD", currency)
	}
	return currency, nil
}

func contingencyOf(total decimal.Decimal, percentage float64) Contingency {
	return Contingency{
		Amount:     total.Mul(decimal.NewFromFloat(percentage)).Div(decimal.NewFromInt(100)).Round(2),
		Percentage: percentage,
	}
}

func validateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return appErrors.New(appErrors.ErrInvalidInput, "%s must be greater than 0", field)
	}
	if amount.GreaterThan(MAX_AMOUNT_LIMIT) {
		return appErrors.New(appErrors.ErrInvalidInput, "%s is too large, the limit is: %s", field, MAX_AMOUNT_LIMIT)
	}
	return nil
}

func validateNonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return appErrors.New(appErrors.ErrInvalidInput, "%s cannot be negative", field)
	}
	if amount.GreaterThan(MAX_AMOUNT_LIMIT) {
		return appErrors.New(appErrors.ErrInvalidInput, "%s is too large, the limit is: %s", field, MAX_AMOUNT_LIMIT)
	}
	return nil
}

func validateContingencyPercent(percentage float64) error {
	if percentage < 0 || percentage >= 100 {
		return appErrors.New(appErrors.ErrInvalidInput, "contingency percentage must be in [0, 100)")
	}
	return nil
}

func normalizeTags(tags []string) ([]string, error) {
	result := []string{}
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		if len(tag) > MAX_TAG_LENGTH {
			return nil, appErrors.New(appErrors.ErrInvalidInput, "tag '%s' is too long, the limit is: %d", tag, MAX_TAG_LENGTH)
		}
		seen[tag] = true
		result = append(result, tag)
	}
	if len(result) > MAX_TAGS {
		return nil, appErrors.New(appErrors.ErrInvalidInput, "too many tags, maximum is: %d", MAX_TAGS)
	}
	return result, nil
}

func sortExpenditures(expenditures []EventExpenditure) {
	sort.SliceStable(expenditures, func(i, j int) bool {
		if expenditures[i].Date.Equal(expenditures[j].Date) {
			return expenditures[i].CreatedAt.Before(expenditures[j].CreatedAt)
		}
		return expenditures[i].Date.Before(expenditures[j].Date)
	})
}

// Slugify turns a category name into its default id, e.g. "Venue & Catering" -> "venue-catering".
func Slugify(name string) string {
	slug := strings.Trim(slugRegex.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return uuid.New().String()
	}
	return slug
}
