package api

import (
	"net/url"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/shopspring/decimal"
)

// REQUESTS START:

type InitializeEventRequest struct {
	EventID         string          `json:"event_id"`
	Title           string          `json:"title"`
	FundraisingGoal decimal.Decimal `json:"fundraising_goal"`
	Currency        string          `json:"currency"`
}

type EventRequest struct {
	EventID string `json:"event_id"`
}

type CreateBudgetRequest struct {
	EventID     string          `json:"event_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type UpdateBudgetRequest struct {
	EventID            string           `json:"event_id"`
	TotalBudget        *decimal.Decimal `json:"total_budget"`
	ContingencyPercent *float64         `json:"contingency_percent"`
}

type RejectBudgetRequest struct {
	EventID string `json:"event_id"`
	Reason  string `json:"reason"`
}

type CategoryRequest struct {
	EventID         string           `json:"event_id"`
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Priority        string           `json:"priority"`
	AllocatedAmount *decimal.Decimal `json:"allocated_amount"`
}

type CategoryItemRequest struct {
	EventID       string          `json:"event_id"`
	CategoryID    string          `json:"category_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type DonationRequest struct {
	EventID     string          `json:"event_id"`
	DonorName   string          `json:"donor_name"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	IsAnonymous bool            `json:"is_anonymous"`
	Message     string          `json:"message"`
}

type FundraisingTargetRequest struct {
	EventID      string          `json:"event_id"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

type ExpenditureRequest struct {
	EventID          string          `json:"event_id"`
	BudgetCategoryID string          `json:"budget_category_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description"`
	Date             string          `json:"date"` // 2006-01-02 or RFC 3339
	PaymentMethod    string          `json:"payment_method"`
	Vendor           string          `json:"vendor"`
	ReceiptNumber    string          `json:"receipt_number"`
	Status           string          `json:"status"`
	Tags             []string        `json:"tags"`
}

type ExpenditureStatusRequest struct {
	EventID       string `json:"event_id"`
	ExpenditureID string `json:"expenditure_id"`
	Status        string `json:"status"`
}

//REQUESTS END:

//RESPONSES:

type MessageResponse struct {
	Message string `json:"message"`
}

type BudgetResponse struct {
	Budget   finance.EventBudget       `json:"budget"`
	Warnings []finance.ConflictWarning `json:"warnings"`
}

type CategoryResponse struct {
	Category finance.BudgetCategory    `json:"category"`
	Warnings []finance.ConflictWarning `json:"warnings"`
}

type CategoryItemResponse struct {
	Item     finance.BudgetCategoryItem `json:"item"`
	Warnings []finance.ConflictWarning  `json:"warnings"`
}

type ExpenditureResponse struct {
	Expenditure finance.EventExpenditure  `json:"expenditure"`
	Warnings    []finance.ConflictWarning `json:"warnings"`
}

type ListExpendituresResponse struct {
	Expenditures []finance.EventExpenditure `json:"expenditures"`
}

type ListDonationsResponse struct {
	Donations []finance.DonationRecord `json:"donations"`
}

func httpStatusFromError(err error) int {
	switch {
	case appErrors.HasCode(err, appErrors.ErrNotFound):
		return 404 // not found
	case appErrors.HasCode(err, appErrors.ErrInvalidInput):
		return 400 // bad request
	case appErrors.HasCode(err, appErrors.ErrAuth):
		return 401 // unauthorized
	case appErrors.HasCode(err, appErrors.ErrAccessDenied):
		return 403 // access denied
	case appErrors.HasCode(err, appErrors.ErrConflict):
		return 409 // conflict
	case appErrors.HasCode(err, appErrors.ErrStorageUnavailable):
		return 503 // retryable
	default:
		return 500 //internal error
	}
}

func (req ExpenditureRequest) toModel() (finance.ExpenditureRequest, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return finance.ExpenditureRequest{}, err
	}
	return finance.ExpenditureRequest{
		EventID:          req.EventID,
		BudgetCategoryID: req.BudgetCategoryID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Description:      req.Description,
		Date:             date,
		PaymentMethod:    req.PaymentMethod,
		Vendor:           req.Vendor,
		ReceiptNumber:    req.ReceiptNumber,
		Status:           finance.ExpenditureStatus(strings.ToLower(req.Status)),
		Tags:             req.Tags,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, appErrors.New(appErrors.ErrInvalidInput, "invalid date: %s, example: 2026-05-01", value)
	}
	return date, nil
}

func ExpenditureFilterFromParams(params url.Values) (finance.ExpenditureFilter, error) {
	filter := finance.ExpenditureFilter{
		Status:           finance.ExpenditureStatus(strings.ToLower(params.Get("status"))),
		BudgetCategoryID: params.Get("category_id"),
		Tag:              strings.ToLower(strings.TrimSpace(params.Get("tag"))),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return finance.ExpenditureFilter{}, appErrors.New(appErrors.ErrInvalidInput, "invalid status filter: %s", filter.Status)
	}
	return filter, nil
}

func requireParam(params url.Values, name string) (string, error) {
	value := strings.TrimSpace(params.Get(name))
	if value == "" {
		return "", appErrors.New(appErrors.ErrInvalidInput, "%s query parameter is required", name)
	}
	return value, nil
}
