package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ENUMS:

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalDraft    ApprovalStatus = "draft"
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalDraft, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

type ExpenditureStatus string

const (
	ExpenditurePending  ExpenditureStatus = "pending"
	ExpenditureApproved ExpenditureStatus = "approved"
	ExpenditurePaid     ExpenditureStatus = "paid"
	ExpenditureRejected ExpenditureStatus = "rejected"
)

func (s ExpenditureStatus) IsValid() bool {
	switch s {
	case ExpenditurePending, ExpenditureApproved, ExpenditurePaid, ExpenditureRejected:
		return true
	}
	return false
}

type FundraisingMethod string

const (
	MethodCash         FundraisingMethod = "cash"
	MethodOnline       FundraisingMethod = "online"
	MethodBankTransfer FundraisingMethod = "bank_transfer"
	MethodCard         FundraisingMethod = "card"
	MethodCheck        FundraisingMethod = "check"
	MethodOther        FundraisingMethod = "other"
)

// FundraisingMethods lists every method in reporting order.
var FundraisingMethods = []FundraisingMethod{
	MethodCash,
	MethodOnline,
	MethodBankTransfer,
	MethodCard,
	MethodCheck,
	MethodOther,
}

func (m FundraisingMethod) IsValid() bool {
	for _, known := range FundraisingMethods {
		if m == known {
			return true
		}
	}
	return false
}

// REQUESTS START:

type Event struct {
	ID              string
	Title           string
	FundraisingGoal decimal.Decimal
	Currency        string
}

type UpdateBudgetRequest struct {
	NewTotalBudget        *decimal.Decimal
	NewContingencyPercent *float64
}

type CategoryRequest struct {
	ID              string
	Name            string
	Description     string
	Priority        Priority
	AllocatedAmount decimal.Decimal
}

type UpdateCategoryRequest struct {
	ID                 string
	NewName            string
	NewDescription     string
	NewPriority        Priority
	NewAllocatedAmount *decimal.Decimal
}

type CategoryItemRequest struct {
	Name          string
	Quantity      decimal.Decimal
	Unit          string
	EstimatedCost decimal.Decimal
}

type Donation struct {
	DonorName   string
	Amount      decimal.Decimal
	Method      FundraisingMethod
	IsAnonymous bool
	Message     string
}

type ExpenditureRequest struct {
	EventID          string
	BudgetCategoryID string
	Amount           decimal.Decimal
	Currency         string
	Description      string
	Date             time.Time
	PaymentMethod    string
	Vendor           string
	ReceiptNumber    string
	Status           ExpenditureStatus
	ApprovedBy       string
	Tags             []string
}

type ExpenditureFilter struct {
	Status           ExpenditureStatus
	BudgetCategoryID string
	Tag              string
}

// REQUESTS END:

// MODELS:

type BudgetCategoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type BudgetCategory struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Priority        Priority             `json:"priority"`
	AllocatedAmount decimal.Decimal      `json:"allocated_amount"`
	Items           []BudgetCategoryItem `json:"items"`
}

type Contingency struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

type EventBudget struct {
	EventID         string           `json:"event_id"`
	TotalBudget     decimal.Decimal  `json:"total_budget"`
	Currency        string           `json:"currency"`
	Categories      []BudgetCategory `json:"categories"`
	Contingency     Contingency      `json:"contingency"`
	ApprovalStatus  ApprovalStatus   `json:"approval_status"`
	ApprovedBy      string           `json:"approved_by,omitempty"`
	ApprovedDate    *time.Time       `json:"approved_date,omitempty"`
	RejectedBy      string           `json:"rejected_by,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Category returns the index of the category with id, or -1.
func (b *EventBudget) Category(id string) int {
	for i, category := range b.Categories {
		if category.ID == id {
			return i
		}
	}
	return -1
}

type EventExpenditure struct {
	ID               string            `json:"id"`
	EventID          string            `json:"event_id"`
	BudgetCategoryID string            `json:"budget_category_id"`
	Amount           decimal.Decimal   `json:"amount"`
	Currency         string            `json:"currency"`
	Description      string            `json:"description"`
	Date             time.Time         `json:"date"`
	PaymentMethod    string            `json:"payment_method"`
	Vendor           string            `json:"vendor,omitempty"`
	ReceiptNumber    string            `json:"receipt_number,omitempty"`
	ApprovedBy       string            `json:"approved_by,omitempty"`
	Status           ExpenditureStatus `json:"status"`
	Tags             []string          `json:"tags"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (e EventExpenditure) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type MethodBreakdown struct {
	Method     FundraisingMethod `json:"method"`
	Amount     decimal.Decimal   `json:"amount"`
	Percentage float64           `json:"percentage"`
}

type EventFundraising struct {
	EventID            string            `json:"event_id"`
	TargetAmount       decimal.Decimal   `json:"target_amount"`
	CurrentAmount      decimal.Decimal   `json:"current_amount"`
	Currency           string            `json:"currency"`
	FundraisingMethods []MethodBreakdown `json:"fundraising_methods"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type DonationRecord struct {
	ID          string            `json:"id"`
	EventID     string            `json:"event_id"`
	DonorName   string            `json:"donor_name"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Method      FundraisingMethod `json:"method"`
	IsAnonymous bool              `json:"is_anonymous"`
	Message     string            `json:"message,omitempty"`
	ReceivedAt  time.Time         `json:"received_at"`
}

// RESPONSES:

type CategorySummary struct {
	CategoryID         string          `json:"category_id"`
	Name               string          `json:"name"`
	Priority           Priority        `json:"priority"`
	Allocated          decimal.Decimal `json:"allocated"`
	ItemsTotal         decimal.Decimal `json:"items_total"`
	Spent              decimal.Decimal `json:"spent"`
	Committed          decimal.Decimal `json:"committed"`
	Remaining          decimal.Decimal `json:"remaining"`
	Utilization        float64         `json:"utilization"`
	DisplayUtilization float64         `json:"display_utilization"`
	PercentOfBudget    float64         `json:"percent_of_budget"`
	OverAllocated      bool            `json:"over_allocated"`
}

type EventFinancialSummary struct {
	EventID             string            `json:"event_id"`
	Currency            string            `json:"currency"`
	TotalBudget         decimal.Decimal   `json:"total_budget"`
	TotalAllocated      decimal.Decimal   `json:"total_allocated"`
	Contingency         decimal.Decimal   `json:"contingency"`
	Unallocated         decimal.Decimal   `json:"unallocated"`
	TotalSpent          decimal.Decimal   `json:"total_spent"`
	TotalCommitted      decimal.Decimal   `json:"total_committed"`
	TotalPending        decimal.Decimal   `json:"total_pending"`
	RemainingBudget     decimal.Decimal   `json:"remaining_budget"`
	BudgetUtilization   float64           `json:"budget_utilization"`
	TotalRaised         decimal.Decimal   `json:"total_raised"`
	TargetAmount        decimal.Decimal   `json:"target_amount"`
	RemainingToGoal     decimal.Decimal   `json:"remaining_to_goal"`
	FundraisingProgress float64           `json:"fundraising_progress"`
	FundedPercent       float64           `json:"funded_percent"`
	NetPosition         decimal.Decimal   `json:"net_position"`
	Categories          []CategorySummary `json:"categories"`
	Warnings            []ConflictWarning `json:"warnings"`
}

type EventFinancialData struct {
	Budget       *EventBudget           `json:"budget,omitempty"`
	Fundraising  *EventFundraising      `json:"fundraising,omitempty"`
	Expenditures []EventExpenditure     `json:"expenditures"`
	Summary      *EventFinancialSummary `json:"summary,omitempty"`
}
