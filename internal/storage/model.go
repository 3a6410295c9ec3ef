package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/shopspring/decimal"
)

// Amounts are persisted as decimal strings and times as fixed-width UTC strings so that
// MySQL, SQLite and Mongo all round-trip them exactly.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad stored time '%s': %w", s, err)
	}
	return t, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad stored amount '%s': %w", s, err)
	}
	return d, nil
}

// ---- SQL ROWS ---- //

type dbFundraising struct {
	EventID       string
	TargetAmount  string
	CurrentAmount string
	Currency      string
	CreatedAt     string
	UpdatedAt     string
}

type dbMethod struct {
	Method     string
	Amount     string
	Percentage float64
}

type dbBudget struct {
	EventID               string
	TotalBudget           string
	Currency              string
	ContingencyAmount     string
	ContingencyPercentage float64
	ApprovalStatus        string
	ApprovedBy            string
	ApprovedDate          *string
	RejectedBy            string
	RejectionReason       string
	CreatedAt             string
	UpdatedAt             string
}

type dbCategory struct {
	ID              string
	Name            string
	Description     string
	Priority        string
	AllocatedAmount string
}

type dbCategoryItem struct {
	ID            string
	CategoryID    string
	Name          string
	Quantity      string
	Unit          string
	EstimatedCost string
}

type dbExpenditure struct {
	ID               string
	EventID          string
	BudgetCategoryID string
	Amount           string
	Currency         string
	Description      string
	SpentOn          string
	PaymentMethod    string
	Vendor           string
	ReceiptNumber    string
	ApprovedBy       string
	Status           string
	Tags             string
	CreatedAt        string
	UpdatedAt        string
}

type dbDonation struct {
	ID          string
	EventID     string
	DonorName   string
	Amount      string
	Currency    string
	Method      string
	IsAnonymous bool
	Message     string
	ReceivedAt  string
}

func (row dbFundraising) toModel(methods []dbMethod) (finance.EventFundraising, error) {
	var err error
	f := finance.EventFundraising{
		EventID:            row.EventID,
		Currency:           row.Currency,
		FundraisingMethods: []finance.MethodBreakdown{},
	}
	if f.TargetAmount, err = parseDecimal(row.TargetAmount); err != nil {
		return finance.EventFundraising{}, err
	}
	if f.CurrentAmount, err = parseDecimal(row.CurrentAmount); err != nil {
		return finance.EventFundraising{}, err
	}
	if f.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
		return finance.EventFundraising{}, err
	}
	if f.UpdatedAt, err = parseTime(row.UpdatedAt); err != nil {
		return finance.EventFundraising{}, err
	}
	for _, m := range methods {
		amount, err := parseDecimal(m.Amount)
		if err != nil {
			return finance.EventFundraising{}, err
		}
		f.FundraisingMethods = append(f.FundraisingMethods, finance.MethodBreakdown{
			Method:     finance.FundraisingMethod(m.Method),
			Amount:     amount,
			Percentage: m.Percentage,
		})
	}
	return f, nil
}

func (row dbBudget) toModel() (finance.EventBudget, error) {
	var err error
	b := finance.EventBudget{
		EventID:         row.EventID,
		Currency:        row.Currency,
		Categories:      []finance.BudgetCategory{},
		ApprovalStatus:  finance.ApprovalStatus(row.ApprovalStatus),
		ApprovedBy:      row.ApprovedBy,
		RejectedBy:      row.RejectedBy,
		RejectionReason: row.RejectionReason,
	}
	b.Contingency.Percentage = row.ContingencyPercentage
	if b.TotalBudget, err = parseDecimal(row.TotalBudget); err != nil {
		return finance.EventBudget{}, err
	}
	if b.Contingency.Amount, err = parseDecimal(row.ContingencyAmount); err != nil {
		return finance.EventBudget{}, err
	}
	if row.ApprovedDate != nil {
		approvedDate, err := parseTime(*row.ApprovedDate)
		if err != nil {
			return finance.EventBudget{}, err
		}
		b.ApprovedDate = &approvedDate
	}
	if b.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
		return finance.EventBudget{}, err
	}
	if b.UpdatedAt, err = parseTime(row.UpdatedAt); err != nil {
		return finance.EventBudget{}, err
	}
	return b, nil
}

func (row dbCategory) toModel() (finance.BudgetCategory, error) {
	allocated, err := parseDecimal(row.AllocatedAmount)
	if err != nil {
		return finance.BudgetCategory{}, err
	}
	return finance.BudgetCategory{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Priority:        finance.Priority(row.Priority),
		AllocatedAmount: allocated,
		Items:           []finance.BudgetCategoryItem{},
	}, nil
}

func (row dbCategoryItem) toModel() (finance.BudgetCategoryItem, error) {
	var err error
	item := finance.BudgetCategoryItem{ID: row.ID, Name: row.Name, Unit: row.Unit}
	if item.Quantity, err = parseDecimal(row.Quantity); err != nil {
		return finance.BudgetCategoryItem{}, err
	}
	if item.EstimatedCost, err = parseDecimal(row.EstimatedCost); err != nil {
		return finance.BudgetCategoryItem{}, err
	}
	return item, nil
}

func newDBExpenditure(e finance.EventExpenditure) (dbExpenditure, error) {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return dbExpenditure{}, fmt.Errorf("failed to encode tags: %w", err)
	}
	return dbExpenditure{
		ID:               e.ID,
		EventID:          e.EventID,
		BudgetCategoryID: e.BudgetCategoryID,
		Amount:           e.Amount.String(),
		Currency:         e.Currency,
		Description:      e.Description,
		SpentOn:          formatTime(e.Date),
		PaymentMethod:    e.PaymentMethod,
		Vendor:           e.Vendor,
		ReceiptNumber:    e.ReceiptNumber,
		ApprovedBy:       e.ApprovedBy,
		Status:           string(e.Status),
		Tags:             string(tagsJSON),
		CreatedAt:        formatTime(e.CreatedAt),
		UpdatedAt:        formatTime(e.UpdatedAt),
	}, nil
}

func (row dbExpenditure) toModel() (finance.EventExpenditure, error) {
	var err error
	e := finance.EventExpenditure{
		ID:               row.ID,
		EventID:          row.EventID,
		BudgetCategoryID: row.BudgetCategoryID,
		Currency:         row.Currency,
		Description:      row.Description,
		PaymentMethod:    row.PaymentMethod,
		Vendor:           row.Vendor,
		ReceiptNumber:    row.ReceiptNumber,
		ApprovedBy:       row.ApprovedBy,
		Status:           finance.ExpenditureStatus(row.Status),
		Tags:             []string{},
	}
	if e.Amount, err = parseDecimal(row.Amount); err != nil {
		return finance.EventExpenditure{}, err
	}
	if e.Date, err = parseTime(row.SpentOn); err != nil {
		return finance.EventExpenditure{}, err
	}
	if e.CreatedAt, err = parseTime(row.CreatedAt); err != nil {
		return finance.EventExpenditure{}, err
	}
	if e.UpdatedAt, err = parseTime(row.UpdatedAt); err != nil {
		return finance.EventExpenditure{}, err
	}
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &e.Tags); err != nil {
			return finance.EventExpenditure{}, fmt.Errorf("bad stored tags: %w", err)
		}
	}
	return e, nil
}

func (row dbDonation) toModel() (finance.DonationRecord, error) {
	var err error
	d := finance.DonationRecord{
		ID:          row.ID,
		EventID:     row.EventID,
		DonorName:   row.DonorName,
		Currency:    row.Currency,
		Method:      finance.FundraisingMethod(row.Method),
		IsAnonymous: row.IsAnonymous,
		Message:     row.Message,
	}
	if d.Amount, err = parseDecimal(row.Amount); err != nil {
		return finance.DonationRecord{}, err
	}
	if d.ReceivedAt, err = parseTime(row.ReceivedAt); err != nil {
		return finance.DonationRecord{}, err
	}
	return d, nil
}

// ---- MONGO DOCUMENTS ---- //

type docMethod struct {
	Method     string  `bson:"method"`
	Amount     string  `bson:"amount"`
	Percentage float64 `bson:"percentage"`
}

type docFundraising struct {
	EventID       string      `bson:"_id"`
	TargetAmount  string      `bson:"target_amount"`
	CurrentAmount string      `bson:"current_amount"`
	Currency      string      `bson:"currency"`
	Methods       []docMethod `bson:"fundraising_methods"`
	CreatedAt     time.Time   `bson:"created_at"`
	UpdatedAt     time.Time   `bson:"updated_at"`
}

type docCategoryItem struct {
	ID            string `bson:"id"`
	Name          string `bson:"name"`
	Quantity      string `bson:"quantity"`
	Unit          string `bson:"unit"`
	EstimatedCost string `bson:"estimated_cost"`
}

type docCategory struct {
	ID              string            `bson:"id"`
	Name            string            `bson:"name"`
	Description     string            `bson:"description"`
	Priority        string            `bson:"priority"`
	AllocatedAmount string            `bson:"allocated_amount"`
	Items           []docCategoryItem `bson:"items"`
}

type docBudget struct {
	EventID               string        `bson:"_id"`
	TotalBudget           string        `bson:"total_budget"`
	Currency              string        `bson:"currency"`
	Categories            []docCategory `bson:"categories"`
	ContingencyAmount     string        `bson:"contingency_amount"`
	ContingencyPercentage float64       `bson:"contingency_percentage"`
	ApprovalStatus        string        `bson:"approval_status"`
	ApprovedBy            string        `bson:"approved_by,omitempty"`
	ApprovedDate          *time.Time    `bson:"approved_date,omitempty"`
	RejectedBy            string        `bson:"rejected_by,omitempty"`
	RejectionReason       string        `bson:"rejection_reason,omitempty"`
	CreatedAt             time.Time     `bson:"created_at"`
	UpdatedAt             time.Time     `bson:"updated_at"`
}

type docExpenditure struct {
	ID               string    `bson:"_id"`
	EventID          string    `bson:"event_id"`
	BudgetCategoryID string    `bson:"budget_category_id"`
	Amount           string    `bson:"amount"`
	Currency         string    `bson:"currency"`
	Description      string    `bson:"description"`
	Date             time.Time `bson:"date"`
	PaymentMethod    string    `bson:"payment_method"`
	Vendor           string    `bson:"vendor,omitempty"`
	ReceiptNumber    string    `bson:"receipt_number,omitempty"`
	ApprovedBy       string    `bson:"approved_by,omitempty"`
	Status           string    `bson:"status"`
	Tags             []string  `bson:"tags"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

type docDonation struct {
	ID          string    `bson:"_id"`
	EventID     string    `bson:"event_id"`
	DonorName   string    `bson:"donor_name"`
	Amount      string    `bson:"amount"`
	Currency    string    `bson:"currency"`
	Method      string    `bson:"method"`
	IsAnonymous bool      `bson:"is_anonymous"`
	Message     string    `bson:"message,omitempty"`
	ReceivedAt  time.Time `bson:"received_at"`
}

func newDocFundraising(f finance.EventFundraising) docFundraising {
	doc := docFundraising{
		EventID:       f.EventID,
		TargetAmount:  f.TargetAmount.String(),
		CurrentAmount: f.CurrentAmount.String(),
		Currency:      f.Currency,
		Methods:       []docMethod{},
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	for _, m := range f.FundraisingMethods {
		doc.Methods = append(doc.Methods, docMethod{Method: string(m.Method), Amount: m.Amount.String(), Percentage: m.Percentage})
	}
	return doc
}

func (doc docFundraising) toModel() (finance.EventFundraising, error) {
	methods := make([]dbMethod, 0, len(doc.Methods))
	for _, m := range doc.Methods {
		methods = append(methods, dbMethod{Method: m.Method, Amount: m.Amount, Percentage: m.Percentage})
	}
	return dbFundraising{
		EventID:       doc.EventID,
		TargetAmount:  doc.TargetAmount,
		CurrentAmount: doc.CurrentAmount,
		Currency:      doc.Currency,
		CreatedAt:     formatTime(doc.CreatedAt),
		UpdatedAt:     formatTime(doc.UpdatedAt),
	}.toModel(methods)
}

func newDocBudget(b finance.EventBudget) docBudget {
	doc := docBudget{
		EventID:               b.EventID,
		TotalBudget:           b.TotalBudget.String(),
		Currency:              b.Currency,
		Categories:            []docCategory{},
		ContingencyAmount:     b.Contingency.Amount.String(),
		ContingencyPercentage: b.Contingency.Percentage,
		ApprovalStatus:        string(b.ApprovalStatus),
		ApprovedBy:            b.ApprovedBy,
		ApprovedDate:          b.ApprovedDate,
		RejectedBy:            b.RejectedBy,
		RejectionReason:       b.RejectionReason,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
	for _, c := range b.Categories {
		category := docCategory{
			ID:              c.ID,
			Name:            c.Name,
			Description:     c.Description,
			Priority:        string(c.Priority),
			AllocatedAmount: c.AllocatedAmount.String(),
			Items:           []docCategoryItem{},
		}
		for _, item := range c.Items {
			category.Items = append(category.Items, docCategoryItem{
				ID:            item.ID,
				Name:          item.Name,
				Quantity:      item.Quantity.String(),
				Unit:          item.Unit,
				EstimatedCost: item.EstimatedCost.String(),
			})
		}
		doc.Categories = append(doc.Categories, category)
	}
	return doc
}

func (doc docBudget) toModel() (finance.EventBudget, error) {
	row := dbBudget{
		EventID:               doc.EventID,
		TotalBudget:           doc.TotalBudget,
		Currency:              doc.Currency,
		ContingencyAmount:     doc.ContingencyAmount,
		ContingencyPercentage: doc.ContingencyPercentage,
		ApprovalStatus:        doc.ApprovalStatus,
		ApprovedBy:            doc.ApprovedBy,
		RejectedBy:            doc.RejectedBy,
		RejectionReason:       doc.RejectionReason,
		CreatedAt:             formatTime(doc.CreatedAt),
		UpdatedAt:             formatTime(doc.UpdatedAt),
	}
	if doc.ApprovedDate != nil {
		approvedDate := formatTime(*doc.ApprovedDate)
		row.ApprovedDate = &approvedDate
	}
	b, err := row.toModel()
	if err != nil {
		return finance.EventBudget{}, err
	}
	for _, c := range doc.Categories {
		category, err := dbCategory{
			ID:              c.ID,
			Name:            c.Name,
			Description:     c.Description,
			Priority:        c.Priority,
			AllocatedAmount: c.AllocatedAmount,
		}.toModel()
		if err != nil {
			return finance.EventBudget{}, err
		}
		for _, i := range c.Items {
			item, err := dbCategoryItem{
				ID:            i.ID,
				CategoryID:    c.ID,
				Name:          i.Name,
				Quantity:      i.Quantity,
				Unit:          i.Unit,
				EstimatedCost: i.EstimatedCost,
			}.toModel()
			if err != nil {
				return finance.EventBudget{}, err
			}
			category.Items = append(category.Items, item)
		}
		b.Categories = append(b.Categories, category)
	}
	return b, nil
}

func newDocExpenditure(e finance.EventExpenditure) docExpenditure {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return docExpenditure{
		ID:               e.ID,
		EventID:          e.EventID,
		BudgetCategoryID: e.BudgetCategoryID,
		Amount:           e.Amount.String(),
		Currency:         e.Currency,
		Description:      e.Description,
		Date:             e.Date,
		PaymentMethod:    e.PaymentMethod,
		Vendor:           e.Vendor,
		ReceiptNumber:    e.ReceiptNumber,
		ApprovedBy:       e.ApprovedBy,
		Status:           string(e.Status),
		Tags:             tags,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (doc docExpenditure) toModel() (finance.EventExpenditure, error) {
	amount, err := parseDecimal(doc.Amount)
	if err != nil {
		return finance.EventExpenditure{}, err
	}
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return finance.EventExpenditure{
		ID:               doc.ID,
		EventID:          doc.EventID,
		BudgetCategoryID: doc.BudgetCategoryID,
		Amount:           amount,
		Currency:         doc.Currency,
		Description:      doc.Description,
		Date:             doc.Date.UTC(),
		PaymentMethod:    doc.PaymentMethod,
		Vendor:           doc.Vendor,
		ReceiptNumber:    doc.ReceiptNumber,
		ApprovedBy:       doc.ApprovedBy,
		Status:           finance.ExpenditureStatus(doc.Status),
		Tags:             tags,
		CreatedAt:        doc.CreatedAt.UTC(),
		UpdatedAt:        doc.UpdatedAt.UTC(),
	}, nil
}

func newDocDonation(d finance.DonationRecord) docDonation {
	return docDonation{
		ID:          d.ID,
		EventID:     d.EventID,
		DonorName:   d.DonorName,
		Amount:      d.Amount.String(),
		Currency:    d.Currency,
		Method:      string(d.Method),
		IsAnonymous: d.IsAnonymous,
		Message:     d.Message,
		ReceivedAt:  d.ReceivedAt,
	}
}

func (doc docDonation) toModel() (finance.DonationRecord, error) {
	amount, err := parseDecimal(doc.Amount)
	if err != nil {
		return finance.DonationRecord{}, err
	}
	return finance.DonationRecord{
		ID:          doc.ID,
		EventID:     doc.EventID,
		DonorName:   doc.DonorName,
		Amount:      amount,
		Currency:    doc.Currency,
		Method:      finance.FundraisingMethod(doc.Method),
		IsAnonymous: doc.IsAnonymous,
		Message:     doc.Message,
		ReceivedAt:  doc.ReceivedAt.UTC(),
	}, nil
}
