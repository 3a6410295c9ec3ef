package api

import (
	"context"
	"encoding/json"

	"github.com/0xcafe-io/iz"
	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/auth"
	"github.com/fatali-fataliyev/event_finance/internal/contextutil"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/fatali-fataliyev/event_finance/logging"
)

type Api struct {
	Service *finance.FinanceTracker
	Auth    auth.Authenticator
}

func NewApi(service *finance.FinanceTracker, authenticator auth.Authenticator) *Api {
	return &Api{
		Service: service,
		Auth:    authenticator,
	}
}

// begin authenticates the request and returns a traced context carrying the acting admin.
func (api *Api) begin(r *iz.Request) (context.Context, auth.Admin, error) {
	ctx := contextutil.WithTraceID(r.Context())
	admin, err := api.Auth.Authenticate(r.Header.Get(auth.AuthorizationHeader), r.Header.Get(auth.ActorHeader))
	if err != nil {
		logging.Logger.Warnf("[TraceID=%s] | rejected admin request: %v", contextutil.TraceIDFromContext(ctx), err)
		return ctx, auth.Admin{}, err
	}
	return contextutil.WithActor(ctx, admin.Actor), admin, nil
}

func decodeBody(r *iz.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return appErrors.New(appErrors.ErrInvalidInput, "invalid request body: %s", err.Error())
	}
	return nil
}

func errorResponse(ctx context.Context, err error) iz.Responder {
	status := httpStatusFromError(err)
	if status >= 500 {
		logging.Logger.Errorf("[TraceID=%s] | request failed | Error: %v", contextutil.TraceIDFromContext(ctx), err)
	}
	return iz.Respond().Status(status).JSON(appErrors.ErrorResponse{
		Code:    appErrors.CodeOf(err),
		Message: appErrors.MessageOf(err),
	})
}

// ---- EVENT ---- //

func (api *Api) InitializeEventHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req InitializeEventRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	event := finance.Event{
		ID:              req.EventID,
		Title:           req.Title,
		FundraisingGoal: req.FundraisingGoal,
		Currency:        req.Currency,
	}
	if err := api.Service.InitializeEventFinances(ctx, event); err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(201).JSON(MessageResponse{Message: "event finances initialized"})
}

func (api *Api) GetEventFinancesHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	eventID, err := requireParam(r.URL.Query(), "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	data, err := api.Service.GetEventFinancialData(ctx, eventID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(data)
}

func (api *Api) DeleteEventFinancesHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	eventID, err := requireParam(r.URL.Query(), "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := api.Service.DeleteEventFinances(ctx, eventID); err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(MessageResponse{Message: "event finances deleted"})
}

// ---- BUDGET ---- //

func (api *Api) CreateBudgetHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CreateBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	budget, err := api.Service.CreateBudget(ctx, req.EventID, req.TotalAmount)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(201).JSON(BudgetResponse{Budget: budget, Warnings: []finance.ConflictWarning{}})
}

func (api *Api) UpdateBudgetHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req UpdateBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	fields := finance.UpdateBudgetRequest{
		NewTotalBudget:        req.TotalBudget,
		NewContingencyPercent: req.ContingencyPercent,
	}
	budget, warnings, err := api.Service.UpdateBudget(ctx, req.EventID, fields)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(BudgetResponse{Budget: budget, Warnings: warnings})
}

func (api *Api) SubmitBudgetHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req EventRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	budget, err := api.Service.SubmitBudget(ctx, req.EventID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(BudgetResponse{Budget: budget, Warnings: finance.BudgetWarnings(budget)})
}

func (api *Api) ApproveBudgetHandler(r *iz.Request) iz.Responder {
	ctx, admin, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req EventRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	budget, err := api.Service.ApproveBudget(ctx, req.EventID, admin.Actor)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(BudgetResponse{Budget: budget, Warnings: finance.BudgetWarnings(budget)})
}

func (api *Api) RejectBudgetHandler(r *iz.Request) iz.Responder {
	ctx, admin, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req RejectBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	budget, err := api.Service.RejectBudget(ctx, req.EventID, admin.Actor, req.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(BudgetResponse{Budget: budget, Warnings: []finance.ConflictWarning{}})
}

func (api *Api) ReopenBudgetHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req EventRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	budget, err := api.Service.ReopenBudget(ctx, req.EventID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(BudgetResponse{Budget: budget, Warnings: finance.BudgetWarnings(budget)})
}

// ---- CATEGORIES ---- //

func (api *Api) AddCategoryHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}
	if req.AllocatedAmount == nil {
		return errorResponse(ctx, appErrors.New(appErrors.ErrInvalidInput, "allocated_amount is required"))
	}

	category := finance.CategoryRequest{
		ID:              req.ID,
		Name:            req.Name,
		Description:     req.Description,
		Priority:        finance.Priority(req.Priority),
		AllocatedAmount: *req.AllocatedAmount,
	}
	created, warnings, err := api.Service.AddBudgetCategory(ctx, req.EventID, category)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(201).JSON(CategoryResponse{Category: created, Warnings: warnings})
}

func (api *Api) UpdateCategoryHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CategoryRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	fields := finance.UpdateCategoryRequest{
		ID:                 req.ID,
		NewName:            req.Name,
		NewDescription:     req.Description,
		NewPriority:        finance.Priority(req.Priority),
		NewAllocatedAmount: req.AllocatedAmount,
	}
	updated, warnings, err := api.Service.UpdateBudgetCategory(ctx, req.EventID, fields)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(CategoryResponse{Category: updated, Warnings: warnings})
}

func (api *Api) DeleteCategoryHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	params := r.URL.Query()
	eventID, err := requireParam(params, "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}
	categoryID, err := requireParam(params, "category_id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := api.Service.RemoveBudgetCategory(ctx, eventID, categoryID); err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(MessageResponse{Message: "category deleted"})
}

func (api *Api) CategoryUtilizationHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	params := r.URL.Query()
	eventID, err := requireParam(params, "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}
	categoryID, err := requireParam(params, "category_id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	summary, err := api.Service.GetCategoryUtilization(ctx, eventID, categoryID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(summary)
}

func (api *Api) AddCategoryItemHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CategoryItemRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	item := finance.CategoryItemRequest{
		Name:          req.Name,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		EstimatedCost: req.EstimatedCost,
	}
	created, warnings, err := api.Service.AddCategoryItem(ctx, req.EventID, req.CategoryID, item)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(201).JSON(CategoryItemResponse{Item: created, Warnings: warnings})
}

func (api *Api) DeleteCategoryItemHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	params := r.URL.Query()
	eventID, err := requireParam(params, "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}
	categoryID, err := requireParam(params, "category_id")
	if err != nil {
		return errorResponse(ctx, err)
	}
	itemID, err := requireParam(params, "item_id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := api.Service.RemoveCategoryItem(ctx, eventID, categoryID, itemID); err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(MessageResponse{Message: "item deleted"})
}

// ---- FUNDRAISING ---- //

func (api *Api) AddDonationHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req DonationRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	donation := finance.Donation{
		DonorName:   req.DonorName,
		Amount:      req.Amount,
		Method:      finance.FundraisingMethod(req.Method),
		IsAnonymous: req.IsAnonymous,
		Message:     req.Message,
	}
	fundraising, err := api.Service.AddDonation(ctx, req.EventID, donation)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(201).JSON(fundraising)
}

func (api *Api) ListDonationsHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	eventID, err := requireParam(r.URL.Query(), "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	donations, err := api.Service.ListDonations(ctx, eventID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(ListDonationsResponse{Donations: donations})
}

func (api *Api) SetFundraisingTargetHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req FundraisingTargetRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	fundraising, err := api.Service.SetFundraisingTarget(ctx, req.EventID, req.TargetAmount)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(fundraising)
}

// ---- EXPENDITURES ---- //

func (api *Api) AddExpenditureHandler(r *iz.Request) iz.Responder {
	ctx, admin, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req ExpenditureRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	expenditure, err := req.toModel()
	if err != nil {
		return errorResponse(ctx, err)
	}
	if expenditure.Status == finance.ExpenditureApproved || expenditure.Status == finance.ExpenditurePaid {
		expenditure.ApprovedBy = admin.Actor
	}

	created, warnings, err := api.Service.AddExpenditure(ctx, expenditure)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(201).JSON(ExpenditureResponse{Expenditure: created, Warnings: warnings})
}

func (api *Api) UpdateExpenditureStatusHandler(r *iz.Request) iz.Responder {
	ctx, admin, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req ExpenditureStatusRequest
	if err := decodeBody(r, &req); err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := api.Service.UpdateExpenditureStatus(ctx, req.EventID, req.ExpenditureID, finance.ExpenditureStatus(req.Status), admin.Actor)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(ExpenditureResponse{Expenditure: updated, Warnings: []finance.ConflictWarning{}})
}

func (api *Api) ListExpendituresHandler(r *iz.Request) iz.Responder {
	ctx, _, err := api.begin(r)
	if err != nil {
		return errorResponse(ctx, err)
	}

	params := r.URL.Query()
	eventID, err := requireParam(params, "event_id")
	if err != nil {
		return errorResponse(ctx, err)
	}
	filter, err := ExpenditureFilterFromParams(params)
	if err != nil {
		return errorResponse(ctx, err)
	}

	expenditures, err := api.Service.ListExpenditures(ctx, eventID, filter)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return iz.Respond().Status(200).JSON(ListExpendituresResponse{Expenditures: expenditures})
}
