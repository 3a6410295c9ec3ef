package api

import (
	"net/http"

	"github.com/0xcafe-io/iz"
	"github.com/fatali-fataliyev/event_finance/internal/auth"
	"github.com/rs/cors"
)

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{auth.AuthorizationHeader, auth.ActorHeader, "Content-Type"},
	AllowCredentials: true,
})

// Routes mounts every admin endpoint and wraps the mux with CORS.
func (api *Api) Routes() http.Handler {
	server := http.NewServeMux()

	// EVENT ENDPOINTS.
	server.HandleFunc("POST /api/finance/events", iz.Bind(api.InitializeEventHandler))     // Initialize event finances
	server.HandleFunc("GET /api/finance/events", iz.Bind(api.GetEventFinancesHandler))     // Budget, fundraising, expenditures and summary
	server.HandleFunc("DELETE /api/finance/events", iz.Bind(api.DeleteEventFinancesHandler)) // Remove all finances of an event

	// BUDGET ENDPOINTS.
	server.HandleFunc("POST /api/finance/budget", iz.Bind(api.CreateBudgetHandler))          // Create draft budget
	server.HandleFunc("PUT /api/finance/budget", iz.Bind(api.UpdateBudgetHandler))           // Change total or contingency
	server.HandleFunc("POST /api/finance/budget/submit", iz.Bind(api.SubmitBudgetHandler))   // draft -> pending
	server.HandleFunc("POST /api/finance/budget/approve", iz.Bind(api.ApproveBudgetHandler)) // -> approved
	server.HandleFunc("POST /api/finance/budget/reject", iz.Bind(api.RejectBudgetHandler))   // -> rejected
	server.HandleFunc("POST /api/finance/budget/reopen", iz.Bind(api.ReopenBudgetHandler))   // rejected -> draft

	// CATEGORY ENDPOINTS.
	server.HandleFunc("POST /api/finance/categories", iz.Bind(api.AddCategoryHandler))
	server.HandleFunc("PUT /api/finance/categories", iz.Bind(api.UpdateCategoryHandler))
	server.HandleFunc("DELETE /api/finance/categories", iz.Bind(api.DeleteCategoryHandler))
	server.HandleFunc("GET /api/finance/categories/utilization", iz.Bind(api.CategoryUtilizationHandler))
	server.HandleFunc("POST /api/finance/items", iz.Bind(api.AddCategoryItemHandler))
	server.HandleFunc("DELETE /api/finance/items", iz.Bind(api.DeleteCategoryItemHandler))

	// FUNDRAISING ENDPOINTS.
	server.HandleFunc("POST /api/finance/donations", iz.Bind(api.AddDonationHandler))
	server.HandleFunc("GET /api/finance/donations", iz.Bind(api.ListDonationsHandler))
	server.HandleFunc("PUT /api/finance/fundraising/target", iz.Bind(api.SetFundraisingTargetHandler))

	// EXPENDITURE ENDPOINTS.
	server.HandleFunc("POST /api/finance/expenditures", iz.Bind(api.AddExpenditureHandler))
	server.HandleFunc("GET /api/finance/expenditures", iz.Bind(api.ListExpendituresHandler))
	server.HandleFunc("PUT /api/finance/expenditures/status", iz.Bind(api.UpdateExpenditureStatusHandler))

	return corsConf.Handler(server)
}
