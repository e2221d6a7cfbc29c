package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/mcoot/quizgame-accounts/internal/api/handler"
	"github.com/mcoot/quizgame-accounts/internal/api/middleware"
	"github.com/mcoot/quizgame-accounts/internal/services/accounts"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Accounts *accounts.Manager

	// Login attempts per second and burst allowed for each client IP.
	// Zero values fall back to one per second with a burst of five.
	LoginRate  float64
	LoginBurst int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter().UseEncodedPath()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.Accounts)
	friendHandler := handler.NewFriendHandler(cfg.Accounts)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	loginLimit := middleware.RateLimit(newLoginLimiter(cfg))

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes
	api.HandleFunc("/accounts", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/trial", accountHandler.CreateTrial).Methods(http.MethodPost)
	api.Handle("/accounts/login", loginLimit(http.HandlerFunc(accountHandler.Login))).Methods(http.MethodPost)
	api.HandleFunc("/accounts/by-username/{username}", accountHandler.GetByUsername).Methods(http.MethodGet)

	account := api.PathPrefix("/accounts/{id}").Subrouter()
	account.HandleFunc("", accountHandler.Get).Methods(http.MethodGet)
	account.HandleFunc("", accountHandler.Delete).Methods(http.MethodDelete)
	account.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)
	account.HandleFunc("/password", accountHandler.EditPassword).Methods(http.MethodPut)
	account.HandleFunc("/username", accountHandler.EditUsername).Methods(http.MethodPut)
	account.HandleFunc("/promote", accountHandler.Promote).Methods(http.MethodPost)
	account.HandleFunc("/resources/{resource_id}", accountHandler.AddResource).Methods(http.MethodPost)
	account.HandleFunc("/resources/{resource_id}", accountHandler.RemoveResource).Methods(http.MethodDelete)

	// Friend routes
	account.HandleFunc("/friends", friendHandler.List).Methods(http.MethodGet)
	account.HandleFunc("/friends/pending", friendHandler.ListPending).Methods(http.MethodGet)
	account.HandleFunc("/friends/requests", friendHandler.SendRequest).Methods(http.MethodPost)
	account.HandleFunc("/friends/requests/{sender}/accept", friendHandler.Accept).Methods(http.MethodPost)
	account.HandleFunc("/friends/requests/{sender}/reject", friendHandler.Reject).Methods(http.MethodPost)
	account.HandleFunc("/friends/{friend}", friendHandler.Remove).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func newLoginLimiter(cfg RouterConfig) *middleware.LimiterStore {
	limit, burst := rate.Limit(cfg.LoginRate), cfg.LoginBurst
	if limit <= 0 {
		limit = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return middleware.NewLimiterStore(limit, burst, 10*time.Minute)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
