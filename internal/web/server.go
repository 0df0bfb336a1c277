// Package web exposes the ledger core over HTTP. It owns request/response
// schemas, the error-to-status mapping, and the API-key middleware; all
// business rules live in the account and transfer packages.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger/account"
	"ledger/money"
	"ledger/transaction"
	"ledger/transfer"
)

// Config used to create a new Server
type Config struct {
	Accounts  *account.Manager
	Transfers *transfer.Engine
	// APIKey is required on every request except /health. Empty disables
	// authentication, as does AppEnv == "test".
	APIKey string
	AppEnv string
	Logger *zap.Logger
}

func NewHTTPServer(addr string, config *Config) *http.Server {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	s := &httpServer{Config: config}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	api.Use(apiKeyMiddleware(config))
	api.HandleFunc("/accounts", s.handleCreateAccount).Methods("POST")
	api.HandleFunc("/accounts/{id}", s.handleGetAccount).Methods("GET")
	api.HandleFunc("/accounts/{id}/balance", s.handleUpdateBalance).Methods("PUT")
	api.HandleFunc("/transactions", s.handleCreateTransaction).Methods("POST")
	api.HandleFunc("/transactions/{id}", s.handleGetTransaction).Methods("GET")

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}

type httpServer struct {
	*Config
}

type createAccountRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type updateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

type transferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// accountResponse serializes balances as fixed two-decimal strings
type accountResponse struct {
	ID        string `json:"id"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

type transactionResponse struct {
	ID            string `json:"id"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newAccountResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Balance:   a.Balance.StringFixed(2),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func newTransactionResponse(t *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount.StringFixed(2),
		Status:        string(t.Status),
		ErrorMessage:  t.ErrorMessage,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

func (s *httpServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *httpServer) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	a, err := s.Accounts.CreateAccount(req.InitialBalance)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAccountResponse(a))
}

func (s *httpServer) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	a, err := s.Accounts.GetAccount(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccountResponse(a))
}

func (s *httpServer) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req updateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	a, err := s.Accounts.SetBalance(id, req.Balance)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAccountResponse(a))
}

func (s *httpServer) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	txn, err := s.Transfers.Transfer(req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTransactionResponse(txn))
}

func (s *httpServer) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	txn, err := s.Transfers.GetTransaction(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionResponse(txn))
}

// writeDomainError maps core error kinds onto HTTP status codes:
// NotFound → 404, InvalidAmount and InsufficientFunds → 400.
func (s *httpServer) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound), errors.Is(err, transaction.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, money.ErrInvalidAmount), errors.Is(err, transfer.ErrInsufficientFunds):
		s.writeError(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		s.Logger.Error("internal error", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}

func (s *httpServer) writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
