package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/ledger"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// server hosts a single ledger instance over HTTP. The mutex is the
// one-call-at-a-time guarantee the ledger asks of its host: the ledger
// itself carries no locks.
type server struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	log    zerolog.Logger
}

func newServer(l *ledger.Ledger, log zerolog.Logger) *server {
	return &server{ledger: l, log: log}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/mint", s.handleMint)
	mux.HandleFunc("/transfers", s.handleTransfer)
	mux.HandleFunc("/transfers/batch", s.handleBatchTransfer)
	mux.HandleFunc("/burn", s.handleBurn)
	mux.HandleFunc("/blacklist", s.handleBlacklist)
	mux.HandleFunc("/accounts/balance", s.handleBalance)
	mux.HandleFunc("/supply", s.handleSupply)
	mux.HandleFunc("/ledgerEntries", s.handleLedgerEntries)
	return mux
}

// caller extracts the environment-supplied identity. Every mutating
// endpoint requires it; the ledger never trusts a request body for the
// sender.
func caller(r *http.Request) (models.AccountID, bool) {
	id := r.Header.Get("X-Account-Id")
	return models.AccountID(id), id != ""
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *server) handleMint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	from, ok := caller(r)
	if !ok {
		http.Error(w, "X-Account-Id header is required", http.StatusBadRequest)
		return
	}

	var req struct {
		To     models.AccountID `json:"to"`
		Amount models.Balance   `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.ledger.Mint(r.Context(), from, req.To, req.Amount)
	s.mu.Unlock()
	if err != nil {
		s.rejected(w, r, err)
		return
	}

	s.log.Info().Str("caller", string(from)).Str("to", string(req.To)).
		Uint64("amount", uint64(req.Amount)).Msg("minted")
	created(w)
}

func (s *server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	from, ok := caller(r)
	if !ok {
		http.Error(w, "X-Account-Id header is required", http.StatusBadRequest)
		return
	}

	var req struct {
		To     models.AccountID `json:"to"`
		Amount models.Balance   `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.ledger.Transfer(r.Context(), from, req.To, req.Amount)
	s.mu.Unlock()
	if err != nil {
		s.rejected(w, r, err)
		return
	}

	s.log.Info().Str("from", string(from)).Str("to", string(req.To)).
		Uint64("amount", uint64(req.Amount)).Msg("transferred")
	created(w)
}

func (s *server) handleBatchTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	from, ok := caller(r)
	if !ok {
		http.Error(w, "X-Account-Id header is required", http.StatusBadRequest)
		return
	}

	var req struct {
		Recipients []models.AccountID `json:"recipients"`
		Amount     models.Balance     `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.ledger.BatchTransfer(r.Context(), from, req.Recipients, req.Amount)
	s.mu.Unlock()
	if err != nil {
		s.rejected(w, r, err)
		return
	}

	s.log.Info().Str("from", string(from)).Int("recipients", len(req.Recipients)).
		Uint64("amount", uint64(req.Amount)).Msg("batch transferred")
	created(w)
}

func (s *server) handleBurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	from, ok := caller(r)
	if !ok {
		http.Error(w, "X-Account-Id header is required", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount models.Balance `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.ledger.Burn(r.Context(), from, req.Amount)
	s.mu.Unlock()
	if err != nil {
		s.rejected(w, r, err)
		return
	}

	s.log.Info().Str("from", string(from)).Uint64("amount", uint64(req.Amount)).Msg("burned")
	created(w)
}

func (s *server) handleBlacklist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	from, ok := caller(r)
	if !ok {
		http.Error(w, "X-Account-Id header is required", http.StatusBadRequest)
		return
	}

	var req struct {
		Account models.AccountID `json:"account"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	var err error
	if r.Method == http.MethodPost {
		err = s.ledger.Blacklist(from, req.Account)
	} else {
		err = s.ledger.Unblacklist(from, req.Account)
	}
	s.mu.Unlock()
	if err != nil {
		s.rejected(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		http.Error(w, "account_id is a mandatory field", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	balance := s.ledger.BalanceOf(models.AccountID(accountID))
	s.mu.Unlock()

	response := struct {
		AccountID string         `json:"account_id"`
		Balance   models.Balance `json:"balance"`
	}{
		AccountID: accountID,
		Balance:   balance,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *server) handleSupply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	supply := s.ledger.TotalSupply()
	s.mu.Unlock()

	response := struct {
		TotalSupply models.Balance `json:"total_supply"`
	}{
		TotalSupply: supply,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *server) handleLedgerEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	ledgerEntries, err := s.ledger.GetLedgerEntries()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ledgerEntries)
}

// rejected maps the ledger's closed error set onto HTTP statuses.
func (s *server) rejected(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, ledger.ErrNotOwner), errors.Is(err, ledger.ErrBlacklisted):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrInsufficientBalance), errors.Is(err, ledger.ErrBalanceOverflow):
		status = http.StatusUnprocessableEntity
	}

	s.log.Warn().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	http.Error(w, err.Error(), status)
}

func created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"status":"ok"}`))
}
