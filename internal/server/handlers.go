package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/billsplit/billsplit/internal/models"
	"github.com/billsplit/billsplit/internal/money"
	"github.com/billsplit/billsplit/internal/service"
	"github.com/billsplit/billsplit/internal/storage"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps engine errors onto HTTP statuses: storage failures are
// 503, missing aggregates 404, and everything else a client-input 400.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, storage.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrCalculationNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads the request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var split models.Split
	if err := decode(r, &split); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.splits.Allocate(r.Context(), split)
	if err != nil {
		writeError(w, err)
		return
	}

	allocationsTotal.WithLabelValues(string(split.Method)).Inc()
	writeJSON(w, http.StatusOK, result)
}

type scanRequest struct {
	Split models.Split `json:"split"`
	// Image is the receipt image, base64 in JSON.
	Image []byte `json:"image"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.splits.ScanReceipt(r.Context(), req.Split, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type saveCalculationRequest struct {
	Split     models.Split `json:"split"`
	GroupName string       `json:"groupName,omitempty"`
}

func (s *Server) handleSaveCalculation(w http.ResponseWriter, r *http.Request) {
	var req saveCalculationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	calc, err := s.splits.Save(r.Context(), req.Split, req.GroupName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, calc)
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	calcs, err := s.splits.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calcs)
}

func (s *Server) handleDeleteCalculation(w http.ResponseWriter, r *http.Request) {
	if err := s.splits.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearCalculations(w http.ResponseWriter, r *http.Request) {
	if err := s.splits.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.groups.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

type addMemberRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.groups.AddMember(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

type addExpenseRequest struct {
	Title  string      `json:"title"`
	Amount money.Money `json:"amount"`
	PaidBy string      `json:"paidBy"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Amount < 0 {
		writeError(w, money.ErrInvalidAmount)
		return
	}

	group, err := s.groups.AddExpense(r.Context(), r.PathValue("id"), req.Title, req.Amount, req.PaidBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.groups.Balances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
