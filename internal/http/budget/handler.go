package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
	"github.com/MrJamesThe3rd/moneymuse/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/overview", h.overview)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Get("/{id}/progress", h.progress)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "budget not found", http.StatusNotFound)
	case errors.Is(err, budget.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, budget.ErrInvalidParams):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func ownerID(r *http.Request) uuid.UUID {
	id, _ := auth.OwnerID(r.Context())
	return id
}

type budgetResponse struct {
	ID              uuid.UUID       `json:"id"`
	CategoryID      uuid.UUID       `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	Amount          decimal.Decimal `json:"amount"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	RolloverEnabled bool            `json:"rollover_enabled"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:              b.ID,
		CategoryID:      b.CategoryID,
		CategoryName:    b.CategoryName,
		Amount:          b.Amount,
		Month:           int(b.Month),
		Year:            b.Year,
		RolloverEnabled: b.RolloverEnabled,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	writeJSON(w, http.StatusOK, resp)
}

type createBudgetRequest struct {
	CategoryID      uuid.UUID       `json:"category_id"`
	Amount          decimal.Decimal `json:"amount"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	RolloverEnabled bool            `json:"rollover_enabled"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), ownerID(r), budget.CreateParams{
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Month:           time.Month(req.Month),
		Year:            req.Year,
		RolloverEnabled: req.RolloverEnabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(b))
}

type updateBudgetRequest struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Month           *int             `json:"month,omitempty"`
	Year            *int             `json:"year,omitempty"`
	RolloverEnabled *bool            `json:"rollover_enabled,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := budget.UpdateParams{
		Amount:          req.Amount,
		Year:            req.Year,
		RolloverEnabled: req.RolloverEnabled,
	}

	if req.Month != nil {
		m := time.Month(*req.Month)
		params.Month = &m
	}

	b, err := h.svc.Update(r.Context(), ownerID(r), id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID(r), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type progressResponse struct {
	BudgetID  uuid.UUID       `json:"budget_id"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   float64         `json:"progress_percent"`
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Progress(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progressResponse{
		BudgetID:  p.BudgetID,
		Amount:    p.Amount,
		Spent:     p.Spent,
		Remaining: p.Remaining,
		Percent:   p.Percent,
	})
}

type overviewResponse struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalBudgeted decimal.Decimal `json:"total_budgeted"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	Remaining     decimal.Decimal `json:"remaining"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month is required", http.StatusBadRequest)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}

	o, err := h.svc.Overview(r.Context(), ownerID(r), time.Month(month), year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		Month:         int(o.Month),
		Year:          o.Year,
		TotalBudgeted: o.TotalBudgeted,
		TotalSpent:    o.TotalSpent,
		Remaining:     o.Remaining,
	})
}
