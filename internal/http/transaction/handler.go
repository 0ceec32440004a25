package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
	"github.com/MrJamesThe3rd/moneymuse/internal/storage"
	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

type Handler struct {
	svc   *transaction.Service
	files storage.FileStore
}

func NewHandler(svc *transaction.Service, files storage.FileStore) *Handler {
	return &Handler{svc: svc, files: files}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.query)
	r.Get("/summary", h.summary)
	r.Get("/trends", h.trends)
	r.Post("/", h.create)
	r.Post("/bulk", h.bulkCreate)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/receipt", h.uploadReceipt)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrInvalidQuery), errors.Is(err, transaction.ErrInvalidParams):
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

// parseFilter reads the shared filter query params.
func parseFilter(r *http.Request) (transaction.Filter, error) {
	var f transaction.Filter

	q := r.URL.Query()

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, errors.New("invalid category_id")
		}

		f.CategoryID = &id
	}

	if s := q.Get("type"); s != "" {
		t := transaction.Type(s)
		f.Type = &t
	}

	if s := q.Get("from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return f, errors.New("invalid from date")
		}

		f.From = &t
	}

	if s := q.Get("to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return f, errors.New("invalid to date")
		}

		f.To = &t
	}

	f.Search = q.Get("search")

	return f, nil
}

func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()

	// No sort_by means the service default, date descending.
	sort := transaction.Sort{
		Key:  transaction.SortKey(q.Get("sort_by")),
		Desc: q.Get("desc") == "true",
	}

	var page transaction.Page

	if s := q.Get("page"); s != "" {
		page.Number, _ = strconv.Atoi(s)
	}

	if s := q.Get("page_size"); s != "" {
		page.Size, _ = strconv.Atoi(s)
	}

	result, err := h.svc.Query(r.Context(), ownerID(r), f, sort, page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Items:      toResponseList(result.Items),
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.svc.Summary(r.Context(), ownerID(r), f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Count:        s.Count,
	})
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	interval := transaction.Interval(r.URL.Query().Get("interval"))

	points, err := h.svc.Trends(r.Context(), ownerID(r), f, interval)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := trendsResponse{Points: make([]trendPointResponse, len(points))}
	for i, p := range points {
		resp.Points[i] = trendPointResponse{Period: p.Period, Total: p.Total}
	}

	writeJSON(w, http.StatusOK, resp)
}

type createTransactionRequest struct {
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	CategoryID  uuid.UUID        `json:"category_id"`
	Date        time.Time        `json:"date"`
	IsRecurring bool             `json:"is_recurring"`
	Notes       string           `json:"notes"`
}

func (req createTransactionRequest) toParams() transaction.CreateParams {
	return transaction.CreateParams{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Date:        req.Date,
		IsRecurring: req.IsRecurring,
		Notes:       req.Notes,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), ownerID(r), req.toParams())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

type bulkCreateRequest struct {
	Transactions []createTransactionRequest `json:"transactions"`
}

type bulkCreateResponse struct {
	CreatedCount int                   `json:"created_count"`
	Created      []transactionResponse `json:"created"`
}

func (h *Handler) bulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, len(req.Transactions))
	for i, t := range req.Transactions {
		params[i] = t.toParams()
	}

	txs, err := h.svc.CreateBatch(r.Context(), ownerID(r), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bulkCreateResponse{
		CreatedCount: len(txs),
		Created:      toResponseList(txs),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Type        *transaction.Type `json:"type,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Description *string           `json:"description,omitempty"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Date        *time.Time        `json:"date,omitempty"`
	IsRecurring *bool             `json:"is_recurring,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.CategoryID != nil {
		tx.CategoryID = *req.CategoryID
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if req.IsRecurring != nil {
		tx.IsRecurring = *req.IsRecurring
	}

	if req.Notes != nil {
		tx.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
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

type receiptResponse struct {
	ReceiptURL string `json:"receipt_url"`
}

func (h *Handler) uploadReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Ensure the transaction exists and belongs to the caller before
	// touching disk.
	if _, err := h.svc.Get(r.Context(), ownerID(r), id); err != nil {
		writeError(w, err)
		return
	}

	url, err := h.files.Save("receipts", filepath.Ext(header.Filename), file)
	if err != nil {
		slog.Error("failed to store receipt", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if err := h.svc.AttachReceipt(r.Context(), ownerID(r), id, url); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, receiptResponse{ReceiptURL: url})
}
