package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
	"github.com/MrJamesThe3rd/moneymuse/internal/importer"
	"github.com/MrJamesThe3rd/moneymuse/internal/suggest"
	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

type Handler struct {
	parser     *importer.Parser
	txSvc      *transaction.Service
	suggestSvc *suggest.Service
}

func NewHandler(parser *importer.Parser, txSvc *transaction.Service, suggestSvc *suggest.Service) *Handler {
	return &Handler{
		parser:     parser,
		txSvc:      txSvc,
		suggestSvc: suggestSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.parse)
	r.Post("/confirm", h.confirm)
}

type rowDTO struct {
	Type                transaction.Type `json:"type"`
	Amount              decimal.Decimal  `json:"amount"`
	Description         string           `json:"description"`
	Date                time.Time        `json:"date"`
	SuggestedCategoryID *uuid.UUID       `json:"suggested_category_id,omitempty"`
}

type parseResponse struct {
	Rows []rowDTO `json:"rows"`
}

// parse reads an uploaded statement and returns the parsed rows with
// category suggestions. Nothing is persisted until the client confirms.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	owner, _ := auth.OwnerID(r.Context())

	resp := parseResponse{Rows: make([]rowDTO, 0, len(rows))}

	for _, row := range rows {
		dto := rowDTO{
			Type:        row.Type,
			Amount:      row.Amount,
			Description: row.Description,
			Date:        row.Date,
		}

		categoryID, err := h.suggestSvc.Category(r.Context(), owner, row.Description)
		if err == nil && categoryID != uuid.Nil {
			dto.SuggestedCategoryID = &categoryID
		}

		resp.Rows = append(resp.Rows, dto)
	}

	writeJSON(w, http.StatusOK, resp)
}

type confirmRowDTO struct {
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	CategoryID  uuid.UUID        `json:"category_id"`
}

type confirmRequest struct {
	Rows []confirmRowDTO `json:"rows"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	owner, _ := auth.OwnerID(r.Context())

	params := make([]transaction.CreateParams, len(req.Rows))
	for i, row := range req.Rows {
		params[i] = transaction.CreateParams{
			Type:        row.Type,
			Amount:      row.Amount,
			Description: row.Description,
			CategoryID:  row.CategoryID,
			Date:        row.Date,
		}
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), owner, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, confirmResponse{Imported: len(txs)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
