package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

type transactionResponse struct {
	ID           uuid.UUID        `json:"id"`
	Type         transaction.Type `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Description  string           `json:"description,omitempty"`
	CategoryID   uuid.UUID        `json:"category_id"`
	CategoryName string           `json:"category_name"`
	Date         time.Time        `json:"date"`
	ReceiptURL   string           `json:"receipt_url,omitempty"`
	IsRecurring  bool             `json:"is_recurring"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		Type:         tx.Type,
		Amount:       tx.Amount,
		Description:  tx.Description,
		CategoryID:   tx.CategoryID,
		CategoryName: tx.CategoryName,
		Date:         tx.Date,
		ReceiptURL:   tx.ReceiptURL,
		IsRecurring:  tx.IsRecurring,
		Notes:        tx.Notes,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type queryResponse struct {
	Items      []transactionResponse `json:"items"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
}

type summaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Count        int             `json:"count"`
}

type trendPointResponse struct {
	Period time.Time       `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

type trendsResponse struct {
	Points []trendPointResponse `json:"points"`
}
