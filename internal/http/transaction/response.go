package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

type transactionResponse struct {
	ID               int64            `json:"id"`
	Date             string           `json:"date"`
	Type             transaction.Type `json:"type"`
	CategoryID       int64            `json:"categoryId"`
	CategoryName     string           `json:"categoryName,omitempty"`
	ItemID           int64            `json:"itemId"`
	ItemName         string           `json:"itemName,omitempty"`
	Payee            string           `json:"payee"`
	Amount           int64            `json:"amount"`
	BalanceSheetID   *int64           `json:"balanceSheetId"`
	BalanceSheetName string           `json:"balanceSheetName,omitempty"`
	AttachmentURL    string           `json:"attachmentUrl,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        *time.Time       `json:"updatedAt,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:               tx.ID,
		Date:             tx.Date.Format(time.DateOnly),
		Type:             tx.Type(),
		CategoryID:       tx.CategoryID,
		CategoryName:     tx.CategoryName,
		ItemID:           tx.ItemID,
		ItemName:         tx.ItemName,
		Payee:            tx.Payee,
		Amount:           tx.Amount,
		BalanceSheetID:   tx.BalanceSheetID,
		BalanceSheetName: tx.BalanceSheetName,
		AttachmentURL:    tx.AttachmentURL,
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type skippedRowResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type importResponse struct {
	SuccessCount int                  `json:"successCount"`
	SkippedRows  []skippedRowResponse `json:"skippedRows"`
}

func toImportResponse(res *transaction.ImportResult) importResponse {
	resp := importResponse{
		SuccessCount: res.SuccessCount,
		SkippedRows:  make([]skippedRowResponse, len(res.SkippedRows)),
	}

	for i, s := range res.SkippedRows {
		resp.SkippedRows[i] = skippedRowResponse{Row: s.Row, Reason: s.Reason}
	}

	return resp
}
