package transaction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

// date accepts "2006-01-02" or a full RFC 3339 timestamp.
type date time.Time

func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*d = date{}
		return nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = date(t)
			return nil
		}
	}

	return fmt.Errorf("invalid date %q", s)
}

type transactionRequest struct {
	Date           date    `json:"date"`
	CategoryID     int64   `json:"categoryId"`
	ItemID         int64   `json:"itemId"`
	Payee          string  `json:"payee"`
	Amount         int64   `json:"amount"`
	BalanceSheetID *int64  `json:"balanceSheetId"`
	AttachmentURL  *string `json:"attachmentUrl"`
}

// params maps the body onto the service input. An omitted attachmentUrl
// keeps the stored attachment on update; an empty string clears it.
func (r transactionRequest) params() transaction.CreateParams {
	p := transaction.CreateParams{
		Date:           time.Time(r.Date),
		CategoryID:     r.CategoryID,
		ItemID:         r.ItemID,
		Payee:          r.Payee,
		Amount:         r.Amount,
		BalanceSheetID: r.BalanceSheetID,
		KeepAttachment: r.AttachmentURL == nil,
	}

	if r.AttachmentURL != nil {
		p.AttachmentURL = *r.AttachmentURL
	}

	return p
}

type updateRequest struct {
	ID int64 `json:"id"`
	transactionRequest
}

type deleteRequest struct {
	IDs []int64 `json:"ids"`
}

type importRequest struct {
	Data []transaction.ImportRow `json:"data"`
}
