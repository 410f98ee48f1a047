package transaction

import (
	"time"
)

// Type classifies a transaction by the sign of its amount.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// TypeOf returns the classification implied by a signed amount.
func TypeOf(amount int64) Type {
	if amount < 0 {
		return TypeExpense
	}

	return TypeIncome
}

// Transaction is a dated, signed ledger entry against one item and,
// optionally, one balance sheet.
type Transaction struct {
	ID             int64
	Date           time.Time
	CategoryID     int64
	ItemID         int64
	Payee          string
	Amount         int64 // smallest currency unit; positive is income
	BalanceSheetID *int64
	AttachmentURL  string
	CreatedAt      time.Time
	UpdatedAt      *time.Time

	// Loaded via JOIN on reads.
	CategoryName     string
	ItemName         string
	BalanceSheetName string
}

func (t *Transaction) Type() Type {
	return TypeOf(t.Amount)
}
