package transaction

import "errors"

var (
	ErrNotFound             = errors.New("transaction not found")
	ErrBalanceSheetNotFound = errors.New("balance sheet not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrCategoryNotFound     = errors.New("category not found")
)
