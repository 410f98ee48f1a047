package balancesheet

import "errors"

var ErrNotFound = errors.New("balance sheet not found")
