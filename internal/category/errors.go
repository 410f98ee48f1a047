package category

import "errors"

var (
	ErrNotFound     = errors.New("category not found")
	ErrItemNotFound = errors.New("item not found")
)
