package category

import "time"

// Category is an RKAP budget line. Budget is the planned annual spend in
// the smallest currency unit.
type Category struct {
	ID        int64
	Name      string
	Budget    int64
	CreatedAt time.Time
}

// Item is a spending line item that belongs to exactly one category.
type Item struct {
	ID         int64
	Name       string
	CategoryID int64
	CreatedAt  time.Time

	// Loaded via JOIN on reads.
	CategoryName string
}
