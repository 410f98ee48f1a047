package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/rkap/internal/report"
)

const apiTimeout = 10 * time.Second

// FormatAmount renders whole currency units with dot thousands separators.
func FormatAmount(amount int64) string {
	return report.FormatAmount(amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// APICtx returns a context with the standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
