package balancesheet

import (
	"strings"
	"time"
)

// Names given a fixed position in the summary view.
const (
	NameBank      = "BANK"
	NamePettyCash = "Petty Cash"
)

// BalanceSheet is a named money container. Balance is maintained by the
// ledger and always equals InitialBalance plus the signed amounts of the
// transactions that reference the sheet.
type BalanceSheet struct {
	ID             int64
	Name           string
	InitialBalance int64
	Balance        int64
	CreatedAt      time.Time
}

// Drift reports a sheet whose stored balance disagrees with its history.
type Drift struct {
	ID       int64
	Name     string
	Balance  int64
	Expected int64
}

func (d Drift) Difference() int64 {
	return d.Balance - d.Expected
}

// Order returns sheets in summary order: BANK, then Petty Cash, then the
// rest as given. Entries repeating an earlier id and name (name compared
// case-insensitively) are dropped.
func Order(sheets []BalanceSheet) []BalanceSheet {
	type key struct {
		id   int64
		name string
	}

	seen := make(map[key]struct{}, len(sheets))

	var bank, petty, rest []BalanceSheet

	for _, bs := range sheets {
		k := key{id: bs.ID, name: strings.ToLower(strings.TrimSpace(bs.Name))}
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}

		switch strings.TrimSpace(bs.Name) {
		case NameBank:
			bank = append(bank, bs)
		case NamePettyCash:
			petty = append(petty, bs)
		default:
			rest = append(rest, bs)
		}
	}

	out := make([]BalanceSheet, 0, len(bank)+len(petty)+len(rest))
	out = append(out, bank...)
	out = append(out, petty...)

	return append(out, rest...)
}
