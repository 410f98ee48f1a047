package transaction

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fixed skip reasons reported back to the uploader.
const (
	ReasonDateMissing             = "Date is missing."
	ReasonPayeeMissing            = "Payee is missing."
	ReasonItemNameMissing         = "Item Name is missing."
	ReasonBalanceSheetNameMissing = "Balance Sheet Name is missing."
	ReasonAmountInvalid           = "Amount is not a valid number."
	ReasonAmountZero              = "Amount must not be zero."
	ReasonDateInvalid             = "Date is not a valid date."
)

func reasonItemNotFound(name string) string {
	return `Item "` + name + `" not found.`
}

func reasonBalanceSheetNotFound(name string) string {
	return `Balance Sheet "` + name + `" not found.`
}

// Import row keys.
const (
	FieldDate             = "date"
	FieldItemName         = "itemName"
	FieldPayee            = "payee"
	FieldAmount           = "amount"
	FieldBalanceSheetName = "balanceSheetName"
)

// dateLayouts are tried in order when parsing an import date.
var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	time.RFC3339,
}

// Amounts are negated on update and delete, so math.MinInt64 is out of range.
var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(-math.MaxInt64)
)

// ImportRow is one untrusted external record. Values may be strings,
// JSON numbers or absent.
type ImportRow map[string]any

// get looks a key up exactly, then case-insensitively.
func (r ImportRow) get(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}

	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}

	return nil, false
}

func (r ImportRow) text(key string) string {
	v, ok := r.get(key)
	if !ok || v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	}

	return strings.TrimSpace(fmt.Sprint(v))
}

// amount parses the amount into the smallest currency unit, rounding any
// fractional part.
func (r ImportRow) amount() (int64, bool) {
	v, ok := r.get(FieldAmount)
	if !ok || v == nil {
		return 0, false
	}

	var d decimal.Decimal

	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}

		d = decimal.NewFromFloat(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	case json.Number:
		parsed, err := decimal.NewFromString(val.String())
		if err != nil {
			return 0, false
		}

		d = parsed
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}

		d = parsed
	default:
		return 0, false
	}

	d = d.Round(0)
	if d.GreaterThan(maxAmount) || d.LessThan(minAmount) {
		return 0, false
	}

	return d.IntPart(), true
}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	SuccessCount int
	SkippedRows  []SkippedRow
}

// ItemRef and SheetRef are the name-resolution snapshot used by an import.
type ItemRef struct {
	ID         int64
	CategoryID int64
	Name       string
}

type SheetRef struct {
	ID   int64
	Name string
}

type Catalog struct {
	Items         []ItemRef
	BalanceSheets []SheetRef
}

// AcceptedRow is an import row that passed every check.
type AcceptedRow struct {
	Line   int
	Params CreateParams
}

func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Reconcile validates rows in order and resolves item and balance-sheet
// names case-insensitively. The first failing check decides a row's
// reason. Line numbers are 1-based and account for a header row.
func Reconcile(rows []ImportRow, catalog *Catalog) ([]AcceptedRow, []SkippedRow) {
	items := make(map[string]ItemRef, len(catalog.Items))
	for _, it := range catalog.Items {
		k := nameKey(it.Name)
		if _, dup := items[k]; !dup {
			items[k] = it
		}
	}

	sheets := make(map[string]SheetRef, len(catalog.BalanceSheets))
	for _, bs := range catalog.BalanceSheets {
		k := nameKey(bs.Name)
		if _, dup := sheets[k]; !dup {
			sheets[k] = bs
		}
	}

	var (
		accepted []AcceptedRow
		skipped  []SkippedRow
	)

	for i, row := range rows {
		line := i + 2

		params, reason := reconcileRow(row, items, sheets)
		if reason != "" {
			skipped = append(skipped, SkippedRow{Row: line, Reason: reason})
			continue
		}

		accepted = append(accepted, AcceptedRow{Line: line, Params: params})
	}

	return accepted, skipped
}

func reconcileRow(row ImportRow, items map[string]ItemRef, sheets map[string]SheetRef) (CreateParams, string) {
	dateText := row.text(FieldDate)
	if dateText == "" {
		return CreateParams{}, ReasonDateMissing
	}

	payee := row.text(FieldPayee)
	if payee == "" {
		return CreateParams{}, ReasonPayeeMissing
	}

	itemName := row.text(FieldItemName)
	if itemName == "" {
		return CreateParams{}, ReasonItemNameMissing
	}

	item, ok := items[nameKey(itemName)]
	if !ok {
		return CreateParams{}, reasonItemNotFound(itemName)
	}

	sheetName := row.text(FieldBalanceSheetName)
	if sheetName == "" {
		return CreateParams{}, ReasonBalanceSheetNameMissing
	}

	sheet, ok := sheets[nameKey(sheetName)]
	if !ok {
		return CreateParams{}, reasonBalanceSheetNotFound(sheetName)
	}

	amount, ok := row.amount()
	if !ok {
		return CreateParams{}, ReasonAmountInvalid
	}

	if amount == 0 {
		return CreateParams{}, ReasonAmountZero
	}

	date, ok := parseDate(dateText)
	if !ok {
		return CreateParams{}, ReasonDateInvalid
	}

	return CreateParams{
		Date:           date,
		CategoryID:     item.CategoryID,
		ItemID:         item.ID,
		Payee:          payee,
		Amount:         amount,
		BalanceSheetID: &sheet.ID,
	}, ""
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
