// Package importer turns uploaded spreadsheets into loosely typed ledger
// import rows. It only maps columns; validation is left to the ledger.
package importer

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnknownFormat = errors.New("unknown import format")
	ErrNoHeader      = errors.New("no recognizable header row")
)

// FormatOf picks the format from an explicit value or the file extension.
func FormatOf(explicit, filename string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(explicit)))
	if f == "" {
		f = Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))
	}

	switch f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}

	return "", ErrUnknownFormat
}

type Parser interface {
	Parse(r io.Reader) ([]transaction.ImportRow, error)
}

// headerAliases maps normalized header text to import row keys.
var headerAliases = map[string]string{
	"date":             transaction.FieldDate,
	"tanggal":          transaction.FieldDate,
	"itemname":         transaction.FieldItemName,
	"item":             transaction.FieldItemName,
	"payee":            transaction.FieldPayee,
	"amount":           transaction.FieldAmount,
	"jumlah":           transaction.FieldAmount,
	"balancesheetname": transaction.FieldBalanceSheetName,
	"balancesheet":     transaction.FieldBalanceSheetName,
}

func normalizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}

		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// columns maps each recognized header cell to its row key. The header is
// always the first record so data row i keeps line i+2.
func columns(header []string) (map[int]string, error) {
	cols := make(map[int]string)

	for i, cell := range header {
		if key, ok := headerAliases[normalizeHeader(cell)]; ok {
			cols[i] = key
		}
	}

	if len(cols) == 0 {
		return nil, ErrNoHeader
	}

	return cols, nil
}

func toRows(cols map[int]string, records [][]string, convert func(key, value string) string) []transaction.ImportRow {
	rows := make([]transaction.ImportRow, 0, len(records))

	for _, rec := range records {
		row := make(transaction.ImportRow, len(cols))

		for idx, key := range cols {
			if idx >= len(rec) {
				continue
			}

			v := strings.TrimSpace(rec[idx])
			if convert != nil {
				v = convert(key, v)
			}

			row[key] = v
		}

		rows = append(rows, row)
	}

	return rows
}

// normalizeAmount accepts grouped amounts such as "1.234.567,50" or
// "1,234,567.50". The rightmost separator is taken as the decimal mark
// when both appear. A separator that repeats, or a lone one followed by
// exactly three digits ("15.000"), is grouping; any other lone separator
// is the decimal mark.
func normalizeAmount(s string) string {
	s = strings.ReplaceAll(s, " ", "")

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = normalizeLoneSeparator(s, ",", comma)
	case dot >= 0:
		s = normalizeLoneSeparator(s, ".", dot)
	}

	return s
}

func normalizeLoneSeparator(s, sep string, last int) string {
	if strings.Count(s, sep) > 1 || len(s)-last-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}
