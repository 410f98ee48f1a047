package importer

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

// XLSXParser reads the first worksheet of a workbook.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(r io.Reader) ([]transaction.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoHeader
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	cols, err := columns(records[0])
	if err != nil {
		return nil, err
	}

	return toRows(cols, records[1:], xlsxValue), nil
}

// xlsxValue turns serial dates into ISO dates. Raw numbers are left alone.
func xlsxValue(key, value string) string {
	if key != transaction.FieldDate || value == "" {
		return value
	}

	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}

	return t.Format(time.DateOnly)
}
