package report

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// Header returns the column titles: name, optional budget, each month
// followed by its quarter subtotal once the quarter closes, total, and
// optional realization.
func (rep *Report) Header() []string {
	header := []string{"Name"}
	if rep.WithBudget {
		header = append(header, "Budget")
	}

	for _, q := range rep.Quarters {
		for _, i := range q.Periods {
			p := rep.Periods[i]
			header = append(header, fmt.Sprintf("%s %d", p.Month.String()[:3], p.Year))
		}

		header = append(header, fmt.Sprintf("Q%d %d", q.Number, q.Year))
	}

	header = append(header, "Total")
	if rep.WithBudget {
		header = append(header, "Realized %")
	}

	return header
}

// Cells lays out one row in Header order.
func (rep *Report) Cells(row Row) []any {
	cells := []any{row.Name}
	if rep.WithBudget {
		cells = append(cells, row.Budget)
	}

	for _, q := range rep.Quarters {
		for _, i := range q.Periods {
			cells = append(cells, row.Amounts[i])
		}

		cells = append(cells, row.QuarterTotal(q))
	}

	cells = append(cells, row.Total())

	if rep.WithBudget {
		if pct, ok := row.Realized(); ok {
			cells = append(cells, math.Round(pct*100)/100)
		} else {
			cells = append(cells, "")
		}
	}

	return cells
}

// WriteXLSX renders the report as a single-sheet workbook.
func WriteXLSX(rep *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	title := fmt.Sprintf("%s (%s to %s)", rep.Title,
		rep.Range.Start.Format("2006-01-02"), rep.Range.End.Format("2006-01-02"))
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	header := rep.Header()
	if err := f.SetSheetRow(sheetName, "A3", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("resolving columns: %w", err)
	}

	if err := f.SetCellStyle(sheetName, "A3", lastCol+"3", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	rowNum := 4

	for _, row := range rep.Rows {
		cells := rep.Cells(row)
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			return fmt.Errorf("writing row %q: %w", row.Name, err)
		}

		rowNum++
	}

	totals := rep.Cells(rep.Totals())
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowNum), &totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", lastCol, rowNum), bold); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}
