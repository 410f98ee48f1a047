// Package report aggregates expenses into RKAP realization tables.
package report

import (
	"time"
)

// Range is an inclusive date range.
type Range struct {
	Start time.Time `json:"startDate" validate:"required"`
	End   time.Time `json:"endDate" validate:"required"`
}

// Period is one calendar month column.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) Quarter() int {
	return (int(p.Month)-1)/3 + 1
}

// Periods lists every month touched by the range in order.
func (r Range) Periods() []Period {
	var out []Period

	cur := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(r.End.Year(), r.End.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cur.After(last) {
		out = append(out, Period{Year: cur.Year(), Month: cur.Month()})
		cur = cur.AddDate(0, 1, 0)
	}

	return out
}

// Quarter groups consecutive period columns of one calendar quarter.
type Quarter struct {
	Year    int
	Number  int
	Periods []int // indexes into Report.Periods
}

// Line is a row label: a category with its budget, or an item.
type Line struct {
	ID     int64
	Name   string
	Budget int64
}

// Expense is one negative-amount transaction reduced to what reports need.
type Expense struct {
	Date       time.Time
	CategoryID int64
	ItemID     int64
	Amount     int64
}

type Row struct {
	ID      int64
	Name    string
	Budget  int64
	Amounts []int64 // positive spend per period
}

func (r Row) Total() int64 {
	var sum int64
	for _, a := range r.Amounts {
		sum += a
	}

	return sum
}

func (r Row) QuarterTotal(q Quarter) int64 {
	var sum int64
	for _, i := range q.Periods {
		sum += r.Amounts[i]
	}

	return sum
}

// Realized is the share of the budget spent, in percent. It is undefined
// without a positive budget.
func (r Row) Realized() (float64, bool) {
	if r.Budget <= 0 {
		return 0, false
	}

	return float64(r.Total()) / float64(r.Budget) * 100, true
}

type Report struct {
	Title      string
	Range      Range
	Periods    []Period
	Quarters   []Quarter
	Rows       []Row
	WithBudget bool
}

// Totals sums every row per period.
func (rep *Report) Totals() Row {
	total := Row{Name: "Total", Amounts: make([]int64, len(rep.Periods))}

	for _, row := range rep.Rows {
		total.Budget += row.Budget

		for i, a := range row.Amounts {
			total.Amounts[i] += a
		}
	}

	return total
}

// Aggregate builds a report with one row per line, in the given order.
// keyOf picks the line an expense belongs to; expenses for unknown lines
// or outside the range are ignored.
func Aggregate(title string, rng Range, lines []Line, expenses []Expense, keyOf func(Expense) int64, withBudget bool) *Report {
	periods := rng.Periods()

	index := make(map[Period]int, len(periods))
	for i, p := range periods {
		index[p] = i
	}

	rep := &Report{
		Title:      title,
		Range:      rng,
		Periods:    periods,
		Quarters:   quarters(periods),
		Rows:       make([]Row, len(lines)),
		WithBudget: withBudget,
	}

	rowOf := make(map[int64]int, len(lines))

	for i, l := range lines {
		rep.Rows[i] = Row{ID: l.ID, Name: l.Name, Amounts: make([]int64, len(periods))}
		if withBudget {
			rep.Rows[i].Budget = l.Budget
		}

		rowOf[l.ID] = i
	}

	for _, e := range expenses {
		if e.Amount >= 0 {
			continue
		}

		ri, ok := rowOf[keyOf(e)]
		if !ok {
			continue
		}

		pi, ok := index[Period{Year: e.Date.Year(), Month: e.Date.Month()}]
		if !ok {
			continue
		}

		rep.Rows[ri].Amounts[pi] -= e.Amount
	}

	return rep
}

func quarters(periods []Period) []Quarter {
	var out []Quarter

	for i, p := range periods {
		n := len(out)
		if n > 0 && out[n-1].Year == p.Year && out[n-1].Number == p.Quarter() {
			out[n-1].Periods = append(out[n-1].Periods, i)
			continue
		}

		out = append(out, Quarter{Year: p.Year, Number: p.Quarter(), Periods: []int{i}})
	}

	return out
}
