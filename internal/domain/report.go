package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryTotals sums records of the given direction per category. Categories
// keep the order in which they first appear in records.
func CategoryTotals(records []*Record, kind Direction) []CategoryTotal {
	totals := []CategoryTotal{}
	index := make(map[string]int)

	for _, r := range records {
		if r.Type() != kind {
			continue
		}
		i, ok := index[r.Category]
		if !ok {
			i = len(totals)
			index[r.Category] = i
			totals = append(totals, CategoryTotal{Category: r.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(r.Amount)
	}

	return totals
}

// SumTotals adds up a CategoryTotals result.
func SumTotals(totals []CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return sum
}

// MonthTotal holds the expense and income of one calendar month.
type MonthTotal struct {
	Year    int
	Month   time.Month
	Label   string
	Expense decimal.Decimal
	Income  decimal.Decimal
}

// MonthlyTotals buckets records by year and month, oldest month first.
func MonthlyTotals(records []*Record) []MonthTotal {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key]*MonthTotal)

	for _, r := range records {
		k := key{r.Date.Year(), r.Date.Month()}
		b, ok := buckets[k]
		if !ok {
			b = &MonthTotal{
				Year:    k.year,
				Month:   k.month,
				Label:   fmt.Sprintf("%04d-%02d", k.year, int(k.month)),
				Expense: decimal.Zero,
				Income:  decimal.Zero,
			}
			buckets[k] = b
		}
		if r.Type() == DirectionIncome {
			b.Income = b.Income.Add(r.Amount)
		} else {
			b.Expense = b.Expense.Add(r.Amount)
		}
	}

	out := make([]MonthTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})

	return out
}

// DayGroup is the records of a single date.
type DayGroup struct {
	Date    Date
	Records []*Record
}

// GroupByDate groups records by date, newest date first. Records keep their
// relative order inside a group.
func GroupByDate(records []*Record) []DayGroup {
	index := make(map[string]int)
	groups := []DayGroup{}

	for _, r := range records {
		i, ok := index[r.Date.String()]
		if !ok {
			i = len(groups)
			index[r.Date.String()] = i
			groups = append(groups, DayGroup{Date: r.Date})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})

	return groups
}

// Report is the aggregate view of one mode namespace.
type Report struct {
	Mode              Mode
	ExpenseByCategory []CategoryTotal
	IncomeByCategory  []CategoryTotal
	Monthly           []MonthTotal
	TotalExpense      decimal.Decimal
	TotalIncome       decimal.Decimal
}

// BuildReport folds records into a Report.
func BuildReport(mode Mode, records []*Record) *Report {
	expense := CategoryTotals(records, DirectionExpense)
	income := CategoryTotals(records, DirectionIncome)

	return &Report{
		Mode:              mode,
		ExpenseByCategory: expense,
		IncomeByCategory:  income,
		Monthly:           MonthlyTotals(records),
		TotalExpense:      SumTotals(expense),
		TotalIncome:       SumTotals(income),
	}
}
