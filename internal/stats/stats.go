// Package stats implements the time-series aggregation engine: daily balance
// totals, the per-institution pivot, trailing-window statistics and goal
// projection.
package stats

import (
	"log/slog"
	"sort"
	"time"

	"patrimonio/internal/model"
)

// Trailing window sizes, in periods, used for delta averages and relative
// growth.
const (
	Window6  = 6
	Window12 = 12
	Window24 = 24
)

// Result bundles every derived structure of one analysis run. All three
// share the same sorted date axis and stay joinable by date. A Result is
// owned by its invocation; nothing here is shared or mutated afterwards.
type Result struct {
	Matrix *model.InstitutionMatrix
	Daily  []model.DailyTotal
	Series []model.StatsRow
}

// Aggregate runs the full pipeline over a transaction set. An empty input
// yields empty structures, not an error.
func Aggregate(transactions []model.Transaction) *Result {
	daily := DailyTotals(transactions)
	result := &Result{
		Daily:  daily,
		Matrix: PivotByInstitution(transactions),
		Series: ComputeSeries(daily),
	}

	slog.Debug("aggregation complete",
		"transactions", len(transactions),
		"dates", len(result.Daily),
		"institutions", len(result.Matrix.Institutions()))

	return result
}

// DailyTotals groups transactions by date, summing amounts, and returns the
// canonical ascending date axis used by all other series.
func DailyTotals(transactions []model.Transaction) []model.DailyTotal {
	sums := make(map[time.Time]float64)
	for _, txn := range transactions {
		sums[model.Day(txn.Date)] += txn.Amount
	}

	totals := make([]model.DailyTotal, 0, len(sums))
	for date, total := range sums {
		totals = append(totals, model.DailyTotal{Date: date, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })

	return totals
}

// PivotByInstitution builds the sparse date × institution grid. Cells with
// no transaction stay absent; a transacted zero is a present cell.
func PivotByInstitution(transactions []model.Transaction) *model.InstitutionMatrix {
	matrix := model.NewInstitutionMatrix()
	for _, txn := range transactions {
		matrix.Add(txn.Date, txn.Institution, txn.Amount)
	}
	return matrix
}

// ComputeSeries derives the statistics rows from the daily totals, in
// ascending date order. Undefined cells are nil: the first row has no delta,
// trailing windows need their full width, and ratios against a zero base are
// dropped rather than surfaced as infinities.
func ComputeSeries(totals []model.DailyTotal) []model.StatsRow {
	series := make([]model.StatsRow, len(totals))

	for i, dt := range totals {
		row := model.StatsRow{Date: dt.Date, Total: dt.Total}

		if i >= 1 {
			prev := totals[i-1].Total
			delta := dt.Total - prev
			row.MonthlyDelta = &delta

			if prev != 0 {
				rel := dt.Total/prev - 1
				row.RelDelta = &rel
			}
		}

		row.RelGrowth6 = windowGrowth(totals, i, Window6)
		row.RelGrowth12 = windowGrowth(totals, i, Window12)
		row.RelGrowth24 = windowGrowth(totals, i, Window24)

		series[i] = row

		series[i].AvgDelta6 = trailingDeltaMean(series, i, Window6)
		series[i].AvgDelta12 = trailingDeltaMean(series, i, Window12)
		series[i].AvgDelta24 = trailingDeltaMean(series, i, Window24)
	}

	return series
}

// trailingDeltaMean averages the monthly deltas over the window ending at
// index i. The first row carries no delta, so a full window needs i >= w.
// Partial windows stay nil; averaging fewer than w deltas is disallowed.
func trailingDeltaMean(series []model.StatsRow, i, w int) *float64 {
	if i < w {
		return nil
	}

	sum := 0.0
	for j := i - w + 1; j <= i; j++ {
		if series[j].MonthlyDelta == nil {
			return nil
		}
		sum += *series[j].MonthlyDelta
	}

	mean := sum / float64(w)
	return &mean
}

// windowGrowth computes total[i]/total[i-w+1] - 1: the newest value in the
// window against the oldest. Nil until the window is fully populated or when
// the base value is zero.
func windowGrowth(totals []model.DailyTotal, i, w int) *float64 {
	if i < w-1 {
		return nil
	}

	base := totals[i-w+1].Total
	if base == 0 {
		return nil
	}

	growth := totals[i].Total/base - 1
	return &growth
}
