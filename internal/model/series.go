package model

import (
	"sort"
	"time"
)

// DailyTotal is the summed balance across all institutions for one date.
type DailyTotal struct {
	Date  time.Time
	Total float64
}

// StatsRow carries the derived statistics for one date on the canonical axis.
// Pointer fields are nil when the value is undefined for that row: the first
// row has no delta, trailing windows stay nil until fully populated, and
// relative fields stay nil when their base value is zero. A nil cell is not
// the same thing as a computed zero.
type StatsRow struct {
	MonthlyDelta *float64
	AvgDelta6    *float64
	AvgDelta12   *float64
	AvgDelta24   *float64
	RelDelta     *float64
	RelGrowth6   *float64
	RelGrowth12  *float64
	RelGrowth24  *float64
	Date         time.Time
	Total        float64
}

// InstitutionMatrix is a sparse date × institution grid of summed amounts.
// A missing cell means no transaction existed for that pair; it must stay
// distinguishable from a transacted zero.
type InstitutionMatrix struct {
	cells        map[time.Time]map[string]float64
	dates        []time.Time
	institutions []string
}

// NewInstitutionMatrix builds an empty matrix.
func NewInstitutionMatrix() *InstitutionMatrix {
	return &InstitutionMatrix{
		cells: make(map[time.Time]map[string]float64),
	}
}

// Add accumulates amount into the (date, institution) cell, registering the
// date and institution on first sight.
func (m *InstitutionMatrix) Add(date time.Time, institution string, amount float64) {
	date = Day(date)
	row, ok := m.cells[date]
	if !ok {
		row = make(map[string]float64)
		m.cells[date] = row
		m.dates = append(m.dates, date)
		sort.Slice(m.dates, func(i, j int) bool { return m.dates[i].Before(m.dates[j]) })
	}
	if _, seen := row[institution]; !seen {
		known := false
		for _, inst := range m.institutions {
			if inst == institution {
				known = true
				break
			}
		}
		if !known {
			m.institutions = append(m.institutions, institution)
			sort.Strings(m.institutions)
		}
	}
	row[institution] += amount
}

// Dates returns the date axis in ascending order.
func (m *InstitutionMatrix) Dates() []time.Time {
	out := make([]time.Time, len(m.dates))
	copy(out, m.dates)
	return out
}

// Institutions returns the column labels in a stable (sorted) order. The
// order carries no meaning beyond rendering stability.
func (m *InstitutionMatrix) Institutions() []string {
	out := make([]string, len(m.institutions))
	copy(out, m.institutions)
	return out
}

// Value reports the cell for (date, institution) and whether it is present.
func (m *InstitutionMatrix) Value(date time.Time, institution string) (float64, bool) {
	row, ok := m.cells[Day(date)]
	if !ok {
		return 0, false
	}
	v, ok := row[institution]
	return v, ok
}

// Row returns the present cells for one date, keyed by institution. The
// second return reports whether the date exists on the axis at all.
func (m *InstitutionMatrix) Row(date time.Time) (map[string]float64, bool) {
	row, ok := m.cells[Day(date)]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(row))
	for inst, v := range row {
		out[inst] = v
	}
	return out, true
}

// Len returns the number of dates on the axis.
func (m *InstitutionMatrix) Len() int {
	return len(m.dates)
}
