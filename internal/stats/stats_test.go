package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrimonio/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func txn(t time.Time, institution string, amount float64) model.Transaction {
	return model.Transaction{Date: t, Institution: institution, Amount: amount}
}

// monthlyTotals builds one transaction per month so each series index maps to
// one date.
func monthlyTotals(totals []float64) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(totals))
	for i, total := range totals {
		transactions = append(transactions, txn(date(2022, time.January, 1).AddDate(0, i, 0), "Bank", total))
	}
	return transactions
}

func TestDailyTotals_Conservation(t *testing.T) {
	transactions := []model.Transaction{
		txn(date(2024, time.March, 1), "A", 100.5),
		txn(date(2024, time.January, 1), "B", -20),
		txn(date(2024, time.March, 1), "B", 19.5),
		txn(date(2024, time.February, 1), "A", 0),
	}

	totals := DailyTotals(transactions)

	var inputSum, totalSum float64
	for _, tx := range transactions {
		inputSum += tx.Amount
	}
	for _, dt := range totals {
		totalSum += dt.Total
	}
	assert.InDelta(t, inputSum, totalSum, 1e-9)
}

func TestDailyTotals_SortsAndGroups(t *testing.T) {
	transactions := []model.Transaction{
		txn(date(2024, time.February, 1), "A", 120),
		txn(date(2024, time.January, 1), "A", 100),
		txn(date(2024, time.January, 1), "B", 50),
	}

	totals := DailyTotals(transactions)

	require.Len(t, totals, 2)
	assert.Equal(t, date(2024, time.January, 1), totals[0].Date)
	assert.InDelta(t, 150.0, totals[0].Total, 1e-9)
	assert.Equal(t, date(2024, time.February, 1), totals[1].Date)
	assert.InDelta(t, 120.0, totals[1].Total, 1e-9)
}

func TestPivotByInstitution_AbsentVsZero(t *testing.T) {
	transactions := []model.Transaction{
		txn(date(2024, time.January, 1), "A", 100),
		txn(date(2024, time.January, 1), "B", 50),
		txn(date(2024, time.February, 1), "A", 120),
		txn(date(2024, time.March, 1), "B", 0),
	}

	matrix := PivotByInstitution(transactions)

	// No transaction for B in February: the cell must be absent.
	_, ok := matrix.Value(date(2024, time.February, 1), "B")
	assert.False(t, ok)

	// A transacted zero is a present cell.
	v, ok := matrix.Value(date(2024, time.March, 1), "B")
	require.True(t, ok)
	assert.Zero(t, v)

	// Multiple transactions in one cell sum.
	transactions = append(transactions, txn(date(2024, time.January, 1), "A", 25))
	matrix = PivotByInstitution(transactions)
	v, ok = matrix.Value(date(2024, time.January, 1), "A")
	require.True(t, ok)
	assert.InDelta(t, 125.0, v, 1e-9)
}

func TestComputeSeries_MonthlyDelta(t *testing.T) {
	series := ComputeSeries(DailyTotals(monthlyTotals([]float64{150, 120, 200})))

	require.Len(t, series, 3)
	assert.Nil(t, series[0].MonthlyDelta)
	require.NotNil(t, series[1].MonthlyDelta)
	assert.InDelta(t, -30.0, *series[1].MonthlyDelta, 1e-9)
	require.NotNil(t, series[2].MonthlyDelta)
	assert.InDelta(t, 80.0, *series[2].MonthlyDelta, 1e-9)
}

func TestComputeSeries_TrailingAverages(t *testing.T) {
	// Steadily growing totals: delta is always 10, so any full window
	// averages to exactly 10.
	totals := make([]float64, 30)
	for i := range totals {
		totals[i] = 1000 + float64(i)*10
	}
	series := ComputeSeries(DailyTotals(monthlyTotals(totals)))

	for i, row := range series {
		if i < Window6 {
			assert.Nilf(t, row.AvgDelta6, "AvgDelta6 must be absent at index %d", i)
		} else {
			require.NotNilf(t, row.AvgDelta6, "AvgDelta6 must be present at index %d", i)
			assert.InDelta(t, 10.0, *row.AvgDelta6, 1e-9)
		}
		if i < Window12 {
			assert.Nil(t, row.AvgDelta12)
		} else {
			require.NotNil(t, row.AvgDelta12)
			assert.InDelta(t, 10.0, *row.AvgDelta12, 1e-9)
		}
		if i < Window24 {
			assert.Nil(t, row.AvgDelta24)
		} else {
			require.NotNil(t, row.AvgDelta24)
			assert.InDelta(t, 10.0, *row.AvgDelta24, 1e-9)
		}
	}
}

func TestComputeSeries_TrailingAverageValue(t *testing.T) {
	// Uneven deltas: +10, -20, +30, +40, -50, +60 over the last 6 rows.
	totals := []float64{100, 110, 90, 120, 160, 110, 170}
	series := ComputeSeries(DailyTotals(monthlyTotals(totals)))

	require.NotNil(t, series[6].AvgDelta6)
	assert.InDelta(t, (10.0-20+30+40-50+60)/6, *series[6].AvgDelta6, 1e-9)
	// One row earlier only 5 deltas exist: strictly absent, no partial mean.
	assert.Nil(t, series[5].AvgDelta6)
}

func TestComputeSeries_RelativeGrowth(t *testing.T) {
	totals := make([]float64, 15)
	for i := range totals {
		totals[i] = 100 + float64(i)
	}
	series := ComputeSeries(DailyTotals(monthlyTotals(totals)))

	for i, row := range series {
		if i < Window12-1 {
			assert.Nilf(t, row.RelGrowth12, "RelGrowth12 must be absent at index %d", i)
		} else {
			require.NotNil(t, row.RelGrowth12)
			expected := totals[i]/totals[i-11] - 1
			assert.InDelta(t, expected, *row.RelGrowth12, 1e-9)
		}
	}

	require.NotNil(t, series[5].RelGrowth6)
	assert.InDelta(t, totals[5]/totals[0]-1, *series[5].RelGrowth6, 1e-9)
	assert.Nil(t, series[4].RelGrowth6)
}

func TestComputeSeries_DivisionByZeroIsAbsent(t *testing.T) {
	series := ComputeSeries(DailyTotals(monthlyTotals([]float64{0, 50})))

	require.Len(t, series, 2)
	// Delta still computes; the ratio against a zero base does not.
	require.NotNil(t, series[1].MonthlyDelta)
	assert.InDelta(t, 50.0, *series[1].MonthlyDelta, 1e-9)
	assert.Nil(t, series[1].RelDelta)
}

func TestComputeSeries_ZeroWindowBase(t *testing.T) {
	totals := []float64{0, 10, 20, 30, 40, 50, 60}
	series := ComputeSeries(DailyTotals(monthlyTotals(totals)))

	// The 6-period window at index 5 has base total 0.
	assert.Nil(t, series[5].RelGrowth6)
	// At index 6 the base is 10; the growth computes.
	require.NotNil(t, series[6].RelGrowth6)
	assert.InDelta(t, 60.0/10-1, *series[6].RelGrowth6, 1e-9)
}

func TestAggregate_TwoMonthExample(t *testing.T) {
	transactions := []model.Transaction{
		txn(date(2024, time.January, 1), "A", 100),
		txn(date(2024, time.January, 1), "B", 50),
		txn(date(2024, time.February, 1), "A", 120),
	}

	result := Aggregate(transactions)

	require.Len(t, result.Daily, 2)
	assert.InDelta(t, 150.0, result.Daily[0].Total, 1e-9)
	assert.InDelta(t, 120.0, result.Daily[1].Total, 1e-9)

	_, ok := result.Matrix.Value(date(2024, time.February, 1), "B")
	assert.False(t, ok)

	require.NotNil(t, result.Series[1].MonthlyDelta)
	assert.InDelta(t, -30.0, *result.Series[1].MonthlyDelta, 1e-9)
}

func TestAggregate_SingleTransaction(t *testing.T) {
	result := Aggregate([]model.Transaction{txn(date(2024, time.June, 15), "A", 42)})

	require.Len(t, result.Daily, 1)
	require.Len(t, result.Series, 1)
	assert.Equal(t, 1, result.Matrix.Len())
	assert.Len(t, result.Matrix.Institutions(), 1)

	row := result.Series[0]
	assert.Nil(t, row.MonthlyDelta)
	assert.Nil(t, row.AvgDelta6)
	assert.Nil(t, row.AvgDelta12)
	assert.Nil(t, row.AvgDelta24)
	assert.Nil(t, row.RelDelta)
	assert.Nil(t, row.RelGrowth6)
	assert.Nil(t, row.RelGrowth12)
	assert.Nil(t, row.RelGrowth24)
}

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil)

	assert.Empty(t, result.Daily)
	assert.Empty(t, result.Series)
	assert.Equal(t, 0, result.Matrix.Len())
}

func TestAggregate_Idempotent(t *testing.T) {
	transactions := monthlyTotals([]float64{100, 110, 90, 120, 160, 110, 170, 200})

	first := Aggregate(transactions)
	second := Aggregate(transactions)

	assert.True(t, reflect.DeepEqual(first.Daily, second.Daily))
	require.Len(t, second.Series, len(first.Series))
	for i := range first.Series {
		assert.True(t, reflect.DeepEqual(first.Series[i].Date, second.Series[i].Date))
		assertSamePtr(t, first.Series[i].MonthlyDelta, second.Series[i].MonthlyDelta)
		assertSamePtr(t, first.Series[i].AvgDelta6, second.Series[i].AvgDelta6)
		assertSamePtr(t, first.Series[i].RelGrowth12, second.Series[i].RelGrowth12)
	}
	assert.Equal(t, first.Matrix.Institutions(), second.Matrix.Institutions())
	assert.Equal(t, first.Matrix.Dates(), second.Matrix.Dates())
}

func assertSamePtr(t *testing.T, a, b *float64) {
	t.Helper()
	if a == nil || b == nil {
		assert.Equal(t, a == nil, b == nil)
		return
	}
	assert.InDelta(t, *a, *b, 1e-12)
}

func TestDailyTotals_TimeComponentIgnored(t *testing.T) {
	transactions := []model.Transaction{
		{Date: time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC), Institution: "A", Amount: 10},
		{Date: time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC), Institution: "A", Amount: 5},
	}

	totals := DailyTotals(transactions)

	require.Len(t, totals, 1)
	assert.InDelta(t, 15.0, totals[0].Total, 1e-9)
}
