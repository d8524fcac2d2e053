package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patrimonio/internal/common"
	"patrimonio/internal/model"
)

func seriesWithTotals(totals map[string]float64) []model.StatsRow {
	dates := make([]time.Time, 0, len(totals))
	for d := range totals {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic(err)
		}
		dates = append(dates, parsed)
	}
	// ComputeSeries expects ascending order; build through DailyTotals to get it.
	transactions := make([]model.Transaction, 0, len(totals))
	for _, d := range dates {
		transactions = append(transactions, txn(d, "Bank", totals[d.Format("2006-01-02")]))
	}
	return ComputeSeries(DailyTotals(transactions))
}

func TestProject_Capacity(t *testing.T) {
	series := seriesWithTotals(map[string]float64{
		"2024-01-01": 1000,
	})

	projection, err := Project(series, GoalInput{
		StartDate:  date(2024, time.January, 1),
		NetIncome:  500,
		FixedCosts: 300,
	})
	require.NoError(t, err)

	assert.InDelta(t, 200.0, projection.MonthlyCapacity, 1e-9)
	assert.InDelta(t, 2400.0, projection.AnnualCapacity, 1e-9)
	assert.InDelta(t, 2400.0, projection.Target, 1e-9)
	assert.InDelta(t, 1000.0, projection.BalanceAtStart, 1e-9)
	assert.InDelta(t, 3400.0, projection.FinalBalance, 1e-9)
}

func TestProject_TargetOverride(t *testing.T) {
	series := seriesWithTotals(map[string]float64{
		"2024-01-01": 1000,
	})

	target := 10000.0
	projection, err := Project(series, GoalInput{
		StartDate:  date(2024, time.January, 1),
		NetIncome:  500,
		FixedCosts: 300,
		Target:     &target,
	})
	require.NoError(t, err)

	// Capacity figures keep their derived values; only the goal changes.
	assert.InDelta(t, 2400.0, projection.AnnualCapacity, 1e-9)
	assert.InDelta(t, 10000.0, projection.Target, 1e-9)
	assert.InDelta(t, 11000.0, projection.FinalBalance, 1e-9)
}

func TestProject_ResolvesToPriorDate(t *testing.T) {
	series := seriesWithTotals(map[string]float64{
		"2024-01-01": 1000,
		"2024-03-01": 1500,
	})

	// Start date between two series dates: anchors on the earlier one.
	projection, err := Project(series, GoalInput{
		StartDate: date(2024, time.February, 10),
		NetIncome: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.January, 1), projection.StartDate)
	assert.InDelta(t, 1000.0, projection.BalanceAtStart, 1e-9)
}

func TestProject_ExactDateWins(t *testing.T) {
	series := seriesWithTotals(map[string]float64{
		"2024-01-01": 1000,
		"2024-03-01": 1500,
	})

	projection, err := Project(series, GoalInput{
		StartDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.March, 1), projection.StartDate)
	assert.InDelta(t, 1500.0, projection.BalanceAtStart, 1e-9)
}

func TestProject_StartBeforeAllData(t *testing.T) {
	series := seriesWithTotals(map[string]float64{
		"2024-06-01": 1000,
	})

	_, err := Project(series, GoalInput{StartDate: date(2024, time.January, 1)})
	assert.ErrorIs(t, err, common.ErrNoPriorData)
}

func TestProject_EmptySeries(t *testing.T) {
	_, err := Project(nil, GoalInput{StartDate: date(2024, time.January, 1)})
	assert.ErrorIs(t, err, common.ErrNoPriorData)
}

func TestProject_NegativeCapacity(t *testing.T) {
	series := seriesWithTotals(map[string]float64{
		"2024-01-01": 1000,
	})

	// Fixed costs above net income: the projection still computes, the
	// capacity is simply negative.
	projection, err := Project(series, GoalInput{
		StartDate:  date(2024, time.January, 1),
		NetIncome:  300,
		FixedCosts: 500,
	})
	require.NoError(t, err)

	assert.InDelta(t, -200.0, projection.MonthlyCapacity, 1e-9)
	assert.InDelta(t, -2400.0, projection.AnnualCapacity, 1e-9)
	assert.InDelta(t, -1400.0, projection.FinalBalance, 1e-9)
}
