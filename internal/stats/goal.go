package stats

import (
	"fmt"
	"time"

	"patrimonio/internal/common"
	"patrimonio/internal/model"
)

// GoalInput carries the user-entered parameters for a savings goal.
type GoalInput struct {
	// StartDate anchors the goal; resolved against the series to the exact
	// date or the latest date strictly before it.
	StartDate time.Time
	// FixedCosts is the fixed monthly cost figure.
	FixedCosts float64
	// GrossIncome is carried for display only; capacity uses net income.
	GrossIncome float64
	// NetIncome is the net monthly income.
	NetIncome float64
	// Target overrides the default goal (the annual capacity) when set.
	Target *float64
}

// Projection is the computed goal outcome.
type Projection struct {
	// StartDate is the resolved series date the projection anchors on.
	StartDate time.Time
	// BalanceAtStart is the total balance at the resolved date.
	BalanceAtStart float64
	// MonthlyCapacity = net income - fixed costs.
	MonthlyCapacity float64
	// AnnualCapacity = 12 * monthly capacity.
	AnnualCapacity float64
	// Target is the goal amount in effect (user override or annual capacity).
	Target float64
	// FinalBalance = balance at start + target.
	FinalBalance float64
}

// Project resolves the goal start date against the stats series and computes
// the capacity and projected final balance. Returns common.ErrNoPriorData
// when the start date predates all data.
func Project(series []model.StatsRow, input GoalInput) (*Projection, error) {
	row, err := rowAtOrBefore(series, input.StartDate)
	if err != nil {
		return nil, err
	}

	monthly := input.NetIncome - input.FixedCosts
	annual := monthly * 12

	target := annual
	if input.Target != nil {
		target = *input.Target
	}

	return &Projection{
		StartDate:       row.Date,
		BalanceAtStart:  row.Total,
		MonthlyCapacity: monthly,
		AnnualCapacity:  annual,
		Target:          target,
		FinalBalance:    row.Total + target,
	}, nil
}

// rowAtOrBefore finds the series row at the given date, or the latest row
// before it. The series is already in ascending date order.
func rowAtOrBefore(series []model.StatsRow, date time.Time) (*model.StatsRow, error) {
	date = model.Day(date)
	for i := len(series) - 1; i >= 0; i-- {
		if !series[i].Date.After(date) {
			return &series[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", common.ErrNoPriorData, date.Format("2006-01-02"))
}
