// Package model defines the core domain types shared across the application.
package model

import "time"

// Transaction represents a single balance entry from an uploaded statement.
// Transactions are immutable once parsed; the full set is loaded once per
// analysis run.
type Transaction struct {
	Date        time.Time
	Institution string
	Amount      float64
}

// Day truncates t to a calendar date in UTC. All derived series key on the
// day, never on the time component.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
