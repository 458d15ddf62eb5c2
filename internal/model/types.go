// Package model defines shared data structures.
package model

import "time"

// Config defines benchmark settings.
type Config struct {
	BreakpointWidth float64
	SmallDimension  int
	LargeDimension  int
	FillFraction    float64
	Gap             int
	Seed            int64
	CurveWindow     int
}

// SessionSummary captures one session of the benchmark. Sessions end when the
// grid dimension changes or the program exits.
type SessionSummary struct {
	Dimension     int
	TotalCells    int
	StartedAt     time.Time
	EndedAt       time.Time
	ReactionTimes []float64 // seconds, in selection order
}

// Selections returns the number of successful selections.
func (s SessionSummary) Selections() int {
	return len(s.ReactionTimes)
}
