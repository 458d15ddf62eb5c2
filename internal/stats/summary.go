// Package stats contains throughput calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tuigrid/internal/model"
)

const curveLabelWidth = len("Rolling BPS: ")

// SessionMetrics computes the average reaction time, best reaction time and
// bits per second for a session.
func SessionMetrics(s model.SessionSummary) (avg, best, bps float64) {
	avg = Mean(s.ReactionTimes)
	best = Min(s.ReactionTimes)
	bps = BitsPerSecond(BitsPerSelection(s.TotalCells), avg)
	return avg, best, bps
}

// RenderSummary prints a table of sessions and curves for the last session
// with selections. totalWidth bounds the curve length; 0 uses the terminal.
func RenderSummary(w io.Writer, sessions []model.SessionSummary, window, totalWidth int) error {
	played := make([]model.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		if s.Selections() > 0 {
			played = append(played, s)
		}
	}
	if len(played) == 0 {
		_, err := fmt.Fprintln(w, "No selections recorded.")
		return err
	}

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Grid", "Selections", "Avg RT (s)", "Best RT (s)", "BPS", "Duration"}
	rows := make([][]string, 0, len(played))
	for _, s := range played {
		avg, best, bps := SessionMetrics(s)
		rows = append(rows, []string{
			fmt.Sprintf("%dx%d", s.Dimension, s.Dimension),
			fmt.Sprintf("%d", s.Selections()),
			fmt.Sprintf("%.3f", avg),
			fmt.Sprintf("%.3f", best),
			fmt.Sprintf("%.2f", bps),
			s.EndedAt.Sub(s.StartedAt).Round(100 * time.Millisecond).String(),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderCurves(w, played[len(played)-1], window, totalWidth)
}

// RenderCurves prints reaction-time and rolling throughput sparklines.
func RenderCurves(w io.Writer, s model.SessionSummary, window, totalWidth int) error {
	if s.Selections() == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = TerminalWidth()
	}
	width := totalWidth - curveLabelWidth
	if width < 1 {
		width = 1
	}
	rts := Downsample(s.ReactionTimes, width)
	bps := Downsample(RollingBitsPerSecond(s.ReactionTimes, s.TotalCells, window), width)
	if _, err := fmt.Fprintf(w, "%-*s%s\n", curveLabelWidth, "Reaction:", Sparkline(rts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s%s\n", curveLabelWidth, "Rolling BPS:", Sparkline(bps)); err != nil {
		return err
	}
	return nil
}
