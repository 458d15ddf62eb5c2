package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuigrid/internal/layout"
)

// renderBody returns exactly height lines holding the centred grid, or the
// too-small notice for a degenerate layout.
func (m *Model) renderBody(height int) []string {
	grid := m.ctrl.Grid()
	if grid.Degenerate() {
		notice := lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, noticeStyle.Render(m.truncate(tooSmallNotice)))
		return strings.Split(notice, "\n")
	}

	ox, oy := m.gridOrigin()
	top := oy - 1
	lines := make([]string, 0, height)
	for len(lines) < top && len(lines) < height {
		lines = append(lines, "")
	}
	indent := strings.Repeat(" ", ox)
	for _, row := range renderGridRows(grid, m.ctrl.Snapshot().TargetIndex) {
		if len(lines) >= height {
			break
		}
		lines = append(lines, indent+row)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// renderGridRows draws the grid as terminal lines, one layout unit per row
// and two columns per unit.
func renderGridRows(grid layout.GridSpec, target int) []string {
	cellWidth := grid.CellSize * columnsPerUnit
	blank := strings.Repeat(" ", cellWidth)
	plain := cellStyle.Render(blank)
	active := targetStyle.Render(blank)
	colGap := strings.Repeat(" ", grid.Gap*columnsPerUnit)

	rows := make([]string, 0, grid.ContainerSize)
	var b strings.Builder
	for r := 0; r < grid.Dimension; r++ {
		b.Reset()
		for c := 0; c < grid.Dimension; c++ {
			if c > 0 {
				b.WriteString(colGap)
			}
			if r*grid.Dimension+c == target {
				b.WriteString(active)
			} else {
				b.WriteString(plain)
			}
		}
		line := b.String()
		for i := 0; i < grid.CellSize; i++ {
			rows = append(rows, line)
		}
		if r < grid.Dimension-1 {
			for i := 0; i < grid.Gap; i++ {
				rows = append(rows, "")
			}
		}
	}
	return rows
}
