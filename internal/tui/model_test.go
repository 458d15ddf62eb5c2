package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuigrid/internal/game"
	"github.com/verte-zerg/tuigrid/internal/layout"
	"github.com/verte-zerg/tuigrid/internal/session"
)

var testParams = layout.Params{
	BreakpointWidth: 30,
	SmallDimension:  5,
	LargeDimension:  10,
	FillFraction:    1,
	Gap:             1,
}

type tickClock struct {
	now time.Time
}

func (c *tickClock) Now() time.Time {
	c.now = c.now.Add(250 * time.Millisecond)
	return c.now
}

func newSizedModel(t *testing.T, width, height int) *Model {
	t.Helper()
	w, h := ViewportUnits(width, height)
	ctrl, err := game.New(testParams, w, h,
		session.WithClock(&tickClock{now: time.Unix(0, 0)}),
		session.WithSource(session.NewSeededSource(3)),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	m := NewModel(ctrl)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func cellPosition(m *Model, idx int) (int, int) {
	ox, oy := m.gridOrigin()
	cx, cy := m.ctrl.Grid().CellOrigin(idx)
	return ox + cx*columnsPerUnit, oy + cy
}

func TestViewportUnits(t *testing.T) {
	w, h := ViewportUnits(80, 40)
	if w != 40 || h != 37 {
		t.Fatalf("expected 40x37 units, got %vx%v", w, h)
	}
}

func TestGridOriginCentersGrid(t *testing.T) {
	m := newSizedModel(t, 80, 40)
	grid := m.ctrl.Grid()
	if grid.Dimension != 10 || grid.CellSize != 2 || grid.ContainerSize != 29 {
		t.Fatalf("unexpected grid %+v", grid)
	}
	x, y := m.gridOrigin()
	if x != 11 || y != 5 {
		t.Fatalf("expected origin (11, 5), got (%d, %d)", x, y)
	}
}

func TestClickOnTargetRecordsSelection(t *testing.T) {
	m := newSizedModel(t, 80, 40)
	target := m.ctrl.Snapshot().TargetIndex
	x, y := cellPosition(m, target)

	// Bottom-right corner of the cell still belongs to it.
	m.Update(leftClick(x+m.ctrl.Grid().CellSize*columnsPerUnit-1, y+m.ctrl.Grid().CellSize-1))
	snap := m.ctrl.Snapshot()
	if snap.SelectionCount != 1 {
		t.Fatalf("expected 1 selection, got %d", snap.SelectionCount)
	}
	if snap.AverageReactionTime != 0.25 {
		t.Fatalf("expected 0.25s reaction, got %v", snap.AverageReactionTime)
	}
	if m.errMsg != "" {
		t.Fatalf("unexpected error message %q", m.errMsg)
	}
}

func TestClicksOffTargetAreIgnored(t *testing.T) {
	m := newSizedModel(t, 80, 40)
	target := m.ctrl.Snapshot().TargetIndex
	other := (target + 1) % m.ctrl.Grid().TotalCells
	x, y := cellPosition(m, other)

	m.Update(leftClick(x, y))
	// Gap column right of the target cell.
	tx, ty := cellPosition(m, target)
	m.Update(leftClick(tx+m.ctrl.Grid().CellSize*columnsPerUnit, ty))
	// Title line and far corner.
	m.Update(leftClick(0, 0))
	m.Update(leftClick(79, 39))
	// Right button on the target.
	m.Update(tea.MouseMsg{X: tx, Y: ty, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})

	snap := m.ctrl.Snapshot()
	if snap.SelectionCount != 0 || snap.TargetIndex != target {
		t.Fatalf("expected no state change, got %+v", snap)
	}
}

func TestResizeAcrossBreakpointResetsSession(t *testing.T) {
	m := newSizedModel(t, 80, 40)
	x, y := cellPosition(m, m.ctrl.Snapshot().TargetIndex)
	m.Update(leftClick(x, y))

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 40})
	snap := m.ctrl.Snapshot()
	if snap.TotalCells != 25 || snap.SelectionCount != 0 {
		t.Fatalf("expected reset 5x5 session, got %+v", snap)
	}
	if got := len(m.Sessions()); got != 2 {
		t.Fatalf("expected 2 sessions, got %d", got)
	}
}

func TestViewRendersFullScreen(t *testing.T) {
	m := newSizedModel(t, 80, 40)
	out := m.View()
	if got := len(strings.Split(out, "\n")); got != 40 {
		t.Fatalf("expected 40 lines, got %d", got)
	}
	for _, needle := range []string{title, "Grid 10x10", "Selections: 0", "Avg reaction: --", "BPS: --", "quit"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("view missing %q", needle)
		}
	}
}

func TestViewDegenerateNotice(t *testing.T) {
	m := newSizedModel(t, 10, 5)
	if !m.ctrl.Grid().Degenerate() {
		t.Fatalf("expected degenerate grid, got %+v", m.ctrl.Grid())
	}
	if !strings.Contains(m.View(), "Window") {
		t.Fatalf("expected too-small notice")
	}
	m.Update(leftClick(5, 2))
	if m.ctrl.Snapshot().SelectionCount != 0 {
		t.Fatalf("clicks must be ignored on a degenerate grid")
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	ctrl, err := game.New(testParams, 40, 37)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if out := NewModel(ctrl).View(); out != "" {
		t.Fatalf("expected empty view before first size, got %q", out)
	}
}

func TestQuitKey(t *testing.T) {
	m := newSizedModel(t, 80, 40)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg for %q", msg.String())
		}
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Fatalf("expected no command for unbound key")
	}
}

func TestFormatFooter(t *testing.T) {
	empty := formatFooter(session.Snapshot{}, 12)
	for _, needle := range []string{"Grid 12x12", "Selections: 0", "Avg reaction: --", "BPS: --"} {
		if !strings.Contains(empty, needle) {
			t.Fatalf("footer missing %q: %s", needle, empty)
		}
	}
	full := formatFooter(session.Snapshot{SelectionCount: 1, AverageReactionTime: 0.5, BitsPerSecond: 13.2877}, 10)
	for _, needle := range []string{"Selections: 1", "Avg reaction: 0.500s", "BPS: 13.29"} {
		if !strings.Contains(full, needle) {
			t.Fatalf("footer missing %q: %s", needle, full)
		}
	}
}

func TestRenderGridRowsMarksTarget(t *testing.T) {
	grid := layout.GridSpec{Dimension: 2, CellSize: 1, Gap: 1, ContainerSize: 3, TotalCells: 4}
	rows := renderGridRows(grid, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1] != "" {
		t.Fatalf("expected blank gap row, got %q", rows[1])
	}
	want := cellStyle.Render("  ") + "  " + targetStyle.Render("  ")
	if rows[2] != want {
		t.Fatalf("unexpected target row %q", rows[2])
	}
}
