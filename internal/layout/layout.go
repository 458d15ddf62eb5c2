// Package layout computes responsive grid geometry from viewport dimensions.
package layout

import (
	"fmt"
	"math"
)

// Params configures grid sizing. Units are abstract; the caller decides
// whether they are pixels or terminal cells.
type Params struct {
	BreakpointWidth float64
	SmallDimension  int
	LargeDimension  int
	FillFraction    float64
	Gap             int
}

// GridSpec describes the geometry of a square grid.
type GridSpec struct {
	Dimension     int
	CellSize      int
	Gap           int
	ContainerSize int
	TotalCells    int
}

// Validate reports the first invalid parameter.
func (p Params) Validate() error {
	if p.BreakpointWidth < 0 || math.IsNaN(p.BreakpointWidth) {
		return fmt.Errorf("breakpoint width must be >= 0")
	}
	if p.SmallDimension < 1 {
		return fmt.Errorf("small dimension must be >= 1")
	}
	if p.LargeDimension < 1 {
		return fmt.Errorf("large dimension must be >= 1")
	}
	if !(p.FillFraction > 0 && p.FillFraction <= 1) {
		return fmt.Errorf("fill fraction must be in (0, 1]")
	}
	if p.Gap < 0 {
		return fmt.Errorf("gap must be >= 0")
	}
	return nil
}

const maxAvailable = math.MaxInt32

// Dimension selects the grid dimension for a viewport width.
func (p Params) Dimension(width float64) int {
	dim := p.LargeDimension
	if width < p.BreakpointWidth {
		dim = p.SmallDimension
	}
	if dim < 1 {
		dim = 1
	}
	return dim
}

// ComputeGridSpec sizes the grid to fit FillFraction of the smaller viewport
// side. Undersized or invalid viewports yield CellSize 0.
func (p Params) ComputeGridSpec(width, height float64) GridSpec {
	dim := p.Dimension(width)
	gap := p.Gap
	if gap < 0 {
		gap = 0
	}

	available := math.Min(width, height) * p.FillFraction
	if math.IsNaN(available) || available < 0 {
		available = 0
	}
	// Keeps dim*cellSize within int range for huge or infinite viewports.
	if available > maxAvailable {
		available = maxAvailable
	}

	cellSize := 0
	raw := math.Floor((available - float64((dim-1)*gap)) / float64(dim))
	if raw > 0 {
		cellSize = int(raw)
	}

	return GridSpec{
		Dimension:     dim,
		CellSize:      cellSize,
		Gap:           gap,
		ContainerSize: dim*cellSize + (dim-1)*gap,
		TotalCells:    dim * dim,
	}
}

// Degenerate reports whether the viewport was too small to fit any cell.
func (g GridSpec) Degenerate() bool {
	return g.CellSize <= 0
}

// CellAt returns the index of the cell containing the point (x, y), measured
// in layout units from the container's top-left corner. Points in a gap, out
// of bounds, or on a degenerate grid return -1.
func (g GridSpec) CellAt(x, y float64) int {
	if g.Degenerate() || g.Dimension < 1 {
		return -1
	}
	col, ok := g.axisCell(x)
	if !ok {
		return -1
	}
	row, ok := g.axisCell(y)
	if !ok {
		return -1
	}
	return row*g.Dimension + col
}

func (g GridSpec) axisCell(v float64) (int, bool) {
	if math.IsNaN(v) || v < 0 || v >= float64(g.ContainerSize) {
		return 0, false
	}
	pitch := float64(g.CellSize + g.Gap)
	idx := int(v / pitch)
	if idx >= g.Dimension {
		return 0, false
	}
	if v-float64(idx)*pitch >= float64(g.CellSize) {
		return 0, false
	}
	return idx, true
}

// CellOrigin returns the top-left corner of a cell in layout units.
func (g GridSpec) CellOrigin(index int) (x, y int) {
	if g.Dimension < 1 {
		return 0, 0
	}
	pitch := g.CellSize + g.Gap
	return (index % g.Dimension) * pitch, (index / g.Dimension) * pitch
}
