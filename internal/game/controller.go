// Package game connects viewport and click notifications to the layout and
// session engines.
package game

import (
	"fmt"

	"github.com/verte-zerg/tuigrid/internal/layout"
	"github.com/verte-zerg/tuigrid/internal/model"
	"github.com/verte-zerg/tuigrid/internal/session"
)

// Controller owns the current grid geometry and session. Notifications must
// be delivered from a single goroutine in arrival order.
type Controller struct {
	params   layout.Params
	grid     layout.GridSpec
	engine   *session.Engine
	finished []model.SessionSummary
}

// New lays out the grid for the initial viewport and starts the first session.
func New(params layout.Params, width, height float64, opts ...session.Option) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	grid := params.ComputeGridSpec(width, height)
	engine, err := session.New(grid.TotalCells, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return &Controller{
		params: params,
		grid:   grid,
		engine: engine,
	}, nil
}

// OnViewportChange recomputes the grid. When the number of cells changes the
// session is reset and true is returned.
func (c *Controller) OnViewportChange(width, height float64) bool {
	grid := c.params.ComputeGridSpec(width, height)
	prev := c.grid
	c.grid = grid
	if grid.TotalCells == prev.TotalCells {
		return false
	}
	summary := c.engine.Summary(prev.Dimension)
	if err := c.engine.Reset(grid.TotalCells); err != nil {
		// ComputeGridSpec never yields fewer than one cell.
		c.grid = prev
		return false
	}
	if summary.Selections() > 0 {
		c.finished = append(c.finished, summary)
	}
	return true
}

// OnCellClicked applies a click on a cell. It reports whether the click hit
// the target; an index outside the grid returns session.ErrIndexOutOfRange.
func (c *Controller) OnCellClicked(index int) (bool, error) {
	return c.engine.Select(index)
}

// Snapshot returns the metrics of the current session.
func (c *Controller) Snapshot() session.Snapshot {
	return c.engine.Snapshot()
}

// Grid returns the current grid geometry.
func (c *Controller) Grid() layout.GridSpec {
	return c.grid
}

// Sessions returns the finished sessions followed by the current one.
func (c *Controller) Sessions() []model.SessionSummary {
	out := make([]model.SessionSummary, 0, len(c.finished)+1)
	out = append(out, c.finished...)
	return append(out, c.engine.Summary(c.grid.Dimension))
}
