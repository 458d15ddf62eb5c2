// Package tui provides the Bubble Tea grid interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuigrid/internal/game"
	"github.com/verte-zerg/tuigrid/internal/model"
	"github.com/verte-zerg/tuigrid/internal/session"
)

const (
	// Title, stats and help lines.
	chromeHeight = 3
	// A layout unit is one row tall and two columns wide.
	columnsPerUnit = 2
	title          = "Click the blue cell as fast as you can!"
	tooSmallNotice = "Window too small"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cellStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#3A3A3A"))
	targetStyle = lipgloss.NewStyle().Background(lipgloss.Color("#3A7BD5"))
)

// Model implements the Bubble Tea benchmark UI.
type Model struct {
	ctrl *game.Controller
	keys keyMap
	help help.Model

	width  int
	height int

	errMsg string
}

// NewModel constructs a grid TUI model around a controller.
func NewModel(ctrl *game.Controller) *Model {
	return &Model{
		ctrl: ctrl,
		keys: defaultKeys,
		help: help.New(),
	}
}

// ViewportUnits converts a terminal size into layout units.
func ViewportUnits(width, height int) (float64, float64) {
	return float64(width) / columnsPerUnit, float64(height - chromeHeight)
}

// Sessions returns the sessions played so far.
func (m *Model) Sessions() []model.SessionSummary {
	return m.ctrl.Sessions()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.ctrl.OnViewportChange(ViewportUnits(msg.Width, msg.Height)) {
			m.errMsg = ""
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.handleClick(msg.X, msg.Y)
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyHeight := m.bodyHeight()
	lines := make([]string, 0, m.height)
	lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(m.truncate(title))))
	if bodyHeight > 0 {
		lines = append(lines, m.renderBody(bodyHeight)...)
	}
	lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderFooter()))
	lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderHelp()))
	if len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) handleClick(x, y int) {
	idx := m.cellAt(x, y)
	if idx < 0 {
		return
	}
	hit, err := m.ctrl.OnCellClicked(idx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if hit {
		m.errMsg = ""
	}
}

func (m *Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 0 {
		return 0
	}
	return h
}

// gridOrigin returns the terminal position of the grid's top-left corner.
func (m *Model) gridOrigin() (x, y int) {
	grid := m.ctrl.Grid()
	cols := grid.ContainerSize * columnsPerUnit
	rows := grid.ContainerSize
	x = (m.width - cols) / 2
	y = (m.bodyHeight() - rows) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	// Body starts below the title line.
	return x, y + 1
}

func (m *Model) cellAt(x, y int) int {
	grid := m.ctrl.Grid()
	if grid.Degenerate() {
		return -1
	}
	ox, oy := m.gridOrigin()
	ux := float64(x-ox) / columnsPerUnit
	uy := float64(y - oy)
	return grid.CellAt(ux, uy)
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(m.truncate(formatFooter(m.ctrl.Snapshot(), m.ctrl.Grid().Dimension)))
}

func (m *Model) renderHelp() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.truncate(m.errMsg))
	}
	return m.help.View(m.keys)
}

func (m *Model) truncate(s string) string {
	return runewidth.Truncate(s, m.width, "…")
}

func formatFooter(snap session.Snapshot, dimension int) string {
	avg := "--"
	if snap.AverageReactionTime > 0 {
		avg = fmt.Sprintf("%.3fs", snap.AverageReactionTime)
	}
	bps := "--"
	if snap.BitsPerSecond > 0 {
		bps = fmt.Sprintf("%.2f", snap.BitsPerSecond)
	}
	segments := []string{
		fmt.Sprintf("Grid %dx%d", dimension, dimension),
		fmt.Sprintf("Selections: %d", snap.SelectionCount),
		fmt.Sprintf("Avg reaction: %s", avg),
		fmt.Sprintf("BPS: %s", bps),
	}
	return strings.Join(segments, "  ")
}
