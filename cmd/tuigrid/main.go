// Package main provides the CLI entrypoint for tuigrid.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuigrid/internal/config"
	"github.com/verte-zerg/tuigrid/internal/game"
	"github.com/verte-zerg/tuigrid/internal/layout"
	"github.com/verte-zerg/tuigrid/internal/model"
	"github.com/verte-zerg/tuigrid/internal/session"
	"github.com/verte-zerg/tuigrid/internal/stats"
	"github.com/verte-zerg/tuigrid/internal/tui"
)

const (
	defaultBreakpoint  = 100.0
	defaultSmall       = 10
	defaultLarge       = 20
	defaultFill        = 0.9
	defaultGap         = 1
	defaultCurveWindow = 10

	fallbackWidth  = 80
	fallbackHeight = 24
)

var (
	gridBreakpoint float64
	gridSmall      int
	gridLarge      int
	gridFill       float64
	gridGap        int
	gridSeed       int64

	summaryEnabled     bool
	summaryCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuigrid",
		Short:         "Terminal reaction-time grid benchmark",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGridCmd,
	}

	rootCmd.Flags().Float64Var(&gridBreakpoint, "breakpoint", defaultBreakpoint, "viewport width (in cell units of two columns) at which the large grid is used")
	rootCmd.Flags().IntVar(&gridSmall, "small", defaultSmall, "grid dimension below the breakpoint")
	rootCmd.Flags().IntVar(&gridLarge, "large", defaultLarge, "grid dimension at or above the breakpoint")
	rootCmd.Flags().Float64Var(&gridFill, "fill", defaultFill, "fraction of the smaller viewport side used by the grid (0-1]")
	rootCmd.Flags().IntVar(&gridGap, "gap", defaultGap, "gap between cells in cell units")
	rootCmd.Flags().Int64Var(&gridSeed, "seed", 0, "seed for target placement (0: random)")
	rootCmd.Flags().BoolVar(&summaryEnabled, "summary", true, "print a summary after quitting")
	rootCmd.Flags().IntVar(&summaryCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the throughput curve")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runGridCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "breakpoint", &gridBreakpoint, fileCfg.Grid.Breakpoint)
	applyConfig(cmd, "small", &gridSmall, fileCfg.Grid.Small)
	applyConfig(cmd, "large", &gridLarge, fileCfg.Grid.Large)
	applyConfig(cmd, "fill", &gridFill, fileCfg.Grid.Fill)
	applyConfig(cmd, "gap", &gridGap, fileCfg.Grid.Gap)
	applyConfig(cmd, "seed", &gridSeed, fileCfg.Grid.Seed)
	applyConfig(cmd, "summary", &summaryEnabled, fileCfg.Summary.Enabled)
	applyConfig(cmd, "curve-window", &summaryCurveWindow, fileCfg.Summary.CurveWindow)

	cfg := model.Config{
		BreakpointWidth: gridBreakpoint,
		SmallDimension:  gridSmall,
		LargeDimension:  gridLarge,
		FillFraction:    gridFill,
		Gap:             gridGap,
		Seed:            gridSeed,
		CurveWindow:     summaryCurveWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("tuigrid needs an interactive terminal")
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		logErrf("failed to read terminal size: %v\n", err)
		width, height = fallbackWidth, fallbackHeight
	}

	vw, vh := tui.ViewportUnits(width, height)
	ctrl, err := game.New(layoutParams(cfg), vw, vh, session.WithSource(session.NewSeededSource(cfg.Seed)))
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if !summaryEnabled {
		return nil
	}
	m, ok := final.(*tui.Model)
	if !ok {
		return nil
	}
	if err := stats.RenderSummary(cmd.OutOrStdout(), m.Sessions(), cfg.CurveWindow, 0); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func layoutParams(cfg model.Config) layout.Params {
	return layout.Params{
		BreakpointWidth: cfg.BreakpointWidth,
		SmallDimension:  cfg.SmallDimension,
		LargeDimension:  cfg.LargeDimension,
		FillFraction:    cfg.FillFraction,
		Gap:             cfg.Gap,
	}
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuigrid configuration
# Uncomment a value to enable it. CLI flags override config values.
# Sizes are in cell units: one terminal row, two terminal columns.

[grid]
# breakpoint = %.0f        # Width at which the large grid is used
# small = %d               # Grid dimension below the breakpoint
# large = %d               # Grid dimension at or above the breakpoint
# fill = %.2f             # Fraction of the smaller viewport side used (0-1]
# gap = %d                  # Gap between cells
# seed = 0                 # Target placement seed (0: random)

[summary]
# enabled = true           # Print a summary after quitting
# curve-window = %d        # Moving average window for the throughput curve
`,
		defaultBreakpoint,
		defaultSmall,
		defaultLarge,
		defaultFill,
		defaultGap,
		defaultCurveWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.BreakpointWidth < 0 {
		return fmt.Errorf("--breakpoint must be >= 0")
	}
	if cfg.SmallDimension < 1 {
		return fmt.Errorf("--small must be > 0")
	}
	if cfg.LargeDimension < 1 {
		return fmt.Errorf("--large must be > 0")
	}
	if cfg.FillFraction <= 0 || cfg.FillFraction > 1 {
		return fmt.Errorf("--fill must be greater than 0 and at most 1")
	}
	if cfg.Gap < 0 {
		return fmt.Errorf("--gap must be >= 0")
	}
	if cfg.CurveWindow < 1 {
		return fmt.Errorf("--curve-window must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
