// Package cli is the goalcal command tree. It is the collaborator around
// the layout engine: it owns the goal collection, validates input, does
// month navigation and hands the engine's geometry to a renderer.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"goalcal/internal/calendar"
	"goalcal/internal/config"
	"goalcal/internal/goals"
	appLog "goalcal/internal/log"
	"goalcal/internal/model"
)

const defaultConfigPath = "goalcal.yaml"

// App carries state shared by all commands.
type App struct {
	ConfigPath string
	LogLevel   string

	cfg *config.Config
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "goalcal",
		Short:         "Lay out long-running goals as bars on a month calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", defaultConfigPath, "Path to config file (created with defaults if missing)")
	root.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level: debug, info, error (overrides config)")

	root.AddCommand(
		newLayoutCmd(app),
		newShowCmd(app),
		newPreviewCmd(app),
		newHitCmd(app),
		newServeCmd(app),
		newGoalsCmd(app),
	)
	return root
}

func (a *App) init() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.LogLevel != "" {
		level = a.LogLevel
	}
	l, err := appLog.ParseLevel(level)
	if err != nil {
		return err
	}
	appLog.SetLevel(l)
	appLog.Debug("effective config",
		"config_path", a.ConfigPath,
		"goals_path", cfg.GoalsFile(a.ConfigPath),
		"lane_policy", cfg.LanePolicy,
		"ics_count", len(cfg.ICS),
	)
	return nil
}

func (a *App) store() *goals.Store {
	return goals.NewStore(a.cfg.GoalsFile(a.ConfigPath))
}

func (a *App) loader() *goals.Loader {
	feeds := make([]goals.Feed, 0, len(a.cfg.ICS))
	for _, src := range a.cfg.ICS {
		if src.URL == "" {
			continue
		}
		feeds = append(feeds, goals.Feed{URL: src.URL, Color: src.Color})
	}
	return goals.NewLoader(a.store(), feeds)
}

// layout loads a fresh snapshot and lays out month m.
func (a *App) layout(ctx context.Context, m model.Month) (*calendar.Layout, error) {
	grid, err := calendar.NewGridFor(m)
	if err != nil {
		return nil, err
	}
	snap, err := a.loader().Reload(ctx)
	if err != nil {
		return nil, err
	}
	l := calendar.ComputeLayout(grid, snap.Goals, a.cfg.Geometry, calendar.WithLanePolicy(a.cfg.Policy()))
	if rows := l.Overflowing(); len(rows) > 0 {
		appLog.Info("lanes overflow cell height", "month", m, "rows", rows, "max_fitting_lanes", a.cfg.Geometry.MaxFittingLanes())
	}
	return l, nil
}

// addMonthFlags registers --offset for commands taking an optional month.
func addMonthFlags(cmd *cobra.Command, offset *int) {
	cmd.Flags().IntVar(offset, "offset", 0, "Move this many months from the given (or current) month, e.g. 1 for next, -1 for previous")
}

// monthArg resolves an optional YYYY-MM argument plus navigation offset.
func monthArg(args []string, offset int) (model.Month, error) {
	m := model.CurrentMonth()
	if len(args) > 0 {
		parsed, err := model.ParseMonth(args[0])
		if err != nil {
			return model.Month{}, err
		}
		m = parsed
	}
	return m.Add(offset), nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	return n, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
