// Package main provides the CLI entrypoint for tusavi.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tusavi/internal/config"
	"github.com/verte-zerg/tusavi/internal/game"
	"github.com/verte-zerg/tusavi/internal/generator"
	"github.com/verte-zerg/tusavi/internal/layout"
	"github.com/verte-zerg/tusavi/internal/model"
	"github.com/verte-zerg/tusavi/internal/sound"
	"github.com/verte-zerg/tusavi/internal/stats"
	"github.com/verte-zerg/tusavi/internal/statsui"
	"github.com/verte-zerg/tusavi/internal/store"
	"github.com/verte-zerg/tusavi/internal/telemetry"
	"github.com/verte-zerg/tusavi/internal/tui"
)

const (
	defaultReward          = 10
	defaultMismatchPenalty = 5
	defaultTimePenalty     = 10
	defaultPenaltyInterval = 10
	defaultWeakTop         = 8
	defaultWeakWindow      = 20
	defaultCurveWindow     = 10
	defaultLogLevel        = "warn"
)

var (
	playLayout          string
	playReward          int
	playMismatchPenalty int
	playTimePenalty     int
	playPenaltyInterval int
	playSound           bool
	playHistory         bool
	playFocusWeak       bool
	playWeakTop         int
	playWeakWindow      int

	statsLayout      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tusavi",
		Short:         "Learn the Turkish Q keyboard by dragging keys into place",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playLayout, "layout", layout.DefaultName, "built-in or custom layout name")
	rootCmd.Flags().IntVar(&playReward, "reward", defaultReward, "points for a correct drop")
	rootCmd.Flags().IntVar(&playMismatchPenalty, "mismatch-penalty", defaultMismatchPenalty, "points lost for a wrong drop")
	rootCmd.Flags().IntVar(&playTimePenalty, "time-penalty", defaultTimePenalty, "points lost per penalty interval")
	rootCmd.Flags().IntVar(&playPenaltyInterval, "penalty-interval", defaultPenaltyInterval, "seconds of play between time penalties")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "ring the terminal bell on drops")
	rootCmd.Flags().BoolVar(&playHistory, "history", true, "save completed rounds")
	rootCmd.Flags().BoolVar(&playFocusWeak, "focus-weak", false, "put frequently misplaced keys first in the pool")
	rootCmd.Flags().IntVar(&playWeakTop, "weak-top", defaultWeakTop, "number of weak keys to focus on")
	rootCmd.Flags().IntVar(&playWeakWindow, "weak-window", defaultWeakWindow, "number of recent rounds to compute weak keys")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := mergePlayConfig(cmd, fileCfg.Game)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	l, err := layout.Resolve(cfg.Layout, config.DefaultLayoutDir())
	if err != nil {
		return err
	}

	logger, err := openLogger(fileCfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	var st *store.Store
	if cfg.History || cfg.FocusWeak {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("failed to close db", "err", cerr)
			}
		}()
	}

	logger.Info("starting", "layout", l.Name, "keys", l.Size(), "focus_weak", cfg.FocusWeak)
	m := tui.NewModel(tui.Options{
		Config:    cfg,
		Layout:    l,
		Store:     st,
		Generator: generator.New(),
		Sound:     sound.NewBell(os.Stderr),
		Logger:    logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func mergePlayConfig(cmd *cobra.Command, file config.GameConfig) model.Config {
	applyStringConfig(cmd, "layout", &playLayout, file.Layout)
	applyIntConfig(cmd, "reward", &playReward, file.Reward)
	applyIntConfig(cmd, "mismatch-penalty", &playMismatchPenalty, file.MismatchPenalty)
	applyIntConfig(cmd, "time-penalty", &playTimePenalty, file.TimePenalty)
	applyIntConfig(cmd, "penalty-interval", &playPenaltyInterval, file.PenaltyInterval)
	applyBoolConfig(cmd, "sound", &playSound, file.Sound)
	applyBoolConfig(cmd, "history", &playHistory, file.History)
	applyBoolConfig(cmd, "focus-weak", &playFocusWeak, file.FocusWeak)
	applyIntConfig(cmd, "weak-top", &playWeakTop, file.WeakTop)
	applyIntConfig(cmd, "weak-window", &playWeakWindow, file.WeakWindow)

	return model.Config{
		Layout:          playLayout,
		Reward:          playReward,
		MismatchPenalty: playMismatchPenalty,
		TimePenalty:     playTimePenalty,
		PenaltyInterval: playPenaltyInterval,
		Sound:           playSound,
		History:         playHistory,
		FocusWeak:       playFocusWeak,
		WeakTop:         playWeakTop,
		WeakWindow:      playWeakWindow,
	}
}

func openLogger(cfg config.LogConfig) (*telemetry.Logger, error) {
	level := defaultLogLevel
	if cfg.Level != nil {
		level = *cfg.Level
	}
	path := config.DefaultLogPath()
	if cfg.File != nil && strings.TrimSpace(*cfg.File) != "" {
		path = *cfg.File
	}
	logger, err := telemetry.Open(path, level)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
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
	if err := writeConfigTemplate(path); err != nil {
		return err
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

// writeConfigTemplate creates the commented config file unless it exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List built-in and custom layouts",
		Args:  cobra.NoArgs,
		RunE:  runLayoutsCmd,
	}
}

func runLayoutsCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, name := range layout.BuiltinNames() {
		if _, err := fmt.Fprintf(out, "%s (built-in)\n", name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	dir := config.DefaultLayoutDir()
	custom, err := layout.ListCustom(dir)
	if err != nil {
		return err
	}
	for _, name := range custom {
		if _, err := fmt.Fprintf(out, "%s (%s)\n", name, filepath.Join(dir, name+".toml")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show round history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLayout, "layout", "", "layout filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print the report instead of opening the browser")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return printStats(cmd, st, cfg)
	}
	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	return model.StatsConfig{
		Layout:      statsLayout,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}

func printStats(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Rounds); err != nil {
		return err
	}
	if err := stats.RenderCurves(out, report.Rounds, cfg.CurveWindow, 0); err != nil {
		return err
	}
	return stats.RenderKeyTable(out, report.KeyAggsWindow)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tusavi configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# layout = %q            # Built-in name or a file in layouts/
# reward = %d             # Points for a correct drop
# mismatch-penalty = %d    # Points lost for a wrong drop
# time-penalty = %d       # Points lost per penalty interval
# penalty-interval = %d   # Seconds of play between time penalties
# sound = true            # Ring the terminal bell on drops
# history = true          # Save completed rounds
# focus-weak = false      # Put frequently misplaced keys first
# weak-top = %d            # Number of weak keys to focus on
# weak-window = %d        # Number of recent rounds to compute weak keys

[log]
# level = %q          # debug, info, warn or error
# file = ""               # Defaults to the XDG state directory
`,
		layout.DefaultName,
		defaultReward,
		defaultMismatchPenalty,
		defaultTimePenalty,
		defaultPenaltyInterval,
		defaultWeakTop,
		defaultWeakWindow,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	scoring := game.Scoring{
		Reward:          cfg.Reward,
		MismatchPenalty: cfg.MismatchPenalty,
		TimePenalty:     cfg.TimePenalty,
		PenaltyInterval: cfg.PenaltyInterval,
	}
	if err := scoring.Validate(); err != nil {
		return fmt.Errorf("invalid scoring: %w", err)
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
