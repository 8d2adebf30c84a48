package main

import (
	"fmt"
	"io"
	"os"

	"aebs.klederson.com/internal/aebs"
	"aebs.klederson.com/internal/app"
	"aebs.klederson.com/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagMaxHistory int
	flagFPS        int
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aebs",
		Short: "AEBS - Automatic emergency braking driver console",
		Long: `AEBS fuses readings from simulated lidar, radar and camera sensors into a
braking command once per frame and shows the result in a terminal driver console.

Sensors can be added, removed and faulted from the console. Any sensor fault
forces full braking until it is cleared. Use "aebs simulate" for a headless run.`,
		SilenceUsage: true,
		RunE:         runConsole,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "JSON config file (defaults built in)")
	pf.IntVar(&flagMaxHistory, "max-history", -1, "Readings kept per sensor (overrides config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().IntVar(&flagFPS, "fps", 0, "Evaluations per second (overrides config)")

	rootCmd.AddCommand(newSimulateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config (if any) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		if cfg, err = config.Load(flagConfig); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("max-history") {
		cfg.MaxHistory = flagMaxHistory
	}
	if cmd.Flags().Changed("fps") {
		cfg.TargetFPS = flagFPS
	}
	return cfg, cfg.Validate()
}

// newLogger builds a logger writing to --log-file, or to fallback when no
// file is given. The returned closer must be called on exit.
func newLogger(fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(level)

	if flagLogFile == "" {
		log.SetOutput(fallback)
		return log, io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return log, f, nil
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alt screen owns stdout; without a log file, logs are dropped.
	log, closer, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	engine, err := aebs.FromConfig(cfg, aebs.WithLogger(log))
	if err != nil {
		return err
	}

	model := app.New(engine, cfg, log)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(cfg.TargetFPS),
	)

	log.WithField("sensors", engine.Count()).Info("console started")
	_, err = p.Run()
	return err
}
