package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aebs.klederson.com/internal/aebs"
	"aebs.klederson.com/internal/config"
	"aebs.klederson.com/internal/sim"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	var (
		ticks      int
		interval   time.Duration
		faults     []string
		resets     []string
		inactiveAt int
		activeAt   int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the braking engine headlessly and print its decisions",
		Example: `  aebs simulate --ticks 200
  aebs simulate --fault LIDAR@40 --reset LIDAR@60
  aebs simulate --config sensors.json --inactive-at 100 --interval 33ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var script sim.Script
			for _, spec := range faults {
				ev, err := sim.ParseSensorEvent(sim.ActionFault, spec)
				if err != nil {
					return err
				}
				script = append(script, ev)
			}
			for _, spec := range resets {
				ev, err := sim.ParseSensorEvent(sim.ActionReset, spec)
				if err != nil {
					return err
				}
				script = append(script, ev)
			}
			if inactiveAt > 0 {
				script = append(script, sim.Event{Tick: inactiveAt, Action: sim.ActionDeactivate})
			}
			if activeAt > 0 {
				script = append(script, sim.Event{Tick: activeAt, Action: sim.ActionActivate})
			}

			log, closer, err := newLogger(os.Stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			engine, err := aebs.FromConfig(cfg, aebs.WithLogger(log))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := sim.NewRunner(engine, ticks, interval, script)
			runner.SetLogger(log)
			res, runErr := runner.Run(ctx)
			if err := sim.WriteReport(cmd.OutOrStdout(), res, engine); err != nil {
				return err
			}
			if errors.Is(runErr, context.Canceled) {
				return nil
			}
			return runErr
		},
	}

	f := cmd.Flags()
	f.IntVar(&ticks, "ticks", config.SimTicks, "Evaluation cycles to run")
	f.DurationVar(&interval, "interval", 0, "Delay between cycles (0 runs flat out)")
	f.StringArrayVar(&faults, "fault", nil, "Inject a fault, as name@tick (repeatable)")
	f.StringArrayVar(&resets, "reset", nil, "Clear a fault, as name@tick (repeatable)")
	f.IntVar(&inactiveAt, "inactive-at", 0, "Disable AEBS at this tick")
	f.IntVar(&activeAt, "active-at", 0, "Re-enable AEBS at this tick")
	return cmd
}
