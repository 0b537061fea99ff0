package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/jihwankim/popproto/internal/protocol"
	"github.com/jihwankim/popproto/internal/report"
	"github.com/jihwankim/popproto/internal/sim"
	"github.com/jihwankim/popproto/internal/trial"
	"github.com/spf13/cobra"
)

func runSimulate(cmd *cobra.Command, args []string) error {
	simKind, err := parseSimKind(args[0])
	if err != nil {
		return err
	}
	nsteps, err := parseNSteps(args[1])
	if err != nil {
		return err
	}
	deltaKind, err := parseDeltaKind(deltaFlag)
	if err != nil {
		return err
	}
	if nsnapFlag < 1 || nsnapFlag > nsteps {
		return fmt.Errorf("nsnap=%d must be in [1,%d]", nsnapFlag, nsteps)
	}
	const maxTrials = ^uint64(0) - 1
	if ntrialFlag < 1 || ntrialFlag > maxTrials {
		return fmt.Errorf("ntrials=%d must be in [1,%d]", ntrialFlag, maxTrials)
	}

	tunables, err := protocol.LoadTunables(cfgFile)
	if err != nil {
		return err
	}

	logger := report.NewLogger(report.LoggerConfig{
		Level:  report.LogLevel(tunables.Reporting.LogLevel),
		Format: report.LogFormat(tunables.Reporting.LogFormat),
		Output: os.Stderr,
	})
	progress := report.NewProgress(os.Stderr, verbose)

	progress.Section("PROTOCOL")
	progress.Prompt("reading protocol description from stdin...")

	parser := protocol.New(deltaKind, nsnapFlag)
	desc, err := parser.Parse(os.Stdin)
	if err != nil {
		return err
	}
	logger.Info("parsed protocol description", "nstates", desc.NStates)

	progress.Section("SIMULATION")
	progress.Prompt(fmt.Sprintf("running %d trial(s) of sim=%s nsteps=%d...", ntrialFlag, simKind, nsteps))

	baseSeed := uint64(time.Now().UnixNano())
	delta := sim.NewDelta(desc.Delta)

	cfg := trial.Config{NTrials: ntrialFlag, BaseSeed: baseSeed}
	results := trial.Run(cfg, func(seed uint64) sim.Snapshots {
		return runOneTrial(simKind, desc, delta, nsteps, nsnapFlag, seed, tunables)
	})

	coordinator := trial.NewCoordinator()
	for i := range results {
		coordinator.Release(uint64(i), "urn")
		coordinator.Release(uint64(i), "snapshot buffer")
	}
	logger.Debug(coordinator.Summary())

	progress.Section("OUTPUT")
	w := bufio.NewWriter(os.Stdout)
	for i, snaps := range results {
		if i > 0 {
			if err := report.WriteTrialSeparator(w); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if err := report.WriteSnapshots(w, snaps); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return w.Flush()
}
