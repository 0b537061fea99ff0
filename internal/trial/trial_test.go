package trial_test

import (
	"testing"

	"github.com/jihwankim/popproto/internal/sim"
	"github.com/jihwankim/popproto/internal/trial"
)

func TestRunOrdersResultsBySeed(t *testing.T) {
	cfg := trial.Config{NTrials: 8, BaseSeed: 100}
	results := trial.Run(cfg, func(seed uint64) sim.Snapshots {
		return sim.Snapshots{{uint32(seed)}}
	})
	if len(results) != 8 {
		t.Fatalf("len(results) = %d, want 8", len(results))
	}
	for i, r := range results {
		want := uint32(100 + i)
		if r[0][0] != want {
			t.Errorf("results[%d] = %d, want %d", i, r[0][0], want)
		}
	}
}

func TestRunSingleTrial(t *testing.T) {
	cfg := trial.Config{NTrials: 1, BaseSeed: 42}
	results := trial.Run(cfg, func(seed uint64) sim.Snapshots {
		return sim.Snapshots{{uint32(seed)}}
	})
	if len(results) != 1 || results[0][0][0] != 42 {
		t.Fatalf("unexpected single-trial result: %v", results)
	}
}

func TestCleanupCoordinatorRecordsReleases(t *testing.T) {
	c := trial.NewCoordinator()
	c.Release(0, "urn")
	c.Release(0, "collision-sampler")
	c.Release(1, "urn")
	if len(c.AuditLog()) != 3 {
		t.Fatalf("AuditLog() len = %d, want 3", len(c.AuditLog()))
	}
	if c.Summary() != "released 3 resource(s) across the run" {
		t.Errorf("Summary() = %q", c.Summary())
	}
}
