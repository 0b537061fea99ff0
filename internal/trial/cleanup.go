package trial

import (
	"fmt"
	"time"
)

// AuditEntry records one resource-release action taken after a trial
// finishes: each trial's urn(s), collision sampler, and snapshot buffer are
// scoped to that trial and released once its snapshots are consumed.
type AuditEntry struct {
	Timestamp time.Time
	Trial     uint64
	Resource  string
}

// Coordinator tracks resource releases across a run's trials, mirroring
// spec.md's resource policy: everything a trial allocates is scoped to
// that trial and freed after its last snapshot is consumed. Go's garbage
// collector reclaims the memory; the coordinator's job is only to record
// that the release point was reached, for diagnostics.
type Coordinator struct {
	auditLog []AuditEntry
}

// NewCoordinator creates an empty cleanup coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{auditLog: make([]AuditEntry, 0)}
}

// Release records that `resource` for `trial` has been consumed and its
// references may be dropped.
func (c *Coordinator) Release(trial uint64, resource string) {
	c.auditLog = append(c.auditLog, AuditEntry{
		Timestamp: time.Now(),
		Trial:     trial,
		Resource:  resource,
	})
}

// AuditLog returns the recorded releases in order.
func (c *Coordinator) AuditLog() []AuditEntry {
	return c.auditLog
}

// Summary reports how many releases were recorded.
func (c *Coordinator) Summary() string {
	return fmt.Sprintf("released %d resource(s) across the run", len(c.auditLog))
}
