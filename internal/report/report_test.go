package report_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/jihwankim/popproto/internal/report"
	"github.com/jihwankim/popproto/internal/sim"
)

func TestWriteSnapshotsFormat(t *testing.T) {
	snaps := sim.Snapshots{
		{10, 0, 0},
		{8, 2, 0},
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := report.WriteSnapshots(w, snaps); err != nil {
		t.Fatalf("WriteSnapshots: %v", err)
	}
	w.Flush()

	want := "10 0 0\n8 2 0\n"
	if buf.String() != want {
		t.Errorf("WriteSnapshots output = %q, want %q", buf.String(), want)
	}
}

func TestWriteTrialSeparator(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	report.WriteTrialSeparator(w)
	w.Flush()
	if buf.String() != "\n" {
		t.Errorf("separator = %q, want a single newline", buf.String())
	}
}

func TestProgressInactiveIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewProgress(&buf, false)
	p.Section("TRIAL 1")
	p.Prompt("reading protocol...")
	if buf.Len() != 0 {
		t.Errorf("inactive progress should print nothing, got %q", buf.String())
	}
}

func TestProgressActivePrints(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewProgress(&buf, true)
	p.Section("TRIAL 1")
	if buf.String() != "[TRIAL 1]\n" {
		t.Errorf("Section output = %q", buf.String())
	}
}
