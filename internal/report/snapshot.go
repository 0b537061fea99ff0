package report

import (
	"bufio"
	"fmt"

	"github.com/jihwankim/popproto/internal/sim"
)

// WriteSnapshots writes one trial's snapshot matrix to w: one line per row,
// space-separated counts, matching the CLI's stdout contract exactly.
func WriteSnapshots(w *bufio.Writer, snaps sim.Snapshots) error {
	for _, row := range snaps {
		for i, c := range row {
			if i > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%d", c); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrialSeparator writes the blank line the CLI contract requires
// between trials.
func WriteTrialSeparator(w *bufio.Writer) error {
	return w.WriteByte('\n')
}
