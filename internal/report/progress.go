package report

import "fmt"

// Progress prints verbose-mode section headers and prompts directly to an
// io.Writer (stderr for the CLI, so it never interleaves with the snapshot
// data written to stdout).
type Progress struct {
	out    writer
	active bool
}

type writer interface {
	Write(p []byte) (int, error)
}

// NewProgress creates a Progress reporter. active controls whether Section
// and Prompt actually print anything, so callers don't need to guard every
// call site with "if verbose".
func NewProgress(out writer, active bool) *Progress {
	return &Progress{out: out, active: active}
}

// Section prints a verbose-mode section header, e.g. "[TRIAL 3/10]".
func (p *Progress) Section(title string) {
	if !p.active {
		return
	}
	fmt.Fprintf(p.out, "[%s]\n", title)
}

// Prompt prints a verbose-mode status line, e.g. "reading protocol description...".
func (p *Progress) Prompt(msg string) {
	if !p.active {
		return
	}
	fmt.Fprintf(p.out, "%s\n", msg)
}
