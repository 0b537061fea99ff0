// Package protocol parses the population protocol description read from
// stdin: the state count, initial distribution, and transition function,
// and validates them against the CLI's preconditions before a simulator is
// constructed.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jihwankim/popproto/internal/pairmap"
)

// ErrInvalidInput is wrapped by every parse/validation failure, matching the
// CLI's InvalidArgument error kind.
var ErrInvalidInput = errors.New("invalid protocol description")

// DeltaKind selects the transition function's backing representation.
type DeltaKind string

const (
	DeltaArray DeltaKind = "array"
	DeltaMap   DeltaKind = "map"
)

// Description is the parsed, validated protocol: state count, initial
// distribution, and transition map.
type Description struct {
	NStates uint32
	Initial []uint32
	Delta   pairmap.PairMap
}

// Parser reads a protocol description in the exact stdin format:
//
//	nstates ndist ntrans
//	s_1:a_1 s_2:a_2 ... s_ndist:a_ndist
//	s_11:s_12 s_13:s_14
//	...
//
// State labels are 1-based at this interface and are converted to 0-based
// internally. Duplicate initial-distribution entries are summed. Duplicate
// transitions: first writer wins under DeltaMap, last writer wins under
// DeltaArray.
type Parser struct {
	Delta DeltaKind
	NSnap uint64
}

// New creates a Parser configured for the given delta representation and
// snapshot count, both needed to validate the state-count bound.
func New(delta DeltaKind, nsnap uint64) *Parser {
	return &Parser{Delta: delta, NSnap: nsnap}
}

// Parse reads and validates a protocol description from r.
func (p *Parser) Parse(r io.Reader) (*Description, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	header, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidInput, err)
	}
	nstates, ndist, ntrans, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	if err := p.validateNStates(nstates); err != nil {
		return nil, err
	}

	distLine, err := nextLine(scanner)
	if err != nil {
		return nil, fmt.Errorf("%w: reading distribution line: %v", ErrInvalidInput, err)
	}
	initial, total, err := parseDistribution(distLine, ndist, nstates)
	if err != nil {
		return nil, err
	}
	if total < 2 {
		return nil, fmt.Errorf("%w: total agents must be >= 2, got %d", ErrInvalidInput, total)
	}

	delta, err := p.parseTransitions(scanner, ntrans, nstates)
	if err != nil {
		return nil, err
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &Description{NStates: nstates, Initial: initial, Delta: delta}, nil
}

func (p *Parser) validateNStates(nstates uint32) error {
	const maxUint64 = math.MaxUint64
	if uint64(nstates) > maxUint64/(p.NSnap+1) {
		return fmt.Errorf("%w: nstates=%d exceeds (2^64-1)/(nsnap+1)", ErrInvalidInput, nstates)
	}
	if p.Delta == DeltaArray {
		sqrtBound := uint64(math.Sqrt(float64(maxUint64)))
		if uint64(nstates) > sqrtBound {
			return fmt.Errorf("%w: nstates=%d exceeds floor(sqrt(2^64-1)) required by delta=array", ErrInvalidInput, nstates)
		}
	}
	return nil
}

func (p *Parser) parseTransitions(scanner *bufio.Scanner, ntrans int, nstates uint32) (pairmap.PairMap, error) {
	var delta pairmap.PairMap
	if p.Delta == DeltaArray {
		delta = pairmap.NewDense(nstates)
	} else {
		delta = pairmap.NewChained(uint64(ntrans) + 1)
	}

	for i := 0; i < ntrans; i++ {
		line, err := nextLine(scanner)
		if err != nil {
			return nil, fmt.Errorf("%w: reading transition line %d: %v", ErrInvalidInput, i+1, err)
		}
		k1, k2, v1, v2, err := parseTransitionLine(line, nstates)
		if err != nil {
			return nil, err
		}
		delta.Insert(k1, k2, v1, v2)
	}
	return delta, nil
}

// nextLine returns the next non-blank line, skipping blank lines between
// sections.
func nextLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func parseHeader(line string) (nstates uint32, ndist, ntrans int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: header must have 3 fields, got %d", ErrInvalidInput, len(fields))
	}
	n, err1 := strconv.ParseUint(fields[0], 10, 32)
	d, err2 := strconv.Atoi(fields[1])
	t, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, fmt.Errorf("%w: malformed header %q", ErrInvalidInput, line)
	}
	if n == 0 || d < 0 || t < 0 {
		return 0, 0, 0, fmt.Errorf("%w: header values out of range %q", ErrInvalidInput, line)
	}
	return uint32(n), d, t, nil
}

func parseColonPair(tok string) (uint64, uint64, error) {
	parts := strings.SplitN(tok, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: malformed pair %q, want a:b", ErrInvalidInput, tok)
	}
	a, err1 := strconv.ParseUint(parts[0], 10, 64)
	b, err2 := strconv.ParseUint(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: malformed pair %q", ErrInvalidInput, tok)
	}
	return a, b, nil
}

func parseDistribution(line string, ndist int, nstates uint32) ([]uint32, uint64, error) {
	fields := strings.Fields(line)
	if len(fields) != ndist {
		return nil, 0, fmt.Errorf("%w: expected %d distribution entries, got %d", ErrInvalidInput, ndist, len(fields))
	}
	dist := make([]uint32, nstates)
	var total uint64
	for _, f := range fields {
		s, a, err := parseColonPair(f)
		if err != nil {
			return nil, 0, err
		}
		if s < 1 || s > uint64(nstates) {
			return nil, 0, fmt.Errorf("%w: state label %d out of [1,%d]", ErrInvalidInput, s, nstates)
		}
		dist[s-1] += uint32(a)
		total += a
	}
	return dist, total, nil
}

func parseTransitionLine(line string, nstates uint32) (k1, k2, v1, v2 uint32, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("%w: transition line must have 2 pairs, got %d: %q", ErrInvalidInput, len(fields), line)
	}
	s1, s2, err1 := parseColonPair(fields[0])
	s3, s4, err2 := parseColonPair(fields[1])
	if err1 != nil {
		return 0, 0, 0, 0, err1
	}
	if err2 != nil {
		return 0, 0, 0, 0, err2
	}
	for _, s := range []uint64{s1, s2, s3, s4} {
		if s < 1 || s > uint64(nstates) {
			return 0, 0, 0, 0, fmt.Errorf("%w: state label %d out of [1,%d]", ErrInvalidInput, s, nstates)
		}
	}
	return uint32(s1 - 1), uint32(s2 - 1), uint32(s3 - 1), uint32(s4 - 1), nil
}
