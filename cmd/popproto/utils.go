package main

import (
	"fmt"
	"strconv"

	"github.com/jihwankim/popproto/internal/protocol"
	"github.com/jihwankim/popproto/internal/rng"
	"github.com/jihwankim/popproto/internal/sim"
	"github.com/jihwankim/popproto/internal/urn"
)

// simKinds enumerates the positional sim argument's valid values, each
// naming the urn flavor (and, for batch/mbatch, the batching strategy) a
// trial is run against.
var simKinds = map[string]bool{
	"array": true, "linear": true, "bst": true, "alias": true,
	"batch": true, "mbatch": true,
}

func parseSimKind(s string) (string, error) {
	if !simKinds[s] {
		return "", fmt.Errorf("sim=%q must be one of array, linear, bst, alias, batch, mbatch", s)
	}
	return s, nil
}

func parseDeltaKind(s string) (protocol.DeltaKind, error) {
	switch protocol.DeltaKind(s) {
	case protocol.DeltaArray:
		return protocol.DeltaArray, nil
	case protocol.DeltaMap:
		return protocol.DeltaMap, nil
	default:
		return "", fmt.Errorf("delta=%q must be one of array, map", s)
	}
}

// parseNSteps parses the nsteps positional argument against its [1, 2^64-2]
// bound.
func parseNSteps(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nsteps=%q is not a valid integer", s)
	}
	const max = ^uint64(0) - 1
	if n < 1 || n > max {
		return 0, fmt.Errorf("nsteps=%d must be in [1,%d]", n, max)
	}
	return n, nil
}

// runOneTrial builds a fresh urn seeded independently of the driver's own
// RNG stream, loads the initial distribution into it, and runs the
// simulator sim selects. Each trial's urn and RNG state are local to this
// call, matching the core's no-shared-mutable-state concurrency model.
func runOneTrial(kind string, desc *protocol.Description, delta *sim.Delta, nsteps, nsnap, seed uint64, tun *protocol.Tunables) sim.Snapshots {
	urnSeed := seed*3 + 1
	driverSeed := seed*3 + 2
	batchSeed := seed*3 + 3

	switch kind {
	case "array":
		u, _ := urn.NewArray(urnSeed, desc.NStates)
		u.Insert(desc.Initial)
		return sim.RunSequential(u, delta, nsteps, nsnap)
	case "linear":
		u, _ := urn.NewLinear(urnSeed, desc.NStates)
		u.Insert(desc.Initial)
		return sim.RunSequential(u, delta, nsteps, nsnap)
	case "bst":
		u, _ := urn.NewBST(urnSeed, desc.NStates)
		u.Insert(desc.Initial)
		return sim.RunSequential(u, delta, nsteps, nsnap)
	case "alias":
		u, err := urn.NewAlias(urnSeed, desc.NStates, tun.Alias.Alpha, tun.Alias.Beta)
		if err != nil {
			panic(err) // tunables are validated at load time; this can't happen
		}
		u.Insert(desc.Initial)
		return sim.RunSequential(u, delta, nsteps, nsnap)
	case "batch":
		u, _ := urn.NewLinear(urnSeed, desc.NStates)
		u.Insert(desc.Initial)
		src := rng.NewMT19937_64(driverSeed)
		return sim.RunBatched(src, u, delta, nsteps, nsnap, batchSeed)
	case "mbatch":
		u, _ := urn.NewBST(urnSeed, desc.NStates)
		u.Insert(desc.Initial)
		src := rng.NewMT19937_64(driverSeed)
		return sim.RunMultiBatched(src, u, delta, nsteps, nsnap, batchSeed, tun.Epoch.Initial)
	default:
		panic("popproto: unreachable sim kind " + kind)
	}
}
