package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	deltaFlag  string
	nsnapFlag  uint64
	ntrialFlag uint64
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:   "popproto sim nsteps",
	Short: "Population protocol simulator",
	Long: `popproto simulates a population protocol: N anonymous agents, each in
one of nstates states, interacting in uniformly-random pairs and updating
their states through a transition function read from stdin.

sim selects the urn/simulator pair:

  array    sequential driver over an array urn
  linear   sequential driver over a linear-scan urn
  bst      sequential driver over a binary-search-tree urn
  alias    sequential driver over an alias-method urn
  batch    collision-batched driver over a linear urn
  mbatch   epoch-adaptive multi-batched driver over a BST urn`,
	Args: cobra.ExactArgs(2),
	RunE: runSimulate,
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print section headers and prompts")
	rootCmd.Flags().StringVarP(&deltaFlag, "delta", "d", "array", "delta representation: array or map")
	rootCmd.Flags().Uint64VarP(&nsnapFlag, "nsnap", "s", 1, "number of snapshots to emit")
	rootCmd.Flags().Uint64VarP(&ntrialFlag, "ntrials", "t", 1, "number of independent trials")
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "optional tunables file (default: built-in defaults)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(errLine(err))
		os.Exit(-1)
	}
}

// errLine renders err as the CLI's required single-line stderr diagnostic.
func errLine(err error) string {
	return "popproto: " + err.Error() + "\n"
}
