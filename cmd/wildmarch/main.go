// Command wildmarch is a turn-based wilderness combat game for the
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSeed   int64
	flagConfig string
)

func main() {
	root := &cobra.Command{
		Use:   "wildmarch",
		Short: "Turn-based tactical combat in the wilds",
		Long: `Wildmarch drops a lone ranger into a procedurally generated
wilderness. Exploration runs in real time; when hostiles close in, the
fight freezes into turn-based tactical combat with action points,
movement points and a living combat zone.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "world seed (0 picks a random seed)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a combat config file")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newSimCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
