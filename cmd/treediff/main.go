// Command treediff replays a scripted sequence of DOM edits against an
// HTML fragment and reports what treeobserve/treedelta recorded:
// whether anything mutated, the minimal bounding range, and the
// per-node delta.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treediff",
		Short: "Replay a DOM mutation script and report the tracked delta",
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	var filterName string
	var selfCheck bool
	var showTree bool

	cmd := &cobra.Command{
		Use:          "run <script.json>",
		Short:        "Replay a mutation script and print Mutated/Range/Diff",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}

			runID := uuid.NewString()

			script, err := parseScript(data)
			if err != nil {
				return fmt.Errorf("parsing script: %w", err)
			}

			filter, err := parseFilter(filterName)
			if err != nil {
				return err
			}

			result, err := replay(script, selfCheck)
			if err != nil {
				return fmt.Errorf("replaying script: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", runID)
			return printResult(cmd.OutOrStdout(), result, filter, showTree)
		},
	}

	cmd.Flags().StringVar(&filterName, "filter", "all", "delta filter: all, children, attribute, data, custom, property")
	cmd.Flags().BoolVar(&selfCheck, "self-check", false, "run the engine's debug invariant check after every child-list edit")
	cmd.Flags().BoolVar(&showTree, "dump-tree", false, "print the final DOM tree before the delta report")
	return cmd
}
