package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharevar/sharevar/internal/store"
)

func incrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incr KEY [DELTA]",
		Short: "Atomically add DELTA (default 1) to a variable",
		Long: "Atomically add DELTA (default 1) to a variable and print the new\n" +
			"value. An absent or non-numeric current value counts as 0. The\n" +
			"read-modify-write runs under the file lock, so concurrent\n" +
			"increments from other processes are never lost.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta := store.IntValue(1)
			if len(args) == 2 {
				var err error
				delta, err = parseDelta(args[1])
				if err != nil {
					return err
				}
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			v, err := s.Update(args[0], delta, true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}
