package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharevar/sharevar/internal/store"
)

func hammerCmd() *cobra.Command {
	var (
		iterations int
		deltaArg   string
	)

	cmd := &cobra.Command{
		Use:   "hammer KEY",
		Short: "Repeatedly increment a variable (contention driver)",
		Long: "Repeatedly increment a variable, one full lock cycle per\n" +
			"iteration, and print the last value written. Run several hammer\n" +
			"processes against the same file to exercise the locking protocol:\n" +
			"with N processes of I iterations each, the final value must be\n" +
			"exactly N*I above where it started.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations <= 0 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
			}
			delta, err := parseDelta(deltaArg)
			if err != nil {
				return err
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			var last store.Value
			for i := 0; i < iterations; i++ {
				last, err = s.Update(args[0], delta, true)
				if err != nil {
					return err
				}
			}
			log.Debug("hammer finished %d increments of %s", iterations, args[0])
			fmt.Fprintln(cmd.OutOrStdout(), last.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "number of increments to perform")
	cmd.Flags().StringVar(&deltaArg, "delta", "1", "amount to add per iteration")
	return cmd
}
