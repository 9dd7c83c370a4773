package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a variable",
		Long: "Print the value of a variable. Exits with status 1 and prints\n" +
			"nothing when the variable is not set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			v, ok, err := s.Read(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errKeyAbsent
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}
