package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharevar/sharevar/internal/store"
)

func setCmd() *cobra.Command {
	var asString bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Assign a value to a variable",
		Long: "Assign a value to a variable. VALUE is stored as an integer or\n" +
			"float when it parses as one, otherwise as a string; --as-string\n" +
			"forces string storage.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			v := store.ParseValue(args[1])
			if asString {
				v = store.StringValue(args[1])
			}

			stored, err := s.Update(args[0], v, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asString, "as-string", false, "store VALUE as a string even if it looks numeric")
	return cmd
}
