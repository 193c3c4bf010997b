package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmatsui/bookkeeping-service/internal/repository"
)

func newInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repository.InitSchema(db); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema initialized")
			return nil
		},
	}
}
