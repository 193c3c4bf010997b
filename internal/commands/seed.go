package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmatsui/bookkeeping-service/internal/repository"
	"github.com/dmatsui/bookkeeping-service/internal/seed"
)

func newSeedCommand() *cobra.Command {
	var file string
	var orgID int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a chart-of-accounts YAML file for a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening chart file: %w", err)
			}
			defer f.Close()

			chart, err := seed.Parse(f)
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := seed.Apply(repository.NewRepository(db), orgID, chart); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories and %d accounts for organization %d\n",
				len(chart.Categories), len(chart.Accounts), orgID)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "chart-of-accounts YAML file (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().Int64Var(&orgID, "org", 0, "organization id (required)")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}
