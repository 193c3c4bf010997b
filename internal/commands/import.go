package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmatsui/bookkeeping-service/internal/repository"
	"github.com/dmatsui/bookkeeping-service/internal/service"
)

func newImportCommand() *cobra.Command {
	var orgID int64
	var accountID int64

	cmd := &cobra.Command{
		Use:   "import <statement-file>",
		Short: "Import a bank statement file for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement file: %w", err)
			}
			defer f.Close()

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			logger := logrus.New()
			logger.SetLevel(logrus.WarnLevel)
			svc := service.NewService(repository.NewRepository(db), logger)

			count, err := svc.Import(orgID, accountID, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions\n", count)
			return nil
		},
	}

	cmd.Flags().Int64Var(&orgID, "org", 0, "organization id (required)")
	_ = cmd.MarkFlagRequired("org")
	cmd.Flags().Int64Var(&accountID, "account", 0, "target account id (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
