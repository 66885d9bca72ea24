package main

import (
	"ayunova/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		r := migration.Runner{Dir: migrateDir, Logger: c.Logger.Named("migration")}
		return r.Run(cmd.Context(), c.DB.SQLDB())
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "read migrations from this directory instead of the embedded set")
	rootCmd.AddCommand(migrateCmd)
}
