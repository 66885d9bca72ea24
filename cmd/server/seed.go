package main

import (
	"ayunova/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo account and wellness records",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger.Named("seeder")}
		if err := r.Run(cmd.Context(), c.DB); err != nil {
			return err
		}
		c.Logger.Info("seed complete", zap.String("email", seeder.DemoEmail))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
