package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"juanride/internal/config"
	"juanride/internal/database"
	"juanride/internal/modules/commission"
	"juanride/internal/repository"
)

func main() {
	_ = godotenv.Load()

	var limit int

	rootCmd := &cobra.Command{
		Use:   "backfill",
		Short: "JuanRide commission backfill tool",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Create missing commission rows for finished bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg.DatabaseURL)
			if err != nil {
				return err
			}

			svc := commission.NewService(
				repository.NewCommissionRepository(db),
				repository.NewSettingRepository(db),
			)

			created, err := svc.Backfill(cmd.Context(), limit)
			if err != nil {
				return err
			}

			fmt.Printf("backfill complete: %d commissions created\n", created)
			return nil
		},
	}
	runCmd.Flags().IntVar(&limit, "limit", 500, "maximum bookings to scan")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
