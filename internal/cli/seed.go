package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/barline/internal/db"
	"github.com/example/barline/internal/wire"
)

// SeedCmd returns the seed command.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with development fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Open(wire.Config().DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			seeded, err := db.Seeded(database)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Println("Database already seeded")
				return nil
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded fixtures")
			return nil
		},
	}
}
