package cli

import (
	"github.com/RevCBH/pgbox/internal/bootstrap"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed command
func NewSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into the database",
		Long: `Seed re-applies the schema and loads the seed SQL, standing up
the image and container first when needed. The init SQL is written to
be safely re-appliable, so seeding a live database is fine.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStep(bootstrap.StepSeed)
		},
	}
}
