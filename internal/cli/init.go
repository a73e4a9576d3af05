package cli

import (
	"github.com/RevCBH/pgbox/internal/bootstrap"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Apply the database schema",
		Long: `Init applies the init SQL to the running postgres instance,
building the image and starting the container first when needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStep(bootstrap.StepInit)
		},
	}
}
