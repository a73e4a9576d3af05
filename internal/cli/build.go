package cli

import (
	"github.com/RevCBH/pgbox/internal/bootstrap"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command
func NewBuildCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the postgres image",
		Long: `Build bakes the postgres image from the configured build context.
The image is rebuilt even if it already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStep(bootstrap.StepBuild)
		},
	}
}
