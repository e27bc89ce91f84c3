package commands

import (
	"github.com/plankbuild/plank/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Enter a development shell with the pinned toolchain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			platform, _ := cmd.Flags().GetString("platform")
			channel, _ := cmd.Flags().GetString("channel")
			constraint, _ := cmd.Flags().GetString("toolchain")
			return c.app.Shell(cmd.Context(), app.ShellOptions{
				ManifestPath: manifestPath,
				Platform:     platform,
				Channel:      channel,
				Constraint:   constraint,
			})
		},
	}
	cmd.Flags().StringP("platform", "p", "", "Target platform identifier (default: host platform)")
	cmd.Flags().String("channel", "stable", "Toolchain release channel")
	cmd.Flags().String("toolchain", "", "Version constraint for toolchain selection, e.g. \">= 1.74, < 1.76\"")
	return cmd
}
