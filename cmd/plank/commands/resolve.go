package commands

import (
	"github.com/plankbuild/plank/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve build plans for the target platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			manifestPath, _ := cmd.Flags().GetString("manifest")
			lockfilePath, _ := cmd.Flags().GetString("lockfile")
			platforms, _ := cmd.Flags().GetStringSlice("platform")
			allowTrusted, _ := cmd.Flags().GetBool("allow-trusted")
			execute, _ := cmd.Flags().GetBool("execute")
			return c.app.Resolve(cmd.Context(), app.ResolveOptions{
				ManifestPath: manifestPath,
				LockfilePath: lockfilePath,
				Platforms:    platforms,
				Output:       output,
				AllowTrusted: allowTrusted,
				Execute:      execute,
			})
		},
	}
	cmd.Flags().StringSliceP("platform", "p", nil, "Target platform identifiers (default: all supported platforms)")
	cmd.Flags().StringP("output", "o", "default", "Output name to resolve from the output graph")
	cmd.Flags().String("lockfile", "", "Path to the dependency lock record (default: manifest reference)")
	cmd.Flags().Bool("allow-trusted", false, "Permit lock entries fetched without an integrity proof")
	cmd.Flags().BoolP("execute", "x", false, "Hand resolved plans to the build executor")
	return cmd
}
