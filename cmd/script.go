package main

import (
	"landing/internal/animation"
	"landing/internal/config"

	"github.com/spf13/cobra"
)

// scriptCommand prints the page bootstrap script, or the default particle
// configuration, so a static build can ship them without the server.
func scriptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Prints the generated page bootstrap script",
		RunE: func(cmd *cobra.Command, args []string) error {
			particles, _ := cmd.Flags().GetBool("particles")
			if particles {
				_, err := cmd.OutOrStdout().Write(animation.DefaultParticlesConfig().JSON())

				return err //nolint: wrapcheck
			}

			return animation.Render(cmd.OutOrStdout(), animation.NewBootstrap(cfg)) //nolint: wrapcheck
		},
	}

	cmd.Flags().Bool("particles", false, "Print the default particles.json instead")

	return cmd
}
