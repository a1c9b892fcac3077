package cli

import (
	"fmt"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/spf13/cobra"
)

// newPluginCommand creates the plugin command with its subcommands.
func newPluginCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage packer plugins",
		Long:  `Install, remove, and list the plugins known to the wrapped packer binary.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newPluginInstallCommand(c))
	cmd.AddCommand(newPluginRemoveCommand(c))
	cmd.AddCommand(newPluginListCommand(c))

	return cmd
}

// newPluginInstallCommand creates the plugin install subcommand.
func newPluginInstallCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "install <plugin>",
		Short: "Install a packer plugin",
		Long: `Install a packer plugin by source address.

Example:
  packerctl plugin install github.com/hashicorp/amazon`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			return p.PluginInstall(cmd.Context(), args[0])
		},
	}
}

// newPluginRemoveCommand creates the plugin remove subcommand.
func newPluginRemoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <plugin>",
		Short: "Remove a packer plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			return p.PluginRemove(cmd.Context(), args[0])
		},
	}
}

// newPluginListCommand creates the plugin list subcommand.
func newPluginListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packer plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			out, err := p.PluginList(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
