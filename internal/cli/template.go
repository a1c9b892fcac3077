package cli

import (
	"fmt"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/spf13/cobra"
)

// newValidateCommand creates the validate command.
func newValidateCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <template>",
		Short: "Validate a template",
		Long: `Validate the syntax and configuration of a template.

Packer's output goes straight to the terminal; the command exits
non-zero when validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			return p.Validate(cmd.Context(), args[0])
		},
	}
}

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init <template>",
		Short: "Install the plugins a template requires",
		Long: `Run packer init for a template, downloading the plugins listed in
its required_plugins block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			return p.Init(cmd.Context(), args[0])
		},
	}
}

// newConsoleCommand creates the console command.
func newConsoleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "console <template>",
		Short: "Open a packer console for a template",
		Long: `Open packer's interactive console with the template loaded.

The console inherits the terminal; packerctl adds nothing on top.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			return p.Console(cmd.Context(), args[0])
		},
	}
}

// newInspectCommand creates the inspect command.
func newInspectCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <template>",
		Short: "Show the components of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			out, err := p.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// newFixCommand creates the fix command.
func newFixCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "fix <template>",
		Short: "Rewrite a template for the current packer version",
		Long: `Run packer fix on a template and print the fixed template to stdout.
The template file itself is not modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			out, err := p.Fix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// newHCL2UpgradeCommand creates the hcl2upgrade command.
func newHCL2UpgradeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "hcl2upgrade <template>",
		Short: "Convert a JSON template to HCL2",
		Long: `Run packer hcl2_upgrade on a JSON template and print the conversion
output to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			out, err := p.HCL2Upgrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
