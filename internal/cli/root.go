// Package cli provides the command-line interface for packerctl.
package cli

import (
	"fmt"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup  = "setup"
	groupBuild  = "build"
	groupPlugin = "plugin"
)

// NewRootCommand creates the root command for packerctl.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "packerctl",
		Short: "Typed wrapper around the HashiCorp Packer binary",
		Long: `packerctl wraps the packer binary behind a typed command surface.
It installs and pins the binary, resolves templates from local paths or
git sources, and runs single builds or YAML build manifests.

Every build subcommand spawns the real packer executable; packerctl adds
discovery, installation, option handling, and batch execution on top.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupBuild, Title: "Build Commands:"},
		&cobra.Group{ID: groupPlugin, Title: "Plugin Commands:"},
	)

	// Setup commands
	installCmd := newInstallCommand(c)
	installCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Build commands
	buildCmd := newBuildCommand(c)
	buildCmd.GroupID = groupBuild

	runCmd := newRunCommand(c)
	runCmd.GroupID = groupBuild

	validateCmd := newValidateCommand(c)
	validateCmd.GroupID = groupBuild

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupBuild

	consoleCmd := newConsoleCommand(c)
	consoleCmd.GroupID = groupBuild

	inspectCmd := newInspectCommand(c)
	inspectCmd.GroupID = groupBuild

	fixCmd := newFixCommand(c)
	fixCmd.GroupID = groupBuild

	hcl2UpgradeCmd := newHCL2UpgradeCommand(c)
	hcl2UpgradeCmd.GroupID = groupBuild

	versionCmd := newVersionCommand(c)
	versionCmd.GroupID = groupBuild

	// Plugin commands
	pluginCmd := newPluginCommand(c)
	pluginCmd.GroupID = groupPlugin

	// Add subcommands
	root.AddCommand(
		installCmd,
		configCmd,
		buildCmd,
		runCmd,
		validateCmd,
		initCmd,
		consoleCmd,
		inspectCmd,
		fixCmd,
		hcl2UpgradeCmd,
		versionCmd,
		pluginCmd,
	)

	return root
}
