package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/kazedev/packerctl/internal/app"
	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/usecase"
	"github.com/spf13/cobra"
)

// confirmInstallFunc is a function variable for the interactive confirmation,
// allowing it to be stubbed in tests.
var confirmInstallFunc = confirmInstall

// newInstallCommand creates the install command.
func newInstallCommand(c *app.Container) *cobra.Command {
	var yes bool
	var force bool

	cmd := &cobra.Command{
		Use:   "install [version]",
		Short: "Install the packer binary",
		Long: `Download, verify, and install the packer binary.

The release archive and its SHA256SUMS file are fetched from
releases.hashicorp.com for the current platform; the archive is only
extracted after its checksum matches. The binary lands in the configured
install directory (default: current directory).

Without a version argument the configured version is installed. When a
suitable binary is already present the command is a no-op; use --force to
reinstall.

Examples:
  # Install the configured default version
  packerctl install

  # Install a specific version without prompting
  packerctl install 1.7.8 --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version := c.AppConfig.Packer.Version
			if len(args) > 0 {
				version = args[0]
			}
			if version == "" {
				version = domain.DefaultPackerVersion
			}

			if !yes {
				ok, err := confirmInstallFunc(fmt.Sprintf("Install packer %s to %s?", version, c.Installer.Dir()))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			uc := c.InstallPackerUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InstallPackerInput{
				Version: version,
				Force:   force,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.AlreadyInstalled {
				_, _ = fmt.Fprintf(w, "%s packer is already installed at %s\n", successMark(), out.Path)
				return nil
			}
			_, _ = fmt.Fprintf(w, "%s Installed packer %s at %s\n", successMark(), out.Version, out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even when a suitable binary is present")

	return cmd
}

// confirmInstall asks the user to confirm the install interactively.
func confirmInstall(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: message,
		Default: true,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
