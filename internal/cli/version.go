package cli

import (
	"fmt"
	"strings"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/spf13/cobra"
)

// newVersionCommand creates the version command reporting the wrapped
// binary's version. packerctl's own version lives on the root --version flag.
func newVersionCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the wrapped packer binary's version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.Packer(cmd.Context())
			if err != nil {
				return err
			}
			out, err := p.Version(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(out))
			return nil
		},
	}
}
