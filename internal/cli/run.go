package cli

import (
	"fmt"
	"time"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/kazedev/packerctl/internal/usecase"
	"github.com/spf13/cobra"
)

// newRunCommand creates the run command for executing a build manifest.
func newRunCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Run every build in a YAML manifest",
		Long: `Run every build listed in a YAML manifest, sequentially and in order.

A manifest names its builds and gives each one a template, an optional
git source, and the usual build options. A failing build stops the run
unless the manifest sets continue_on_error; the command exits non-zero
when any build failed.

Example manifest:
  working_dir: ./images
  continue_on_error: true
  builds:
    - name: base
      template: base.pkr.hcl
      vars:
        - env=prod
    - name: app
      template: app.pkr.hcl
      var_files:
        - app.pkrvars.hcl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.RunManifestUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.RunManifestInput{
				ManifestPath: args[0],
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range out.Results {
				if r.Err != nil {
					_, _ = fmt.Fprintf(w, "%s %s: %v\n", failureMark(), r.Name, r.Err)
					continue
				}
				_, _ = fmt.Fprintf(w, "%s %s (%s) %s\n",
					successMark(), r.Name, r.Duration.Round(time.Millisecond),
					styleMuted.Render(r.TemplatePath))
			}

			if out.Failed > 0 {
				return fmt.Errorf("%d of %d builds failed", out.Failed, len(out.Results))
			}
			_, _ = fmt.Fprintf(w, "%d builds succeeded\n", len(out.Results))
			return nil
		},
	}

	return cmd
}
