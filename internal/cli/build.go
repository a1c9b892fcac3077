package cli

import (
	"fmt"
	"time"

	"github.com/kazedev/packerctl/internal/app"
	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/usecase"
	"github.com/spf13/cobra"
)

// newBuildCommand creates the build command.
func newBuildCommand(c *app.Container) *cobra.Command {
	var (
		vars           []string
		varFiles       []string
		parallelBuilds int
		debug          bool
		force          bool
		timestampUI    bool
		color          bool
		source         string
		workingDir     string
	)

	cmd := &cobra.Command{
		Use:   "build <template>",
		Short: "Run a packer build",
		Long: `Run a packer build for the given template.

The template argument is a local path, or a path inside --source when a
source is given. A source may be a local directory or a git URL
(https://, git@, ssh://, optionally suffixed @ref); git sources are
cloned into the checkout cache and reused on later runs.

Variables given with --var are passed through in order, duplicates
included; packer's own precedence rules decide which value wins.

Examples:
  # Build a local template
  packerctl build image.pkr.hcl

  # Build with variables and no color
  packerctl build image.pkr.hcl --var env=prod --var region=us-east-1 --color=false

  # Build a template from a git source
  packerctl build templates/base.pkr.hcl --source https://github.com/acme/images@v2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var optFns []domain.BuildOption
			if cmd.Flags().Changed("parallel-builds") {
				optFns = append(optFns, domain.WithParallelBuilds(parallelBuilds))
			}
			if debug {
				optFns = append(optFns, domain.WithDebug())
			}
			if force {
				optFns = append(optFns, domain.WithForce())
			}
			if timestampUI {
				optFns = append(optFns, domain.WithTimestampUI())
			}
			optFns = append(optFns, domain.WithColor(color))
			for _, raw := range vars {
				v, err := domain.ParseVar(raw)
				if err != nil {
					return err
				}
				optFns = append(optFns, domain.WithVar(v.Key, v.Value))
			}
			optFns = append(optFns, domain.WithVarFiles(varFiles))

			uc, err := c.RunBuildUseCase(cmd.Context())
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.RunBuildInput{
				Options:    domain.NewBuildOptions(optFns...),
				Template:   args[0],
				Source:     source,
				WorkingDir: workingDir,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Build finished in %s (%s)\n",
				successMark(), out.Duration.Round(time.Millisecond), out.TemplatePath)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Template variable as key=value (repeatable, order preserved)")
	cmd.Flags().StringArrayVar(&varFiles, "var-file", nil, "Variable file passed to packer (repeatable, order preserved)")
	cmd.Flags().IntVar(&parallelBuilds, "parallel-builds", 0, "Cap the number of builds packer runs in parallel")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable packer's single-step debug mode")
	cmd.Flags().BoolVar(&force, "force", false, "Force the build even when artifacts exist")
	cmd.Flags().BoolVar(&timestampUI, "timestamp-ui", false, "Prefix packer output with timestamps")
	cmd.Flags().BoolVar(&color, "color", true, "Colorize packer output")
	cmd.Flags().StringVar(&source, "source", "", "Template source: local directory or git URL (optional @ref suffix)")
	cmd.Flags().StringVar(&workingDir, "working-dir", "", "Working directory for the spawned packer process")

	return cmd
}
