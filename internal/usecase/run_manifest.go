package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kazedev/packerctl/internal/domain"
)

// RunManifestInput contains the parameters for running a build manifest.
type RunManifestInput struct {
	ManifestPath string // Path to the YAML manifest (required)
}

// ManifestBuildResult records the outcome of one manifest entry.
// Fields are ordered to minimize memory padding.
type ManifestBuildResult struct {
	Err          error         // nil on success
	Name         string        // Build name from the manifest
	TemplatePath string        // Resolved local template path
	Duration     time.Duration // Wall-clock build duration
}

// RunManifestOutput contains the results of all attempted builds.
type RunManifestOutput struct {
	Results []ManifestBuildResult
	Failed  int // Number of results with a non-nil Err
}

// RunManifest is the use case for running every build listed in a manifest,
// sequentially and in order.
type RunManifest struct {
	packer    domain.Packer
	templates domain.TemplateSource
	clock     domain.Clock
	logger    domain.Logger
}

// NewRunManifest creates a new RunManifest use case.
func NewRunManifest(
	packer domain.Packer,
	templates domain.TemplateSource,
	clock domain.Clock,
	logger domain.Logger,
) *RunManifest {
	return &RunManifest{
		packer:    packer,
		templates: templates,
		clock:     clock,
		logger:    logger,
	}
}

// Execute parses and validates the manifest, then runs its builds in order.
// An individual build failure is recorded in the output; it aborts the
// remaining builds unless the manifest sets continue_on_error. The returned
// error is non-nil only when the manifest itself cannot be read or is
// invalid.
func (uc *RunManifest) Execute(ctx context.Context, in RunManifestInput) (*RunManifestOutput, error) {
	data, err := os.ReadFile(in.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	manifest, err := domain.ParseManifest(data)
	if err != nil {
		return nil, err
	}

	p := uc.packer
	if manifest.WorkingDir != "" {
		p = p.WithWorkingDir(manifest.WorkingDir)
	}

	out := &RunManifestOutput{}
	for _, build := range manifest.Builds {
		result := uc.runOne(ctx, p, build)
		out.Results = append(out.Results, result)
		if result.Err != nil {
			out.Failed++
			if !manifest.ContinueOnError {
				break
			}
		}
	}
	return out, nil
}

func (uc *RunManifest) runOne(ctx context.Context, p domain.Packer, build domain.ManifestBuild) ManifestBuildResult {
	result := ManifestBuildResult{Name: build.Name}

	opts, err := build.Options()
	if err != nil {
		result.Err = err
		return result
	}

	templatePath, err := uc.templates.ResolveTemplate(ctx, build.Source, build.Template)
	if err != nil {
		result.Err = fmt.Errorf("resolve template: %w", err)
		return result
	}
	result.TemplatePath = templatePath

	uc.logger.Info("run", fmt.Sprintf("building %s (%s)", build.Name, templatePath))
	start := uc.clock.Now()
	result.Err = p.Build(ctx, templatePath, opts)
	result.Duration = uc.clock.Now().Sub(start)
	if result.Err != nil {
		uc.logger.Error("run", fmt.Sprintf("build %s failed: %v", build.Name, result.Err))
	}
	return result
}
