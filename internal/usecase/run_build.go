package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kazedev/packerctl/internal/domain"
)

// RunBuildInput contains the parameters for a single packer build.
// Fields are ordered to minimize memory padding.
type RunBuildInput struct {
	Options    domain.BuildOptions
	Template   string // Template path, or path inside Source (required)
	Source     string // Optional template source (git URL or local directory)
	WorkingDir string // Optional working directory for the spawned process
}

// RunBuildOutput contains the result of a build.
type RunBuildOutput struct {
	TemplatePath string        // Resolved local template path
	Duration     time.Duration // Wall-clock build duration
}

// RunBuild is the use case for running one packer build.
type RunBuild struct {
	packer    domain.Packer
	templates domain.TemplateSource
	clock     domain.Clock
	logger    domain.Logger
}

// NewRunBuild creates a new RunBuild use case.
func NewRunBuild(
	packer domain.Packer,
	templates domain.TemplateSource,
	clock domain.Clock,
	logger domain.Logger,
) *RunBuild {
	return &RunBuild{
		packer:    packer,
		templates: templates,
		clock:     clock,
		logger:    logger,
	}
}

// Execute resolves the template reference and runs the build.
func (uc *RunBuild) Execute(ctx context.Context, in RunBuildInput) (*RunBuildOutput, error) {
	if in.Template == "" {
		return nil, domain.NewConfigError("template is required")
	}

	templatePath, err := uc.templates.ResolveTemplate(ctx, in.Source, in.Template)
	if err != nil {
		return nil, fmt.Errorf("resolve template: %w", err)
	}

	p := uc.packer
	if in.WorkingDir != "" {
		p = p.WithWorkingDir(in.WorkingDir)
	}

	uc.logger.Info("build", fmt.Sprintf("building %s", templatePath))
	start := uc.clock.Now()
	if err := p.Build(ctx, templatePath, in.Options); err != nil {
		uc.logger.Error("build", fmt.Sprintf("build %s failed: %v", templatePath, err))
		return nil, err
	}

	return &RunBuildOutput{
		TemplatePath: templatePath,
		Duration:     uc.clock.Now().Sub(start),
	}, nil
}
