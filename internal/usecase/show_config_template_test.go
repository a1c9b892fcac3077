package usecase_test

import (
	"context"
	"testing"

	"github.com/kazedev/packerctl/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfigTemplate_Execute(t *testing.T) {
	uc := usecase.NewShowConfigTemplate()

	out, err := uc.Execute(context.Background(), usecase.ShowConfigTemplateInput{})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Contains(t, out.Template, "[packer]")
	assert.Contains(t, out.Template, "[templates]")
	assert.Contains(t, out.Template, "[log]")
}
