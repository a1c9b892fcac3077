package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/testutil"
	"github.com/kazedev/packerctl/internal/usecase"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns file info and the merged config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.ProjectConfigInfo = domain.ConfigInfo{Path: "/test/packerctl.toml", Exists: true, Content: "[packer]\n"}
		loader := testutil.NewMockConfigLoader()
		loader.Config.Packer.Version = "1.9.4"

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.True(t, out.ProjectConfig.Exists)
		assert.Equal(t, "/test/packerctl.toml", out.ProjectConfig.Path)
		assert.False(t, out.GlobalConfig.Exists)
		assert.Equal(t, "1.9.4", out.Merged.Packer.Version)
	})

	t.Run("propagates loader failures", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = errors.New("parse failure")

		uc := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		assert.Error(t, err)
	})
}
