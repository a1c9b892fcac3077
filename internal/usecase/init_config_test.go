package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazedev/packerctl/internal/domain"
	"github.com/kazedev/packerctl/internal/testutil"
	"github.com/kazedev/packerctl/internal/usecase"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates project config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.ProjectConfigInfo = domain.ConfigInfo{
			Path:   "/test/packerctl.toml",
			Exists: false,
		}

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Global: false})

		require.NoError(t, err)
		assert.Equal(t, "/test/packerctl.toml", out.Path)
		assert.True(t, manager.InitProjectCalled)
		assert.False(t, manager.InitGlobalCalled)
	})

	t.Run("creates global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.GlobalConfigInfo = domain.ConfigInfo{
			Path:   "/home/test/.config/packerctl/config.toml",
			Exists: false,
		}

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Global: true})

		require.NoError(t, err)
		assert.Equal(t, "/home/test/.config/packerctl/config.toml", out.Path)
		assert.False(t, manager.InitProjectCalled)
		assert.True(t, manager.InitGlobalCalled)
	})

	t.Run("returns error when the config already exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitProjectErr = domain.ErrConfigExists

		uc := usecase.NewInitConfig(manager)
		_, err := uc.Execute(context.Background(), usecase.InitConfigInput{Global: false})

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
