package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/behavior/internal/config"
)

func TestInitializeRuntime(t *testing.T) {
	cfg := config.Default()
	cfg.Agents = 2
	rt, err := InitializeRuntime(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, rt.Manager.Len())
	assert.Same(t, cfg, rt.Config)

	cfg.LogLevel = "nope"
	_, err = InitializeRuntime(cfg)
	assert.Error(t, err)
}
