package xcontext

import (
	"context"
	"testing"

	"github.com/questx-lab/guildstate/config"
	"github.com/questx-lab/guildstate/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, config.Default(), Configs(ctx))
	require.NotNil(t, Logger(ctx))

	cfg := config.Default()
	cfg.Env = "test"
	l := logger.NewLogger(logger.DEBUG)

	ctx = WithLogger(WithConfigs(ctx, cfg), l)
	require.Equal(t, "test", Configs(ctx).Env)
	require.Equal(t, l, Logger(ctx))
}
