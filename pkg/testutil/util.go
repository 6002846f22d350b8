package testutil

import (
	"context"

	"github.com/questx-lab/guildstate/config"
	"github.com/questx-lab/guildstate/pkg/logger"
	"github.com/questx-lab/guildstate/pkg/xcontext"
)

func MockContext() context.Context {
	cfg := config.Default()
	cfg.Env = "test"
	cfg.Log.Level = "debug"
	cfg.Cache = config.CacheConfigs{
		MessageLimit: 5,
		MemberLimit:  0,
	}

	return MockContextWithConfigs(cfg)
}

func MockContextWithConfigs(cfg config.Configs) context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.DEBUG))
	return ctx
}
