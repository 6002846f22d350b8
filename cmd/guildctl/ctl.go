package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/questx-lab/guildstate/config"
	"github.com/questx-lab/guildstate/internal/domain"
	"github.com/questx-lab/guildstate/internal/entity"
	"github.com/questx-lab/guildstate/internal/model"
	"github.com/questx-lab/guildstate/pkg/logger"
	"github.com/questx-lab/guildstate/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type ctl struct {
	ctx    context.Context
	logger interface {
		logger.Logger
		Sync() error
	}

	stateDomain domain.StateDomain
}

func (c *ctl) load(cliCtx *cli.Context) error {
	cfg, err := config.Load(cliCtx.String("config"))
	if err != nil {
		return err
	}

	if level := cliCtx.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	c.logger = logger.NewZapLogger(level, cfg.Log.JSON)
	c.ctx = xcontext.WithConfigs(cliCtx.Context, cfg)
	c.ctx = xcontext.WithLogger(c.ctx, c.logger)
	c.stateDomain = domain.NewStateDomain(entity.NewUserRegistry())
	return nil
}

func (c *ctl) close(*cli.Context) error {
	if c.logger == nil {
		return nil
	}

	// Syncing stderr fails on some terminals; there is nothing to flush then.
	_ = c.logger.Sync()
	return nil
}

// loadSnapshot applies a snapshot file to the state domain. The file holds
// either a list of events or a single guild object, which is applied as a
// guild create event.
func (c *ctl) loadSnapshot(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read snapshot: %w", err)
	}

	var events []model.Event
	if trimmed := strings.TrimSpace(string(b)); strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(b, &events); err != nil {
			return fmt.Errorf("cannot decode snapshot events: %w", err)
		}
	} else {
		var guild map[string]any
		if err := json.Unmarshal(b, &guild); err != nil {
			return fmt.Errorf("cannot decode snapshot guild: %w", err)
		}
		events = []model.Event{{Type: model.GuildCreate, Data: guild}}
	}

	for i, event := range events {
		if err := c.stateDomain.Apply(c.ctx, event); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}

	xcontext.Logger(c.ctx).Debugf("Snapshot %s applied with %d events", path, len(events))
	return nil
}

func (c *ctl) permissions(cliCtx *cli.Context) error {
	if err := c.loadSnapshot(cliCtx.String("snapshot")); err != nil {
		return err
	}

	p, err := c.stateDomain.PermissionsOf(cliCtx.String("channel"), cliCtx.String("member"))
	if err != nil {
		return err
	}

	w := cliCtx.App.Writer
	fmt.Fprintf(w, "allow: %d\n", p.Allow())
	for _, name := range p.Names() {
		fmt.Fprintln(w, name)
	}

	return nil
}

func (c *ctl) inspect(cliCtx *cli.Context) error {
	if err := c.loadSnapshot(cliCtx.String("snapshot")); err != nil {
		return err
	}

	guilds := make(map[string]any)
	for _, g := range c.stateDomain.Guilds() {
		guilds[g.ID()] = g.ToMap()
	}

	ids := maps.Keys(guilds)
	slices.Sort(ids)
	xcontext.Logger(c.ctx).Infof("Inspecting guilds %s", strings.Join(ids, ", "))

	encoder := json.NewEncoder(cliCtx.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(guilds)
}
