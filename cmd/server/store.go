package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/swimmeet/internal/config"
	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/store/memory"
	"github.com/JonMunkholm/swimmeet/internal/store/postgres"
)

// openStore builds the roster store named by cfg.Store.Driver. The returned
// close function releases it.
func openStore(ctx context.Context, cfg *config.Config) (core.Store, func(), error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil

	case config.StoreMemory:
		store := memory.New()
		fixture := memory.DemoFixture()
		if cfg.Store.SeedFile != "" {
			f, err := memory.LoadFixtureFile(cfg.Store.SeedFile)
			if err != nil {
				return nil, nil, err
			}
			fixture = f
		}
		if fixture.TenantID == "" {
			fixture.TenantID = cfg.Tenant.DefaultID
		}
		swimmers, teams, err := store.Seed(fixture)
		if err != nil {
			return nil, nil, fmt.Errorf("seed memory store: %w", err)
		}
		slog.Info("memory store seeded",
			"tenant_id", fixture.TenantID,
			"swimmers", swimmers,
			"teams", teams,
			"file", cfg.Store.SeedFile,
		)
		return store, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
