package app

import (
	"context"
	"fmt"

	"ostrack/internal/config"
	"ostrack/internal/db"
	"ostrack/internal/engine"
	"ostrack/internal/migrate"
)

// Open prepares a workspace for use: directory, database, schema, config
// and the seeded admin login. The returned close function releases the
// database connection.
func Open(ctx context.Context, workspace string) (engine.Engine, func(), error) {
	if _, err := db.EnsureWorkspace(workspace); err != nil {
		return engine.Engine{}, nil, err
	}
	conn, err := db.Open(db.Config{Workspace: workspace})
	if err != nil {
		return engine.Engine{}, nil, err
	}
	if err := migrate.Migrate(conn); err != nil {
		conn.Close()
		return engine.Engine{}, nil, fmt.Errorf("migrate: %w", err)
	}
	cfg, err := config.Load(workspace)
	if err != nil {
		conn.Close()
		return engine.Engine{}, nil, err
	}
	e := engine.New(conn, cfg)
	if _, err := e.SeedAdmin(ctx); err != nil {
		conn.Close()
		return engine.Engine{}, nil, fmt.Errorf("seed admin: %w", err)
	}
	return e, func() { conn.Close() }, nil
}
