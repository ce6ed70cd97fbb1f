package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/roster"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/urfave/cli/v3"
)

// Setup initializes the config file, the database, and the member roster.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.config = config
	r.logger.Info("initializing database", "path", config.Database.Path)

	return r.withStore(func(st *store.Store) error {
		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		if err := st.SaveUsers(roster.EnsureAdmin(users)); err != nil {
			return fmt.Errorf("failed to seed roster: %w", err)
		}

		r.logger.Infof("setup complete for database: %v", config.Database.Path)
		return r.writePlain("✓ Setup complete\nSign in with `playlistvote login admin adminadmin` and change the password.\n")
	})
}
