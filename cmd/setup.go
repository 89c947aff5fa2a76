package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/gigx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the client storage and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Client storage ready at %s\n", r.config.Database.Path)
}

// SetupConfig writes the default configuration to the config path, or prints the effective one.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("show") {
		enc := toml.NewEncoder(r.output)
		if err := enc.Encode(r.config); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	}

	path := r.configPath
	if path == "" {
		path = defaultConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", shared.ErrInvalidArgument, path)
	}

	r.logger.Info("config file not found, creating from template", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set api.base_url to your backend\n")
	r.writePlain("2. Run 'gigx setup database'\n")
	r.writePlain("3. Run 'gigx auth login --email you@example.com --password ...'\n")
	return nil
}
