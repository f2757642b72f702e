package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/snapup/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to disk, or to stdout with --print.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("print") {
		if _, err := r.output.Write(shared.ExampleConfig()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	configPath := cmd.String("config")
	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Wrote %s\n", configPath)
	return nil
}

// ConfigShow prints the effective configuration, after file, environment, and flag overrides, as TOML.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if err := toml.NewEncoder(r.output).Encode(r.config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// BaseURL prints the backend base URL the client submits to.
func (r *Runner) BaseURL(ctx context.Context, cmd *cli.Command) error {
	return r.writePlain("%s\n", r.api.BaseURL())
}
