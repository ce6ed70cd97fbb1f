package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/services"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	metadata := services.NewOEmbedService(config.Metadata.Endpoint, httpClient, config.Metadata.RateLimit)
	insight := services.NewOpenAIInsight(services.InsightConfig{
		Endpoint: config.Insight.Endpoint,
		Model:    config.Insight.Model,
		APIKey:   config.Insight.APIKey,
	}, logger)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Metadata: metadata,
		Insight:  insight,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "playlistvote",
		Usage:    "Suggest, vote on, and share songs for the next setlist",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration, database, and the member roster",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
