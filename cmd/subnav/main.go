// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/poiesic/subnav"
	"github.com/poiesic/subnav/config"
	"github.com/urfave/cli/v2"
)

const (
	configKey          = "config"
	databaseOptionsKey = "database-options"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command line. dbOpts are applied after the configured
// options whenever a command opens the database.
func newApp(dbOpts ...subnav.DatabaseOption) *cli.App {
	return &cli.App{
		Name:     "subnav",
		Usage:    "Kanagawa subsidy navigator: AI-summarized subsidy listings",
		Metadata: map[string]any{databaseOptionsKey: dbOpts},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"SUBNAV_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides logging.level",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the listing page, JSON API and pipeline trigger",
				Action: serveCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
					},
					&cli.DurationFlag{
						Name:  "run-timeout",
						Usage: "Abort a triggered run after this long (0 disables)",
					},
				),
			},
			{
				Name:   "run",
				Usage:  "Run the pipeline once in the foreground and report progress",
				Action: runCommand,
				Flags:  commonFlags(),
			},
			{
				Name:   "list",
				Usage:  "List stored subsidies ordered by deadline",
				Action: listCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Only show subsidies carrying this industry tag",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of subsidies to show (0 for all)",
					},
				),
			},
			{
				Name:   "runs",
				Usage:  "List recent pipeline runs",
				Action: runsCommand,
				Flags: append(storeFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
				),
			},
		},
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "driver",
			Usage: "Store driver (badger, sqlite)",
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Store location: BadgerDB directory or SQLite file",
		},
		&cli.BoolFlag{
			Name:  "in-memory",
			Usage: "Use an ephemeral in-memory store",
		},
	}
}

func commonFlags() []cli.Flag {
	return append(storeFlags(),
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible API base URL",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Chat model name",
		},
		&cli.StringFlag{
			Name:    "ai-api-key",
			Usage:   "API key for the AI service",
			EnvVars: []string{"SUBNAV_AI_API_KEY", "GOOGLE_GENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "source-file",
			Usage: "YAML file of candidate listings (default: built-in mock listings)",
		},
		&cli.BoolFlag{
			Name:  "fail-fast",
			Usage: "Abort the run at the first failed candidate",
		},
		&cli.IntFlag{
			Name:  "max-attempts",
			Usage: "Summarization attempts per candidate",
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff between attempts",
		},
	)
}

// setup reads the configuration file and installs the default logger.
// The --log-level flag wins over the file's logging.level.
func setup(c *cli.Context) error {
	cfg, err := config.Read(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.Logging.Level)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg
	return nil
}
