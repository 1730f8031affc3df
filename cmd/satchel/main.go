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
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/config"
	"github.com/poiesic/satchel/filter"
	"github.com/poiesic/satchel/ingestion"
	"github.com/poiesic/satchel/intent"
	"github.com/poiesic/satchel/search"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

var clock = time.Now

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "satchel",
		Usage:  "Find a student's homework, lessons and review material from plain-language questions",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a satchel.yaml config file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the record store (badger directory or SQLite file)",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Record store driver (badger, sqlite)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search a student's materials",
				ArgsUsage: "[query]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "student",
						Aliases:  []string{"s"},
						Usage:    "Student ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Plain-language query (defaults to the remaining arguments)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (overrides search.max_results)",
					},
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "CEL expression every result must satisfy, e.g. 'has_grade && grade_ratio < 0.7'",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the response as JSON",
					},
				},
			},
			{
				Name:      "classify",
				Usage:     "Show how a query is interpreted without touching the store",
				ArgsUsage: "[query]",
				Action:    classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Plain-language query (defaults to the remaining arguments)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the intent as JSON",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import materials for a student from a YAML or JSON file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "student",
						Aliases:  []string{"s"},
						Usage:    "Student ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Fixture file (.yaml, .yml or .json)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of materials written per store call (overrides import.batch_size)",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
						Value: true,
					},
				},
			},
		},
	}
}

func queryArg(c *cli.Context) string {
	if q := c.String("query"); q != "" {
		return q
	}
	return strings.Join(c.Args().Slice(), " ")
}

func openDatabase(c *cli.Context) (*satchel.Database, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration was not loaded")
	}
	db, err := satchel.NewDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []search.Option{search.WithClock(clock)}
	if c.IsSet("limit") {
		opts = append(opts, search.WithMaxResults(c.Int("limit")))
	}
	if expr := c.String("filter"); expr != "" {
		opts = append(opts, search.WithFilter(expr))
	}
	searcher, err := db.NewSearcher(opts...)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	resp, err := searcher.Search(ctx, c.String("student"), queryArg(c))
	if err != nil {
		return err
	}

	// A degraded response is still an answer: warn and print what we have.
	if resp.Degraded {
		fmt.Fprintf(c.App.ErrWriter, "warning: record store unavailable after %d attempts: %v\n", resp.Attempts, resp.Err)
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, newSearchOutput(resp))
	}
	printResults(c.App.Writer, resp)
	return nil
}

func classifyCommand(c *cli.Context) error {
	qi := intent.Classify(queryArg(c))
	criteria := filter.Build(qi, clock())

	if c.Bool("json") {
		return writeJSON(c.App.Writer, newIntentOutput(qi, criteria))
	}
	printIntent(c.App.Writer, qi, criteria)
	return nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	raws, err := ingestion.LoadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.String("file"), err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingestion.Option
	if c.IsSet("batch-size") {
		opts = append(opts, ingestion.WithBatchSize(c.Int("batch-size")))
	}
	if c.Bool("progress") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create import pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Import(ctx, c.String("student"), raws)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printReport(c.App.Writer, report)
	if report.Imported == 0 && report.Total > 0 {
		return fmt.Errorf("no materials imported")
	}
	return nil
}

// setupLogger loads the configuration, applies global flag overrides and
// installs the default slog logger.
func setupLogger(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("driver") {
		cfg.Store.Driver = c.String("driver")
	}
	if c.IsSet("db") {
		cfg.Store.Path = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}
