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
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/aracbul/aracbul"
	"github.com/aracbul/aracbul/ai"
	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/explain"
	"github.com/aracbul/aracbul/ingestion"
	"github.com/aracbul/aracbul/query"
)

func main() {
	// Load .env before flag parsing so EnvVars-backed flags see it.
	// A missing file is fine; flags and real env still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "arabul",
		Usage: "Free-text vehicle catalog search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to catalog database directory",
				Value:   "./catalog_db",
				EnvVars: []string{"ARABUL_DB"},
			},
			&cli.StringFlag{
				Name:    "llm-host",
				Usage:   "Text-completion service host URL",
				EnvVars: []string{"ARABUL_LLM_HOST", "OLLAMA_URL"},
			},
			&cli.StringFlag{
				Name:    "llm-model",
				Usage:   "Text-completion model name",
				EnvVars: []string{"ARABUL_LLM_MODEL"},
			},
			&cli.BoolFlag{
				Name:  "no-llm",
				Usage: "Disable the text-completion collaborator; always render locally",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load a scraped listings file into the catalog",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "Path to the scraped listings JSON file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Replace the stored catalog instead of upserting",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of listings per write batch",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N listings",
						Value: 100,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Interpret a free-text query and rank the catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Filter mode (strict or weighted)",
						Value: "strict",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Shortlist size",
						Value: query.ShortlistSize,
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Assess a single listing by id",
				ArgsUsage: "<listing-id>",
				Action:    analyzeCommand,
			},
			{
				Name:   "list",
				Usage:  "Print the stored catalog in insertion order",
				Action: listCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	catalog, err := openCatalog(c, true)
	if err != nil {
		return err
	}
	defer catalog.Close()

	progress := ingestion.NewProgressTracker(os.Stderr, 0, c.Int("report-interval"))
	pipeline, err := catalog.NewIngestionPipeline(
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithReplace(c.Bool("replace")),
		ingestion.WithProgress(progress),
	)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.IngestFile(context.Background(), c.String("src"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if report.Skipped {
		fmt.Printf("Source unchanged, %d listings already ingested\n", report.Ingested)
		return nil
	}
	fmt.Printf("Ingested %d listings (%d rejected)\n", report.Ingested, report.Rejected)
	return nil
}

func searchCommand(c *cli.Context) error {
	queryText := strings.Join(c.Args().Slice(), " ")

	mode, err := parseMode(c.String("mode"))
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c, false)
	if err != nil {
		return err
	}
	defer catalog.Close()

	ctx := context.Background()
	listings, err := catalog.LoadListings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	engine, err := catalog.NewEngine(
		query.WithFilterMode(mode),
		query.WithShortlistSize(c.Int("top")),
	)
	if err != nil {
		return err
	}

	result, err := engine.InterpretAndRank(ctx, queryText, listings)
	if err != nil {
		return err
	}

	fmt.Println(result.Explanation)
	if result.TotalMatches > len(result.Shortlist) {
		fmt.Printf("\n(%d ilandan %d tanesi gösteriliyor)\n", result.TotalMatches, len(result.Shortlist))
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("listing id is required")
	}

	catalog, err := openCatalog(c, false)
	if err != nil {
		return err
	}
	defer catalog.Close()

	listing, err := catalog.ListingRepository().GetListing(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to load listing %s: %w", id, err)
	}

	explainer, err := catalog.NewExplainer()
	if err != nil {
		return err
	}

	fmt.Println(explainer.AnalyzeListing(context.Background(), listing))
	return nil
}

func listCommand(c *cli.Context) error {
	catalog, err := openCatalog(c, true)
	if err != nil {
		return err
	}
	defer catalog.Close()

	listings, err := catalog.LoadListings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	for _, l := range listings {
		fmt.Printf("%s  %s | %s | %d | %s\n",
			l.Id, l.Title, explain.FormatTL(l.Price), l.Year, l.City)
	}
	fmt.Printf("%d listings\n", len(listings))
	return nil
}

// openCatalog opens the catalog named by the global flags. Commands that
// never explain anything skip the collaborator regardless of flags.
func openCatalog(c *cli.Context, withoutAI bool) (*aracbul.Catalog, error) {
	var opts []aracbul.CatalogOption

	if withoutAI || c.Bool("no-llm") {
		opts = append(opts, aracbul.WithoutAI())
	} else {
		var configOpts []ai.ConfigOption
		if host := c.String("llm-host"); host != "" {
			configOpts = append(configOpts, ai.WithHost(host))
		}
		if model := c.String("llm-model"); model != "" {
			configOpts = append(configOpts, ai.WithModel(model))
		}
		opts = append(opts, aracbul.WithAIConfig(ai.NewConfig(configOpts...)))
	}

	catalog, err := aracbul.OpenCatalog(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func parseMode(s string) (core.FilterMode, error) {
	switch strings.ToLower(s) {
	case "strict", "b":
		return core.FilterModeStrict, nil
	case "weighted", "a":
		return core.FilterModeWeighted, nil
	}
	return 0, fmt.Errorf("invalid mode %q: must be strict or weighted", s)
}

func setup(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
