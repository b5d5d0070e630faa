// Copyright 2026 Convodex Systems
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
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/convodex/convodex"
	"github.com/convodex/convodex/chunker"
	"github.com/convodex/convodex/index/chroma"
	"github.com/convodex/convodex/ocr"
	"github.com/convodex/convodex/ocr/vision"
	"github.com/convodex/convodex/reindex"
	"github.com/convodex/convodex/source/discord"
	"github.com/convodex/convodex/storage"
	"github.com/convodex/convodex/syncer"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "convodex",
		Usage: "Chat archive with semantic search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Pull new messages from a guild into the archive",
				Action: syncCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "guild",
						Usage:    "Guild ID to sync",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "token",
						Usage:    "Bot token (falls back to DISCORD_TOKEN)",
						EnvVars:  []string{"DISCORD_TOKEN"},
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "full",
						Usage: "Ignore the watermark and walk full channel history",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Messages to process between checkpoints",
						Value: 100,
					},
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Pause between checkpoints",
						Value: 1 * time.Second,
					},
					&cli.StringFlag{
						Name:  "ocr-host",
						Usage: "Vision service host URL for image attachments (disabled if empty)",
					},
					&cli.StringFlag{
						Name:  "ocr-model",
						Usage: "Vision model name",
						Value: "llava:7b",
					},
				}, indexFlags()...),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild all conversation chunks and their index documents",
				Action: reindexCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Preview the chunks without touching the archive or index",
					},
					&cli.DurationFlag{
						Name:  "time-window",
						Usage: "Gap that starts a new chunk",
						Value: 30 * time.Minute,
					},
					&cli.IntFlag{
						Name:  "max-messages",
						Usage: "Maximum messages per chunk",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "min-messages",
						Usage: "Chunks smaller than this are backfilled from earlier messages",
						Value: 3,
					},
				}, indexFlags()...),
			},
			{
				Name:   "status",
				Usage:  "Show the latest sync run and per-channel coverage",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Run a natural-language query against the archive",
				Action: searchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query text",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
				}, indexFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// indexFlags are shared by every command that talks to the index store.
func indexFlags() []cli.Flag {
	defaults := chroma.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "chroma-url",
			Usage: "Chroma server base URL",
			Value: defaults.ChromaURL,
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "Chroma collection name",
			Value: defaults.Collection,
		},
		&cli.StringFlag{
			Name:  "llm-host",
			Usage: "Answer model host URL",
			Value: defaults.LLMHost,
		},
		&cli.StringFlag{
			Name:  "llm-model",
			Usage: "Answer model name",
			Value: defaults.LLMModel,
		},
		&cli.IntFlag{
			Name:  "top-k",
			Usage: "Documents to retrieve per query",
			Value: defaults.TopK,
		},
	}
}

func indexConfigFromFlags(c *cli.Context) chroma.Config {
	return chroma.Config{
		ChromaURL:  c.String("chroma-url"),
		Collection: c.String("collection"),
		LLMHost:    c.String("llm-host"),
		LLMModel:   c.String("llm-model"),
		TopK:       c.Int("top-k"),
	}
}

func syncCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	archive, err := convodex.OpenArchive(c.String("db"), convodex.WithIndexConfig(indexConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	src, err := discord.NewClient(c.String("token"))
	if err != nil {
		return fmt.Errorf("failed to create message source: %w", err)
	}

	walkerOpts := []syncer.WalkerOption{
		syncer.WithBatchSize(c.Int("batch-size")),
		syncer.WithDelay(c.Duration("delay")),
	}
	if host := c.String("ocr-host"); host != "" {
		extractor, err := vision.NewExtractor(vision.Config{
			Host:  host,
			Model: c.String("ocr-model"),
		})
		if err != nil {
			return fmt.Errorf("failed to create vision extractor: %w", err)
		}
		walkerOpts = append(walkerOpts, syncer.WithOCR(extractor, ocr.NewFetcher()))
	}

	orchestrator, err := archive.NewSyncOrchestrator(src, walkerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Guild: %s\n", c.String("guild"))
	fmt.Fprintf(os.Stderr, "Chroma: %s (%s)\n", c.String("chroma-url"), c.String("collection"))
	fmt.Fprintln(os.Stderr)

	summary, err := orchestrator.Run(ctx, c.String("guild"), c.Bool("full"))
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("Processed %d messages (%d new, %d errors)\n", summary.Processed, summary.New, summary.Errors)
	if len(summary.NewChannels) > 0 {
		fmt.Printf("New channels: %s\n", strings.Join(summary.NewChannels, ", "))
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	chunking := chunker.Config{
		TimeWindow:  c.Duration("time-window"),
		MaxMessages: c.Int("max-messages"),
		MinMessages: c.Int("min-messages"),
	}
	if chunking.MaxMessages <= 0 {
		return fmt.Errorf("max-messages must be greater than 0")
	}
	if chunking.MinMessages <= 0 {
		return fmt.Errorf("min-messages must be greater than 0")
	}

	archive, err := convodex.OpenArchive(c.String("db"), convodex.WithIndexConfig(indexConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	driver, err := archive.NewReindexDriver(reindex.WithProgress(os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to create reindex driver: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Chroma: %s (%s)\n", c.String("chroma-url"), c.String("collection"))
	fmt.Fprintln(os.Stderr)

	report, err := driver.Run(ctx, reindex.Params{
		Chunking: chunking,
		DryRun:   c.Bool("dry-run"),
	})
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	fmt.Printf("Built %d chunks from %d messages (%d indexed, %d errors)\n",
		report.Chunks, report.Messages, report.Indexed, report.Errors)
	return nil
}

func statusCommand(c *cli.Context) error {
	archive, err := convodex.OpenArchive(c.String("db"), convodex.WithIndexConfig(chroma.DefaultConfig()))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	return printStatus(context.Background(), archive, os.Stdout)
}

// printStatus reports the latest sync run and per-channel coverage.
// A fresh archive with no runs yet is a normal state, not an error.
func printStatus(ctx context.Context, archive *convodex.Archive, out io.Writer) error {
	run, err := archive.SyncRepository().LatestRun(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load latest run: %w", err)
	}
	if run == nil {
		fmt.Fprintln(out, "No sync runs recorded")
	} else {
		fmt.Fprintf(out, "Latest run: %s (%s, %s)\n", run.Id, run.Kind, run.State)
		fmt.Fprintf(out, "  Started:   %s\n", run.StartedAt.Format(time.RFC3339))
		if !run.CompletedAt.IsZero() {
			fmt.Fprintf(out, "  Completed: %s\n", run.CompletedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(out, "  Processed: %d messages, %d errors\n", run.ProcessedCount, run.ErrorCount)
		for _, msg := range run.ErrorMessages {
			fmt.Fprintf(out, "  Error: %s\n", msg)
		}
	}

	watermark, err := archive.SyncRepository().Watermark(ctx)
	if err != nil {
		return fmt.Errorf("failed to load watermark: %w", err)
	}
	if !watermark.IsZero() {
		fmt.Fprintf(out, "Watermark: %s\n", watermark.Format(time.RFC3339))
	}

	channels, err := archive.SyncRepository().SyncedChannels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load synced channels: %w", err)
	}
	counts, err := archive.MessageRepository().CountMessagesByChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to count messages: %w", err)
	}

	fmt.Fprintf(out, "Synced channels: %d\n", len(channels))
	for _, ch := range channels {
		fmt.Fprintf(out, "  %s (%s): %d messages, last synced %s\n",
			ch.DisplayName, ch.ChannelId, counts[ch.ChannelId], ch.LastSyncedAt.Format(time.RFC3339))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	archive, err := convodex.OpenArchive(c.String("db"), convodex.WithIndexConfig(indexConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	searcher, err := archive.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Close()

	results, err := searcher.Search(ctx, c.String("query"), nil, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		switch {
		case hit.Message != nil:
			fmt.Printf("%d: [%s] %s: %s\n", i+1, hit.Message.ChannelName, hit.Message.AuthorName, hit.Message.Body)
			if hit.Message.JumpURL != "" {
				fmt.Printf("   %s\n", hit.Message.JumpURL)
			}
		case hit.Chunk != nil:
			fmt.Printf("%d: conversation in #%s (%d messages, %s - %s)\n", i+1,
				hit.Chunk.ChannelName, len(hit.Chunk.MessageIds),
				hit.Chunk.StartTime.Format(time.RFC3339), hit.Chunk.EndTime.Format(time.RFC3339))
		}
		if hit.Reason != "" {
			fmt.Printf("   reason: %s\n", hit.Reason)
		}
		if hit.Highlight != "" {
			fmt.Printf("   highlight: %s\n", hit.Highlight)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
