package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/convodex/convodex"
	"github.com/convodex/convodex/chunker"
	indexmock "github.com/convodex/convodex/index/mock"
	"github.com/convodex/convodex/reindex"
	"github.com/convodex/convodex/source"
	sourcemock "github.com/convodex/convodex/source/mock"
	"github.com/convodex/convodex/syncer"
)

var sentences = []string{
	"anyone seen the staging deploy finish?",
	"still waiting on the migration job",
	"ok it just went green",
	"nice, I'll kick off the smoke tests",
	"smoke tests passed, shipping to prod",
	"the new cache layer cut p99 by 40ms",
	"who owns the billing reconciliation cron?",
	"that's mine, what's up?",
	"it double-charged a test account last night",
	"filing a ticket, I'll look after standup",
	"lunch orders close in ten minutes",
	"the burrito place again?",
	"outvoted, it's the burrito place again",
	"heads up: rotating the API keys at 3pm",
	"which services need a restart after that?",
	"just the gateway and the webhook workers",
	"restart done, everything reconnected",
	"does anyone have the link to the oncall runbook?",
	"pinned it in this channel last week",
	"found it, thanks",
	"the load test is saturating the event bus",
	"expected, we're running at 3x normal traffic",
	"backing it off to 2x",
	"retro moved to thursday, same room",
	"can we get the whiteboard room instead?",
	"booked it",
	"merging the schema change once CI is green",
	"remember to bump the client library after",
	"bumped and tagged v2.4.0",
	"prod alert: disk usage at 85% on the archive node",
	"compaction is running, should drop below 70% in an hour",
	"confirmed, back down to 64%",
	"the demo went well, they want a pilot in november",
	"great, I'll draft the scoping doc",
	"doc shared, comments welcome until friday",
	"turning on the new ranking model for 5% of traffic",
	"click-through is up 2% on the holdout",
	"expanding to 25% tomorrow",
	"who broke the lint job?",
	"that was me, fix incoming",
	"fixed, sorry about that",
	"quiet friday, going heads-down on the walker refactor",
}

var channels = []string{"general", "engineering", "incidents"}

var authors = []string{"alice", "bob", "carol", "dave"}

var (
	dbPath       = flag.String("db", "./archive_db", "path to the archive database")
	seedFileName = flag.String("src", "", "file of seed messages, one per line")
	gapEvery     = flag.Int("gap-every", 8, "insert a conversation gap every N messages")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// buildSource distributes the seed lines round-robin across synthetic
// channels, spacing timestamps so that every gap-every-th message in a
// channel opens a fresh conversation.
func buildSource(lines iter.Seq[string], start time.Time) *sourcemock.MockSource {
	src := sourcemock.NewMockSource()
	for i, name := range channels {
		src.AddChannel(source.Channel{
			Id:   fmt.Sprintf("seed-ch-%d", i),
			Name: name,
		})
	}

	clock := make([]time.Time, len(channels))
	count := make([]int, len(channels))
	for i := range clock {
		clock[i] = start
	}

	i := 0
	for line := range lines {
		ch := i % len(channels)
		clock[ch] = clock[ch].Add(2 * time.Minute)
		if *gapEvery > 0 && count[ch] > 0 && count[ch]%*gapEvery == 0 {
			clock[ch] = clock[ch].Add(2 * time.Hour)
		}
		src.AddMessages(fmt.Sprintf("seed-ch-%d", ch), source.RawMessage{
			Id:         fmt.Sprintf("seed-%06d", i),
			AuthorId:   fmt.Sprintf("u%d", i%len(authors)),
			AuthorName: authors[i%len(authors)],
			Body:       line,
			Timestamp:  clock[ch],
		})
		count[ch]++
		i++
	}
	return src
}

func main() {
	archive, err := convodex.OpenArchive(*dbPath, convodex.WithIndexStore(indexmock.NewMockStore()))
	if err != nil {
		panic(err)
	}
	defer archive.Close()

	// Determine source of seed data
	var lines iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		lines, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		lines = linesFromSlice(sentences)
	}

	src := buildSource(lines, time.Now().UTC().Add(-24*time.Hour))

	orchestrator, err := archive.NewSyncOrchestrator(src, syncer.WithDelay(0))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	summary, err := orchestrator.Run(ctx, "seed-guild", true)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded archive", "processed", summary.Processed, "new", summary.New)

	// Preview the chunks the default parameters would build
	driver, err := archive.NewReindexDriver(reindex.WithProgress(os.Stdout))
	if err != nil {
		panic(err)
	}
	if _, err := driver.Run(ctx, reindex.Params{Chunking: chunker.DefaultConfig(), DryRun: true}); err != nil {
		panic(err)
	}
}
