// Command scry-extract prints the flashcards found in Markdown notes.
//
// Usage:
//
//	scry-extract [-config scry.yaml] [-workers n] [-tag t]... [-kind k]... [-format json|text] path...
//
// Each path is a note or a directory that is searched for notes.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/notes"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/phrazzld/scry-notes/internal/task"
)

const (
	exitOK       = 0
	exitFailures = 1
	exitUsage    = 2
)

// tagFlags collects repeated -tag values.
type tagFlags []string

func (t *tagFlags) String() string { return strings.Join(*t, ",") }

func (t *tagFlags) Set(v string) error {
	v = strings.TrimPrefix(strings.TrimSpace(v), "#")
	if v == "" {
		return errors.New("tag cannot be empty")
	}
	*t = append(*t, v)
	return nil
}

// kindFlags collects repeated -kind values.
type kindFlags []domain.CardKind

func (k *kindFlags) String() string {
	names := make([]string, len(*k))
	for i, kind := range *k {
		names[i] = kind.String()
	}
	return strings.Join(names, ",")
}

func (k *kindFlags) Set(v string) error {
	kind, err := domain.ParseCardKind(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*k = append(*k, kind)
	return nil
}

// keep drops the cards whose kind is not listed. An empty list keeps all.
func (k kindFlags) keep(cards []domain.Card) []domain.Card {
	if len(k) == 0 {
		return cards
	}
	kept := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if slices.Contains(k, c.Kind) {
			kept = append(kept, c)
		}
	}
	return kept
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scry-extract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "path to a scry.yaml config file")
		workers    = fs.Int("workers", 0, "number of notes processed concurrently (overrides config)")
		format     = fs.String("format", "text", "output format: json or text")
		tags       tagFlags
		kinds      kindFlags
	)
	fs.Var(&tags, "tag", "only extract from notes carrying this tag (repeatable)")
	fs.Var(&kinds, "kind", "only print cards of this kind, e.g. cloze (repeatable)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: scry-extract [flags] path...")
		fs.PrintDefaults()
		return exitUsage
	}
	if *format != "json" && *format != "text" {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return exitUsage
	}

	if *configPath == "" {
		*configPath = os.Getenv(config.ConfigFileEnv)
	}
	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitUsage
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	cfg.Batch.Tags = append(cfg.Batch.Tags, tags...)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return exitUsage
	}

	// Logs go to stderr so stdout carries only cards.
	log, err := logger.SetupWithWriter(cfg.Server, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to set up logger: %v\n", err)
		return exitUsage
	}

	status := exitOK
	var paths []string
	for _, root := range fs.Args() {
		found, err := notes.Walk(root)
		if err != nil {
			log.Error("failed to list notes", "root", root, "error", err)
			status = exitFailures
			continue
		}
		paths = append(paths, found...)
	}

	results, err := task.ExtractAll(ctx, paths, generation.NewMarkdownGenerator(log),
		cfg.Parser.Options(), cfg.Batch, log)
	if err != nil {
		log.Error("extraction interrupted", "error", err)
		status = exitFailures
	}

	for i, r := range results {
		results[i].Cards = kinds.keep(r.Cards)
		if r.Err != nil {
			log.Error("failed to extract note", "path", r.Path, "error", r.Err)
			status = exitFailures
		}
	}

	if err := write(stdout, *format, results); err != nil {
		log.Error("failed to write output", "error", err)
		return exitFailures
	}
	return status
}

type jsonResult struct {
	task.NoteResult
	Error string `json:"error,omitempty"`
}

func write(w io.Writer, format string, results []task.NoteResult) error {
	if format == "json" {
		out := make([]jsonResult, 0, len(results))
		for _, r := range results {
			jr := jsonResult{NoteResult: r}
			if r.Err != nil {
				jr.Error = r.Err.Error()
			}
			out = append(out, jr)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return writeText(w, results)
}

// writeText prints one block per note with 1-based line numbers.
func writeText(w io.Writer, results []task.NoteResult) error {
	for _, r := range results {
		if r.Skipped || r.Err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d cards)\n", r.Path, len(r.Cards)); err != nil {
			return err
		}
		for _, c := range r.Cards {
			text := strings.ReplaceAll(c.Text, "\n", "\n\t\t")
			if _, err := fmt.Fprintf(w, "\t%d\t%s\t%s\n", c.LineNumber+1, c.Kind, text); err != nil {
				return err
			}
		}
	}
	return nil
}
