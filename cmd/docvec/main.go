// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
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
	"path/filepath"
	"strings"

	"github.com/poiesic/docvec"
	"github.com/poiesic/docvec/config"
	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/ingest"
	"github.com/poiesic/docvec/loader"
	"github.com/poiesic/docvec/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docvec",
		Usage: "Ingest documents into a vector database for retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   "docvec.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Embed and store documents in the use case's collection",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "use-case",
						Aliases: []string{"u"},
						Usage:   "Use case name; selects the target collection",
						Value:   "default",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List previously ingested documents",
				Action: historyCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one file argument is required")
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	files, err := readFiles(c.Args().Slice())
	if err != nil {
		return err
	}

	svc, err := docvec.NewService(cfg, docvec.WithProgress(os.Stderr))
	if err != nil {
		return err
	}
	defer svc.Close()

	report, runErr := svc.Ingest(ctx, files, c.String("use-case"))
	if report != nil {
		if err := ingest.WriteReport(os.Stdout, report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("ingestion halted: %w", runErr)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if cfg.Dedupe.Scope != config.DedupeScopeGlobal {
		return fmt.Errorf("history requires dedupe.scope: global")
	}

	// Listing only touches the local ledger; no vector store credentials
	// are needed.
	backend, err := badger.OpenBackend(cfg.Dedupe.Path, false)
	if err != nil {
		return fmt.Errorf("opening ledger database: %w", err)
	}
	defer backend.Close()

	ledger, err := badger.NewLedger(backend)
	if err != nil {
		return err
	}
	defer ledger.Close()

	records, err := ledger.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no ingested documents")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s  %-30s  %-12s  %d chunks  %s\n",
			r.IngestedAt.Format("2006-01-02 15:04"),
			r.Filename, r.Collection, r.Chunks, r.Fingerprint)
	}
	return nil
}

// readFiles loads path arguments into uploads, inferring the media type
// from each file's extension. Unknown extensions get a generic type so
// the pipeline reports them as unsupported instead of dropping them here.
func readFiles(paths []string) ([]core.UploadedFile, error) {
	files := make([]core.UploadedFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		mediaType := loader.DetectMediaType(path)
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		files = append(files, core.UploadedFile{
			Name:      filepath.Base(path),
			MediaType: mediaType,
			Data:      data,
		})
	}
	return files, nil
}

func setupLogger(c *cli.Context) error {
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
