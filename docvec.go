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

// Package docvec wires configuration into a ready-to-run document
// ingestion service: embedder, vector store, dedup ledger and pipeline.
package docvec

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/docvec/ai"
	"github.com/poiesic/docvec/ai/ollama"
	aiopenai "github.com/poiesic/docvec/ai/openai"
	"github.com/poiesic/docvec/config"
	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/ingest"
	"github.com/poiesic/docvec/storage"
	"github.com/poiesic/docvec/storage/badger"
	"github.com/poiesic/docvec/storage/mem"
	"github.com/poiesic/docvec/vectorstore"
	"github.com/poiesic/docvec/vectorstore/astra"
	"github.com/poiesic/docvec/vectorstore/memory"
)

// Service owns the components of one ingestion setup and closes them
// together.
type Service struct {
	embedder ai.Embedder
	store    vectorstore.Store
	ledger   storage.IngestionLedger
	backend  *badger.Backend
	pipeline *ingest.Pipeline
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	progress io.Writer
	embedder ai.Embedder
	store    vectorstore.Store
}

// WithProgress directs per-file progress output to w.
func WithProgress(w io.Writer) ServiceOption {
	return func(o *serviceOptions) {
		o.progress = w
	}
}

// WithEmbedder overrides the configured embedding provider.
func WithEmbedder(e ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = e
	}
}

// WithStore overrides the configured vector store.
func WithStore(s vectorstore.Store) ServiceOption {
	return func(o *serviceOptions) {
		o.store = s
	}
}

// NewService builds a Service from configuration.
func NewService(cfg *config.Config, opts ...ServiceOption) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = newEmbedder(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
	}

	store := options.store
	if store == nil {
		var err error
		store, err = newStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating vector store: %w", err)
		}
	}

	ledger, backend, err := newLedger(cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("opening ingestion ledger: %w", err)
	}

	pipelineOpts := []ingest.Option{
		ingest.WithChunking(cfg.Chunking.Size, cfg.Chunking.Overlap),
	}
	if options.progress != nil {
		pipelineOpts = append(pipelineOpts, ingest.WithProgress(options.progress))
	}

	pipeline, err := ingest.NewPipeline(embedder, store, ledger, pipelineOpts...)
	if err != nil {
		ledger.Close()
		if backend != nil {
			backend.Close()
		}
		store.Close()
		return nil, err
	}

	return &Service{
		embedder: embedder,
		store:    store,
		ledger:   ledger,
		backend:  backend,
		pipeline: pipeline,
		logger:   slog.Default(),
	}, nil
}

func newEmbedder(cfg *config.Config) (ai.Embedder, error) {
	aiConfig := ai.NewConfig(
		ai.WithProvider(cfg.Embedder.Provider),
		ai.WithHost(cfg.Embedder.Host),
		ai.WithModel(cfg.Embedder.Model),
	)
	if cfg.Embedder.APIKey != "" {
		ai.WithAPIKey(cfg.Embedder.APIKey)(aiConfig)
	}

	switch aiConfig.Provider {
	case ai.ProviderOpenAI:
		return aiopenai.NewEmbedder(aiConfig)
	default:
		return ollama.NewEmbedder(aiConfig)
	}
}

func newStore(cfg *config.Config) (vectorstore.Store, error) {
	switch cfg.Store.Type {
	case config.StoreTypeMemory:
		return memory.NewStore(), nil
	default:
		return astra.New(astra.Config{
			Endpoint:  cfg.Store.Astra.Endpoint,
			Token:     cfg.Store.Astra.Token,
			Namespace: cfg.Store.Astra.Namespace,
			Timeout:   cfg.AstraTimeout(),
		})
	}
}

func newLedger(cfg *config.Config) (storage.IngestionLedger, *badger.Backend, error) {
	if cfg.Dedupe.Scope == config.DedupeScopeBatch {
		return mem.NewLedger(), nil, nil
	}

	backend, err := badger.OpenBackend(cfg.Dedupe.Path, false)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := badger.NewLedger(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return ledger, backend, nil
}

// Ingest runs one ingestion batch into the collection derived from useCase.
func (s *Service) Ingest(ctx context.Context, files []core.UploadedFile, useCase string) (*core.BatchReport, error) {
	collection := vectorstore.CollectionForUseCase(useCase)
	return s.pipeline.Run(ctx, files, collection)
}

// History lists previously recorded ingestions, oldest first.
func (s *Service) History(ctx context.Context) ([]*core.IngestionRecord, error) {
	return s.ledger.List(ctx)
}

// Close releases the ledger, its backing database and the vector store.
func (s *Service) Close() error {
	var firstErr error
	if err := s.ledger.Close(); err != nil {
		s.logger.Error("error closing ledger", "err", err)
		firstErr = err
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing ledger backend", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing vector store", "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
