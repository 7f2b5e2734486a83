// Package astra is a minimal HTTP client for the Astra DB Data API.
package astra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/vectorstore"
)

const defaultNamespace = "default_keyspace"

// Config contains connection details for an Astra DB database.
type Config struct {
	// Endpoint is the database API endpoint, e.g.
	// "https://<db-id>-<region>.apps.astra.datastax.com".
	Endpoint string
	// Token is the application token ("AstraCS:...").
	Token string
	// Namespace is the keyspace holding the collections.
	// Defaults to "default_keyspace".
	Namespace string
	// Timeout bounds each API request. Defaults to 30s.
	Timeout time.Duration
}

// Client implements vectorstore.Store against the Astra DB Data API.
type Client struct {
	endpoint  string
	token     string
	namespace string
	client    *http.Client
	logger    *slog.Logger
}

var _ vectorstore.Store = (*Client)(nil)

// New creates a Data API client.
//
// Returns vectorstore.Store to enforce abstraction.
func New(cfg Config) (vectorstore.Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("astra: endpoint required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("astra: token required")
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		token:     cfg.Token,
		namespace: namespace,
		client:    &http.Client{Timeout: timeout},
		logger:    slog.Default().With("component", "astra"),
	}, nil
}

// apiResponse is the Data API response envelope.
type apiResponse struct {
	Status map[string]json.RawMessage `json:"status"`
	Errors []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	} `json:"errors"`
}

// EnsureCollection creates the collection with cosine vector search enabled.
// An existing collection with the same options is not an error.
func (c *Client) EnsureCollection(ctx context.Context, collection string, dimension int) error {
	if collection == "" {
		return vectorstore.ErrCollectionRequired
	}
	if dimension <= 0 {
		return vectorstore.ErrInvalidDimension
	}

	cmd := map[string]any{
		"createCollection": map[string]any{
			"name": collection,
			"options": map[string]any{
				"vector": map[string]any{
					"dimension": dimension,
					"metric":    "cosine",
				},
			},
		},
	}

	resp, err := c.post(ctx, c.namespaceURL(), cmd)
	if err != nil {
		return err
	}
	for _, apiErr := range resp.Errors {
		if apiErr.ErrorCode == "EXISTING_COLLECTION_DIFFERENT_SETTINGS" {
			return fmt.Errorf("astra: collection %s exists with different settings: %s", collection, apiErr.Message)
		}
		if !strings.Contains(strings.ToLower(apiErr.Message), "already exist") {
			return fmt.Errorf("astra: createCollection %s: %s", collection, apiErr.Message)
		}
	}

	c.logger.Debug("collection ready", "collection", collection, "dimension", dimension)
	return nil
}

// Upsert writes records one at a time with findOneAndReplace(upsert), so
// re-ingesting the same content replaces rather than duplicates. Returns
// the number of records written before any failure.
func (c *Client) Upsert(ctx context.Context, collection string, records []*core.Record) (int, error) {
	if collection == "" {
		return 0, vectorstore.ErrCollectionRequired
	}

	url := c.collectionURL(collection)
	written := 0
	for _, record := range records {
		doc := map[string]any{
			"_id":     record.ID,
			"content": record.Text,
			"$vector": record.Vector,
		}
		for k, v := range record.Metadata {
			doc[k] = v
		}

		cmd := map[string]any{
			"findOneAndReplace": map[string]any{
				"filter":      map[string]any{"_id": record.ID},
				"replacement": doc,
				"options":     map[string]any{"upsert": true},
			},
		}

		resp, err := c.post(ctx, url, cmd)
		if err != nil {
			return written, fmt.Errorf("%w: %w", vectorstore.ErrWriteFailed, err)
		}
		if len(resp.Errors) > 0 {
			return written, fmt.Errorf("%w: %s", vectorstore.ErrWriteFailed, resp.Errors[0].Message)
		}
		written++
	}

	c.logger.Debug("upserted records", "collection", collection, "count", written)
	return written, nil
}

// Close releases resources. The HTTP client has none to release.
func (c *Client) Close() error {
	return nil
}

func (c *Client) namespaceURL() string {
	return fmt.Sprintf("%s/api/json/v1/%s", c.endpoint, c.namespace)
}

func (c *Client) collectionURL(collection string) string {
	return fmt.Sprintf("%s/api/json/v1/%s/%s", c.endpoint, c.namespace, collection)
}

// post sends one Data API command. Failed commands are not retried; a
// write failure surfaces as a per-file error and the caller decides what
// to do with the batch.
func (c *Client) post(ctx context.Context, url string, body any) (*apiResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("astra: POST %s: %s", url, resp.Status)
	}

	var out apiResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("astra: decoding response: %w", err)
	}
	return &out, nil
}
