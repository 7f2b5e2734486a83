// Package mock provides test doubles for the ai package interfaces.
//
// The mocks generate deterministic embeddings derived from the input text,
// so tests get stable vectors without a running model service. Behavior can
// be overridden per-test through function fields.
package mock
