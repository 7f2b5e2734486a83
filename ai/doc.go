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


// Package ai provides abstractions for the embedding services used by docvec.
//
// The package defines the Embedder interface that the ingestion pipeline
// depends on, following the dependency inversion principle so the pipeline
// never couples to a concrete model provider.
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/ollama: embeddings served by a local or remote Ollama instance
//   - ai/openai: embeddings served by OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public constructors (ollama.NewEmbedder, openai.NewEmbedder) return the
// ai.Embedder INTERFACE to enforce abstraction and prevent accidental
// coupling to a concrete provider.
//
//	embedder, err := ollama.NewEmbedder(config)  // returns ai.Embedder
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via function fields.
//
//	mockEmbed := mock.NewMockEmbedder()
//	mockEmbed.EmbedTextsFunc = func(...) { ... }
//	count := mockEmbed.CallCount()
package ai
