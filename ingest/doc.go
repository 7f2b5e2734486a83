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

// Package ingest orchestrates document ingestion batches.
//
// A Pipeline takes uploaded files through fingerprinting, duplicate
// detection, loading, chunking, embedding, and vector store upsert, one
// file at a time. Per-file failures are recorded and the batch continues;
// an embedding service failure halts the batch because every remaining
// file would hit the same outage.
package ingest
