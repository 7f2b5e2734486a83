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


// Package storage provides the ingestion ledger abstraction for docvec.
//
// The ledger is the duplicate filter's source of truth: a durable mapping
// from (collection, content fingerprint) to the record of a completed
// ingestion. The interface lives here; implementations live in
// sub-packages so backends can be swapped:
//
//   - storage/badger: durable BadgerDB ledger for cross-session dedup
//   - storage/mem: in-memory ledger for batch-local dedup and tests
//
// Constructors return the IngestionLedger interface to prevent accidental
// coupling to a concrete backend.
//
// All methods accept context.Context and are safe for concurrent use.
package storage
