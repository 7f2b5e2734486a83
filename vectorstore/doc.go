// Package vectorstore defines the vector database abstraction used by the
// ingestion pipeline.
//
// Two implementations are provided: vectorstore/astra talks to the Astra DB
// Data API over HTTP, and vectorstore/memory keeps records in process for
// tests. Constructors return the Store interface to keep callers decoupled
// from any one backend.
package vectorstore
