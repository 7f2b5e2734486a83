// Package chunker splits extracted document text into overlapping
// fixed-size windows suitable for embedding.
package chunker
