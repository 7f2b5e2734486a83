// Package loader parses uploaded files into text segments.
//
// Dispatch is a fixed table from declared MIME type to format handler
// covering PDF, plain text, markdown and JSON. Uploaded bytes are spooled
// to a temporary file for the duration of parsing and removed on all exit
// paths. A declared type with no handler yields a *TypeError; malformed
// content yields a *LoadError. Both are per-file conditions that must not
// abort the surrounding batch.
package loader
