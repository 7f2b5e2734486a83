package badger

import (
	"fmt"

	"github.com/poiesic/docvec/core"
)

// Key prefixes for different data types
const (
	ingestionRecordPrefix = "ingrec"
)

// makeLedgerKey generates a key for an ingestion record.
// Format: prefix:collection:fingerprint — the pair the duplicate filter
// looks up, so Seen is a single point read.
func makeLedgerKey(collection string, fp core.Fingerprint) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", ingestionRecordPrefix, collection, fp))
}

// ledgerScanPrefix generates the prefix for iterating all ingestion records.
func ledgerScanPrefix() []byte {
	return []byte(ingestionRecordPrefix + ":")
}
