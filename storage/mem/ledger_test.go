package mem

import (
	"context"
	"testing"

	"github.com/poiesic/docvec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_BatchLocalScope(t *testing.T) {
	ctx := context.Background()
	fp := core.FingerprintBytes([]byte("file bytes"))

	ledger := NewLedger()
	seen, err := ledger.Seen(ctx, fp, "rag_default")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, ledger.Record(ctx, &core.IngestionRecord{
		Fingerprint: fp,
		Filename:    "a.txt",
		MediaType:   core.MediaTypeText,
		Collection:  "rag_default",
		Chunks:      1,
	}))

	seen, err = ledger.Seen(ctx, fp, "rag_default")
	require.NoError(t, err)
	assert.True(t, seen)

	// A fresh ledger forgets everything: batch-local scope.
	fresh := NewLedger()
	seen, err = fresh.Seen(ctx, fp, "rag_default")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestLedger_List(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()

	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, ledger.Record(ctx, &core.IngestionRecord{
			Fingerprint: core.FingerprintBytes([]byte(name)),
			Filename:    name,
			MediaType:   core.MediaTypeText,
			Collection:  "rag_default",
			Chunks:      1,
		}))
	}

	records, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
