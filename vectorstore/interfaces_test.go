package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionForUseCase(t *testing.T) {
	tests := []struct {
		useCase string
		want    string
	}{
		{"technical", "rag_technical"},
		{"Technical Docs", "rag_technical_docs"},
		{"  Marketing  ", "rag_marketing"},
		{"", "rag_default"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CollectionForUseCase(tt.useCase), tt.useCase)
	}
}
