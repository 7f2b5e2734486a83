package loader

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/poiesic/docvec/core"
	"github.com/tmc/langchaingo/schema"
)

// loadJSON extracts the string values of a JSON document as a single text
// segment. Object keys are visited in sorted order so extraction is
// deterministic regardless of map iteration.
func (l *Loader) loadJSON(ctx context.Context, path string, file *core.UploadedFile) ([]schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	var texts []string
	collectStrings(root, &texts)
	if len(texts) == 0 {
		return nil, ErrEmptyDocument
	}

	content := strings.Join(texts, "\n")
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDocument
	}

	l.logger.Debug("loaded json", "filename", file.Name, "strings", len(texts))
	return []schema.Document{{PageContent: content, Metadata: map[string]any{}}}, nil
}

// collectStrings appends every string leaf of a decoded JSON value in
// document order (sorted keys for objects).
func collectStrings(value any, out *[]string) {
	switch v := value.(type) {
	case string:
		*out = append(*out, v)
	case []any:
		for _, item := range v {
			collectStrings(item, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectStrings(v[k], out)
		}
	}
}
