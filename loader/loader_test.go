package loader

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/poiesic/docvec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Text(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	file := &core.UploadedFile{
		Name:      "notes.txt",
		MediaType: core.MediaTypeText,
		Data:      []byte("hello world"),
	}

	segments, err := l.Load(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "hello world", segments[0].PageContent)
}

func TestLoader_Markdown(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	file := &core.UploadedFile{
		Name:      "readme.md",
		MediaType: core.MediaTypeMarkdown,
		Data:      []byte("# Title\n\nSome *markdown* text."),
	}

	segments, err := l.Load(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	// Markdown is ingested as raw source, not rendered.
	assert.Contains(t, segments[0].PageContent, "# Title")
}

func TestLoader_JSON(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	file := &core.UploadedFile{
		Name:      "data.json",
		MediaType: core.MediaTypeJSON,
		Data:      []byte(`{"b": "second", "a": "first", "n": 42, "nested": {"c": ["third"]}}`),
	}

	segments, err := l.Load(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	// Keys visited in sorted order; only string leaves extracted.
	assert.Equal(t, "first\nsecond\nthird", segments[0].PageContent)
}

func TestLoader_JSONMalformed(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	file := &core.UploadedFile{
		Name:      "broken.json",
		MediaType: core.MediaTypeJSON,
		Data:      []byte(`{"unterminated": `),
	}

	_, err := l.Load(context.Background(), file)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken.json", loadErr.Filename)
}

func TestLoader_JSONNoText(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	file := &core.UploadedFile{
		Name:      "numbers.json",
		MediaType: core.MediaTypeJSON,
		Data:      []byte(`{"a": 1, "b": [2, 3]}`),
	}

	_, err := l.Load(context.Background(), file)
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestLoader_UnsupportedType(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	file := &core.UploadedFile{
		Name:      "archive.zip",
		MediaType: "application/zip",
		Data:      []byte{0x50, 0x4b},
	}

	_, err := l.Load(context.Background(), file)
	require.ErrorIs(t, err, ErrUnsupportedType)

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, core.MediaType("application/zip"), typeErr.MediaType)
}

func TestLoader_Supported(t *testing.T) {
	l := New()

	assert.True(t, l.Supported(core.MediaTypePDF))
	assert.True(t, l.Supported(core.MediaTypeText))
	assert.True(t, l.Supported(core.MediaTypeMarkdown))
	assert.True(t, l.Supported(core.MediaTypeJSON))
	assert.False(t, l.Supported("application/zip"))
}

func TestLoader_TempFileCleanup(t *testing.T) {
	dir := t.TempDir()
	l := New(WithTempDir(dir))

	ok := &core.UploadedFile{Name: "a.txt", MediaType: core.MediaTypeText, Data: []byte("content")}
	_, err := l.Load(context.Background(), ok)
	require.NoError(t, err)

	// Cleanup also runs when the handler fails.
	bad := &core.UploadedFile{Name: "b.json", MediaType: core.MediaTypeJSON, Data: []byte("{")}
	_, err = l.Load(context.Background(), bad)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be removed on all exit paths")
}

func TestLoader_InvalidUpload(t *testing.T) {
	l := New(WithTempDir(t.TempDir()))

	_, err := l.Load(context.Background(), &core.UploadedFile{Name: "empty.txt", MediaType: core.MediaTypeText})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEmptyFile))
}

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		path string
		want core.MediaType
	}{
		{"doc.pdf", core.MediaTypePDF},
		{"doc.PDF", core.MediaTypePDF},
		{"notes.txt", core.MediaTypeText},
		{"readme.md", core.MediaTypeMarkdown},
		{"readme.markdown", core.MediaTypeMarkdown},
		{"data.json", core.MediaTypeJSON},
		{"archive.zip", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectMediaType(tt.path), tt.path)
	}
}
