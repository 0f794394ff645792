package pdftext

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"old mac", "a\rb", []string{"a", "b"}},
		{"blank kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestExtractText_NotAPDF(t *testing.T) {
	data := []byte("this is not a pdf document")
	_, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)

	var re *ReadError
	assert.True(t, errors.As(err, &re))
}

func TestExtractFile_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.txt")
	require.NoError(t, os.WriteFile(path, []byte("SNo Name Email\n1 a@b.com\n"), 0o644))

	doc, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, []string{"SNo Name Email", "1 a@b.com"}, doc.Lines())
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)

	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, re.Error(), "missing.pdf")
}

func TestExtractFile_CorruptPDFCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := ExtractFile(path)
	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, path, re.Path)
}

func TestExtractFiles_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		paths = append(paths, p)
	}

	docs, err := ExtractFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a.txt", docs[0].Text)
	assert.Equal(t, "c.txt", docs[2].Text)
}

func TestExtractFiles_FailureStops(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.txt")
	require.NoError(t, os.WriteFile(ok, []byte("x"), 0o644))

	_, err := ExtractFiles(context.Background(), []string{ok, filepath.Join(dir, "nope.txt")})
	assert.Error(t, err)
}
