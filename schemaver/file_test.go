package schemaver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schema_version.toml")
	f := NewCanonical(path)

	require.NoError(t, f.Write(Version{Major: 3, Minor: 1, Patch: 4}))

	got, found, err := f.Read()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Version{3, 1, 4}, got)
}

func TestStampCarriesDoNotEditMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated_version.toml")
	require.NoError(t, NewStamp(path).Write(Version{Major: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DO NOT EDIT")
	assert.Contains(t, string(data), "[schema_version]")
}

func TestReadMissingFile(t *testing.T) {
	f := NewStamp(filepath.Join(t.TempDir(), "absent.toml"))

	v, found, err := f.Read()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Version{}, v)

	mod, err := f.ModTime()
	require.NoError(t, err)
	assert.True(t, mod.IsZero())

	assert.NoError(t, f.Remove())
}

func TestReadMalformedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "schema_version = {"},
		{"missing table", "[other]\nmajor = 1\n"},
		{"missing axis", "[schema_version]\nmajor = 1\nminor = 0\n"},
		{"negative axis", "[schema_version]\nmajor = -1\nminor = 0\npatch = 0\n"},
		{"wrong type", "[schema_version]\nmajor = \"one\"\nminor = 0\npatch = 0\n"},
		{"unexpected key", "[schema_version]\nmajor = 1\nminor = 0\npatch = 0\nbuild = 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "schema_version.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, _, err := NewCanonical(path).Read()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrLoad), "got %v", err)
		})
	}
}

func TestReadHandEditedCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema_version.toml")
	content := "# bumped by hand for the 2.x protocol\n[schema_version]\nmajor = 2\nminor = 7\npatch = 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, found, err := NewCanonical(path).Read()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Version{2, 7, 0}, v)
}

func TestModTimeAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated_version.toml")
	f := NewStamp(path)
	require.NoError(t, f.Write(Version{Patch: 1}))

	stamp := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	mod, err := f.ModTime()
	require.NoError(t, err)
	assert.True(t, mod.Equal(stamp))

	require.NoError(t, f.Remove())
	_, found, err := f.Read()
	require.NoError(t, err)
	assert.False(t, found)
}
