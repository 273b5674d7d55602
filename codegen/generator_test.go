package codegen

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
	gentest "github.com/teranos/schemagen/internal/testing"
)

func TestModTimeVote(t *testing.T) {
	dir := t.TempDir()
	path := gentest.WriteFile(t, dir, "enums.yaml", "Color: {}\n")
	modified := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	gentest.SetModTime(t, path, modified)

	vote, err := ModTimeVote(path, modified.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, vote.Major)
	assert.False(t, vote.Minor || vote.Patch)

	vote, err = ModTimeVote(path, modified)
	require.NoError(t, err)
	assert.False(t, vote.Any(), "same mtime is not newer")

	vote, err = ModTimeVote(path, time.Time{})
	require.NoError(t, err)
	assert.True(t, vote.Major, "zero time means no canonical file yet")

	_, err = ModTimeVote(filepath.Join(dir, "missing.yaml"), time.Time{})
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
}

func TestArtifactPaths(t *testing.T) {
	assert.Equal(t,
		filepath.Join("out", "include", "ripple", "enums", "GColorEnum.h"),
		HeaderPath("out", "ripple", "enums", "Color", "Enum"))
	assert.Equal(t,
		filepath.Join("out", "src", "ripple", "messages", "GPingMessage.cpp"),
		SourcePath("out", "ripple", "messages", "Ping", "Message"))

	assert.Equal(t, KindHeader, ArtifactKind("a/GColorEnum.h"))
	assert.Equal(t, KindHeader, ArtifactKind("a/legacy.HPP"))
	assert.Equal(t, KindSource, ArtifactKind("a/GColorEnum.cpp"))
}

func TestHeaderPaths(t *testing.T) {
	assert.Equal(t, []string{"a.h", "c.hpp"}, headerPaths([]string{"a.h", "b.cpp", "c.hpp"}))
	assert.Empty(t, headerPaths(nil))
}
