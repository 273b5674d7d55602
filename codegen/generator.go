// Package codegen drives schema-driven code generation.
//
// A Generator owns one definitions catalog and turns each entity into one or
// more artifacts through a render.Renderer. The Aggregator holds the ordered
// set of generators, decides whether the output tree is stale by comparing the
// canonical schema version with the stamp of the last successful run, and
// rebuilds the whole tree when it is.
//
// Regeneration is all-or-nothing: a failing generator aborts the run before
// the manifests and the stamp are written, so the next run sees the tree as
// stale again and starts from scratch.
package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/render"
	"github.com/teranos/schemagen/schemaver"
)

// Generator is one kind of code generator.
type Generator interface {
	// Name identifies the generator; it must be unique within an Aggregator.
	Name() string

	// Initialize loads and checks the generator's catalog from definitionsRoot.
	// Artifacts are later written below outputRoot through r.
	Initialize(outputRoot, definitionsRoot string, r render.Renderer) error

	// RequestedVersionBump is the generator's own staleness vote. since is the
	// modification time of the canonical version file. A generator whose
	// inputs did not change must not request a bump.
	RequestedVersionBump(since time.Time) (schemaver.Bump, error)

	// Generate renders every artifact and returns their paths in a stable order.
	// Calling it twice on unchanged inputs produces byte-identical files.
	Generate() ([]string, error)
}

// ModTimeVote requests a major bump when the file at path was modified after since.
func ModTimeVote(path string, since time.Time) (schemaver.Bump, error) {
	info, err := os.Stat(path)
	if err != nil {
		return schemaver.Bump{}, errors.Mark(errors.Wrapf(err, "stat %s", path), errors.ErrLoad)
	}
	return schemaver.Bump{Major: info.ModTime().After(since)}, nil
}

// Artifact kinds.
const (
	KindHeader = "header"
	KindSource = "source"
)

// HeaderPath returns <outputRoot>/include/<library>/<group>/G<name><suffix>.h.
func HeaderPath(outputRoot, library, group, name, suffix string) string {
	return filepath.Join(outputRoot, "include", library, group, "G"+name+suffix+".h")
}

// SourcePath returns <outputRoot>/src/<library>/<group>/G<name><suffix>.cpp.
func SourcePath(outputRoot, library, group, name, suffix string) string {
	return filepath.Join(outputRoot, "src", library, group, "G"+name+suffix+".cpp")
}

// ArtifactKind classifies a generated path by its extension.
func ArtifactKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h", ".hpp":
		return KindHeader
	default:
		return KindSource
	}
}
