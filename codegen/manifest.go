package codegen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/schemagen/errors"
)

// Manifest file names, relative to the output root.
const (
	FilesManifest   = "generated_files.txt"
	HeadersManifest = "generated_headers.txt"
)

// DefaultDelimiter separates paths inside a manifest.
const DefaultDelimiter = ";"

// headerPaths keeps the header artifacts of paths, in order.
func headerPaths(paths []string) []string {
	headers := make([]string, 0, len(paths))
	for _, p := range paths {
		if ArtifactKind(p) == KindHeader {
			headers = append(headers, p)
		}
	}
	return headers
}

// writeManifest writes paths joined by delimiter, without a trailing newline.
func writeManifest(path string, paths []string, delimiter string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create manifest directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(strings.Join(paths, delimiter)), 0o644); err != nil {
		return errors.Wrapf(err, "write manifest %s", path)
	}
	return nil
}

// ReadManifest returns the paths listed in a manifest file.
func ReadManifest(path, delimiter string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return strings.Split(string(data), delimiter), nil
}
