package config

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/teranos/schemagen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Paths.DefinitionsRoot == "" {
		return errors.New("paths.definitions_root cannot be empty")
	}
	if c.Paths.OutputRoot == "" {
		return errors.New("paths.output_root cannot be empty")
	}
	if c.Paths.CanonicalVersion == "" {
		return errors.New("paths.canonical_version cannot be empty")
	}
	if c.Paths.GeneratedStamp == "" {
		return errors.New("paths.generated_stamp cannot be empty")
	}
	if c.CanonicalVersionPath() == c.GeneratedStampPath() {
		return errors.New("paths.canonical_version and paths.generated_stamp must be different files")
	}

	defs, err := filepath.Abs(c.Paths.DefinitionsRoot)
	if err != nil {
		return errors.Wrap(err, "resolve paths.definitions_root")
	}
	out, err := filepath.Abs(c.Paths.OutputRoot)
	if err != nil {
		return errors.Wrap(err, "resolve paths.output_root")
	}
	if defs == out {
		return errors.Newf("paths.output_root and paths.definitions_root are the same directory (%s)", out)
	}
	// Regeneration deletes the output tree
	if within(out, defs) {
		return errors.WithHint(
			errors.Newf("paths.output_root %s contains paths.definitions_root %s", out, defs),
			"clearing the output tree would delete the definitions",
		)
	}
	for _, p := range []string{c.CanonicalVersionPath(), c.GeneratedStampPath()} {
		abs, err := filepath.Abs(p)
		if err == nil && within(out, abs) {
			return errors.Newf("version file %s must not live inside paths.output_root", p)
		}
	}

	if c.Generator.LibraryName == "" {
		return errors.New("generator.library_name cannot be empty")
	}
	if c.Generator.EnumsFile == "" || c.Generator.MessagesFile == "" {
		return errors.New("generator.enums_file and generator.messages_file cannot be empty")
	}
	if utf8.RuneCountInString(c.Generator.ManifestDelimiter) != 1 {
		return errors.Newf("generator.manifest_delimiter must be exactly one character, got %q", c.Generator.ManifestDelimiter)
	}

	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path cannot be empty when history is enabled")
	}

	// 0 = regenerate on every event
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
