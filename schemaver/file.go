package schemaver

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/teranos/schemagen/errors"
)

const (
	canonicalHeader = "# Canonical schema version of the definitions in this directory.\n" +
		"# Bumped automatically when definitions change; may be edited by hand.\n"
	stampHeader = "# Machine-written by schemagen. DO NOT EDIT.\n" +
		"# Records the schema version baked into the last successful regeneration.\n"
)

// document is the on-disk shape of a version file.
type document struct {
	SchemaVersion Version `toml:"schema_version"`
}

// File is a version file on disk.
type File struct {
	Path   string
	header string
}

// NewCanonical returns the hand-editable canonical version file at path.
func NewCanonical(path string) *File {
	return &File{Path: path, header: canonicalHeader}
}

// NewStamp returns the machine-written generated-stamp file at path.
func NewStamp(path string) *File {
	return &File{Path: path, header: stampHeader}
}

// Read returns the stored version. found is false when the file does not
// exist; an unreadable or malformed file wraps errors.ErrLoad.
func (f *File) Read() (v Version, found bool, err error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return Version{}, false, nil
	}
	if err != nil {
		return Version{}, false, errors.Mark(errors.Wrapf(err, "read version file %s", f.Path), errors.ErrLoad)
	}

	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return Version{}, false, errors.Mark(errors.Wrapf(err, "parse version file %s", f.Path), errors.ErrLoad)
	}
	for _, key := range []string{"major", "minor", "patch"} {
		if !md.IsDefined("schema_version", key) {
			return Version{}, false, errors.Mark(
				errors.Newf("version file %s: schema_version.%s is missing", f.Path, key),
				errors.ErrLoad,
			)
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Version{}, false, errors.Mark(
			errors.Newf("version file %s: unexpected key %s", f.Path, undecoded[0].String()),
			errors.ErrLoad,
		)
	}

	return doc.SchemaVersion, true, nil
}

// Write persists v, creating parent directories as needed.
func (f *File) Write(v Version) error {
	body, err := gotoml.Marshal(document{SchemaVersion: v})
	if err != nil {
		return errors.Wrapf(err, "encode version file %s", f.Path)
	}

	var buf bytes.Buffer
	buf.WriteString(f.header)
	buf.WriteString("\n")
	buf.Write(body)

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", f.Path)
	}
	if err := os.WriteFile(f.Path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write version file %s", f.Path)
	}
	return nil
}

// ModTime returns the file's modification time, or the zero time when the
// file does not exist.
func (f *File) ModTime() (time.Time, error) {
	info, err := os.Stat(f.Path)
	if os.IsNotExist(err) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "stat version file %s", f.Path)
	}
	return info.ModTime(), nil
}

// Remove deletes the file. A missing file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove version file %s", f.Path)
	}
	return nil
}
