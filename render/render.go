// Package render is the boundary between the generators and the template
// engine that turns their structured context into files.
//
// Generators only ever see the Renderer interface: a template identifier, an
// output path, and a flat key/value context in; the written path out. The
// TemplateRenderer in this package is a thin text/template adapter used by the
// CLI; tests substitute a recording fake.
package render

import (
	"fmt"

	"github.com/teranos/schemagen/errors"
)

// Context is the data handed to a template.
type Context map[string]any

// Renderer produces a file at outputPath from the template templateID and
// returns the written path.
type Renderer interface {
	Render(templateID, outputPath string, ctx Context) (string, error)
}

// RenderError wraps any failure to produce an artifact.
type RenderError struct {
	TemplateID string
	Path       string
	Err        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s -> %s: %v", e.TemplateID, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == errors.ErrRender }

// AsRenderError returns err unchanged when it already is (or wraps) a render
// error, otherwise wraps it as one for templateID and path.
func AsRenderError(templateID, path string, err error) error {
	if err == nil || errors.Is(err, errors.ErrRender) {
		return err
	}
	return &RenderError{TemplateID: templateID, Path: path, Err: err}
}
