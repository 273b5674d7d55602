package testing

import (
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/render"
)

// RenderCall is one invocation seen by a Recorder.
type RenderCall struct {
	TemplateID string
	Path       string
	Context    render.Context
}

// Recorder is a render.Renderer that records every call and writes nothing.
type Recorder struct {
	Calls []RenderCall

	// FailPaths maps an output path to the error Render returns for it
	FailPaths map[string]error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{FailPaths: make(map[string]error)}
}

// FailOn makes Render fail for path.
func (r *Recorder) FailOn(path string, err error) {
	if err == nil {
		err = errors.New("injected render failure")
	}
	r.FailPaths[path] = err
}

func (r *Recorder) Render(templateID, outputPath string, ctx render.Context) (string, error) {
	r.Calls = append(r.Calls, RenderCall{TemplateID: templateID, Path: outputPath, Context: ctx})
	if err, ok := r.FailPaths[outputPath]; ok {
		return "", &render.RenderError{TemplateID: templateID, Path: outputPath, Err: err}
	}
	return outputPath, nil
}

// Paths returns the output paths in call order.
func (r *Recorder) Paths() []string {
	paths := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		paths[i] = c.Path
	}
	return paths
}

// Call returns the recorded call for path, if any.
func (r *Recorder) Call(path string) (RenderCall, bool) {
	for _, c := range r.Calls {
		if c.Path == path {
			return c, true
		}
	}
	return RenderCall{}, false
}

// Reset forgets recorded calls but keeps injected failures.
func (r *Recorder) Reset() {
	r.Calls = nil
}
