package render

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
)

//go:embed templates
var embedded embed.FS

// DefaultTemplates returns the built-in C++ templates.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// The embedded tree is fixed at build time
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"join":      strings.Join,
	"snake":     toSnakeCase,
	"pascal":    toPascalCase,
	"screaming": toScreamingCase,
}

// TemplateRenderer renders text/template files from a file system.
// It is not safe for concurrent use.
type TemplateRenderer struct {
	templates fs.FS
	cache     map[string]*template.Template
	logger    *zap.SugaredLogger
}

// NewTemplateRenderer returns a renderer reading templates from fsys.
// A nil fsys uses DefaultTemplates.
func NewTemplateRenderer(fsys fs.FS, log *zap.SugaredLogger) *TemplateRenderer {
	if fsys == nil {
		fsys = DefaultTemplates()
	}
	return &TemplateRenderer{
		templates: fsys,
		cache:     make(map[string]*template.Template),
		logger:    logger.OrNop(log),
	}
}

// Render executes templateID with ctx and writes the result to outputPath.
// The file is left untouched when its content would not change, so
// re-rendering identical output keeps modification times stable.
func (r *TemplateRenderer) Render(templateID, outputPath string, ctx Context) (string, error) {
	tmpl, err := r.lookup(templateID)
	if err != nil {
		return "", &RenderError{TemplateID: templateID, Path: outputPath, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", &RenderError{TemplateID: templateID, Path: outputPath, Err: err}
	}

	if existing, err := os.ReadFile(outputPath); err == nil && bytes.Equal(existing, buf.Bytes()) {
		r.logger.Debugw("Artifact unchanged", logger.FieldTemplate, templateID, logger.FieldPath, outputPath)
		return outputPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", &RenderError{TemplateID: templateID, Path: outputPath, Err: err}
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", &RenderError{TemplateID: templateID, Path: outputPath, Err: err}
	}

	r.logger.Debugw("Rendered artifact", logger.FieldTemplate, templateID, logger.FieldPath, outputPath)
	return outputPath, nil
}

func (r *TemplateRenderer) lookup(templateID string) (*template.Template, error) {
	if tmpl, ok := r.cache[templateID]; ok {
		return tmpl, nil
	}

	src, err := fs.ReadFile(r.templates, templateID)
	if err != nil {
		return nil, errors.Wrapf(err, "template %s", templateID)
	}
	tmpl, err := template.New(templateID).Funcs(funcs).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "parse template %s", templateID)
	}

	r.cache[templateID] = tmpl
	return tmpl, nil
}
