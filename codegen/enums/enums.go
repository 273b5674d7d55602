// Package enums generates one header/source pair per enumeration type.
package enums

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/schemagen/catalog"
	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/render"
	"github.com/teranos/schemagen/schemaver"
)

// Name is the generator name used for registration and logging.
const Name = "enums"

const (
	group  = "enums"
	suffix = "Enum"

	headerTemplate = "enums/enum.h.tmpl"
	sourceTemplate = "enums/enum.cpp.tmpl"

	// DefaultFile is the enum catalog name inside the definitions root
	DefaultFile = "enums.yaml"

	// DefaultLibraryName prefixes artifact paths and include directives
	DefaultLibraryName = "ripple"
)

// Options configures a Generator.
type Options struct {
	LibraryName string
	File        string
	Logger      *zap.SugaredLogger
}

// Generator renders enumeration types.
type Generator struct {
	library string
	file    string
	logger  *zap.SugaredLogger

	path       string
	outputRoot string
	renderer   render.Renderer
	catalog    *catalog.EnumCatalog
}

// New returns an enum generator; call Initialize before use.
func New(opts Options) *Generator {
	if opts.LibraryName == "" {
		opts.LibraryName = DefaultLibraryName
	}
	if opts.File == "" {
		opts.File = DefaultFile
	}
	return &Generator{
		library: opts.LibraryName,
		file:    opts.File,
		logger:  logger.OrNop(opts.Logger).With(logger.FieldGenerator, Name),
	}
}

func (g *Generator) Name() string { return Name }

// Initialize loads the enum catalog from definitionsRoot.
func (g *Generator) Initialize(outputRoot, definitionsRoot string, r render.Renderer) error {
	path := filepath.Join(definitionsRoot, g.file)
	cat, err := catalog.LoadEnums(path)
	if err != nil {
		return err
	}

	g.path = path
	g.outputRoot = outputRoot
	g.renderer = r
	g.catalog = cat
	g.logger.Debugw("Loaded enum catalog", logger.FieldCatalog, path, logger.FieldCount, len(cat.Enums))
	return nil
}

// RequestedVersionBump asks for a major bump when the catalog changed after since.
func (g *Generator) RequestedVersionBump(since time.Time) (schemaver.Bump, error) {
	return codegen.ModTimeVote(g.path, since)
}

// Catalog returns the loaded catalog.
func (g *Generator) Catalog() *catalog.EnumCatalog { return g.catalog }

// Generate renders a header and a source file per enum, in catalog order.
func (g *Generator) Generate() ([]string, error) {
	if g.catalog == nil {
		return nil, errors.New("enum generator used before Initialize")
	}

	paths := make([]string, 0, 2*len(g.catalog.Enums))
	for index, def := range g.catalog.Enums {
		ctx, err := g.context(index, def)
		if err != nil {
			return nil, err
		}

		headerPath := codegen.HeaderPath(g.outputRoot, g.library, group, def.Name, suffix)
		header, err := g.renderer.Render(headerTemplate, headerPath, ctx)
		if err != nil {
			return nil, render.AsRenderError(headerTemplate, headerPath, err)
		}
		sourcePath := codegen.SourcePath(g.outputRoot, g.library, group, def.Name, suffix)
		source, err := g.renderer.Render(sourceTemplate, sourcePath, ctx)
		if err != nil {
			return nil, render.AsRenderError(sourceTemplate, sourcePath, err)
		}
		paths = append(paths, header, source)

		g.logger.Debugw("Generated enum", logger.FieldEntity, def.Name)
	}
	return paths, nil
}

func (g *Generator) context(index int, def catalog.EnumDefinition) (render.Context, error) {
	values := make([]map[string]any, len(def.Values))
	for i, name := range def.Values {
		v, err := enumeratorValue(def, i)
		if err != nil {
			return nil, err
		}
		values[i] = map[string]any{"name": name, "value": v}
	}

	return render.Context{
		"library_name":    g.library,
		"name":            def.Name,
		"index":           index,
		"underlying_type": def.UnderlyingType,
		"is_flag":         def.IsFlag,
		"start_value":     def.StartValue,
		"values":          values,
		"description":     def.Description,
	}, nil
}

// enumeratorValue numbers enumerators consecutively from StartValue; flag
// enums use one bit each, starting at bit StartValue.
func enumeratorValue(def catalog.EnumDefinition, i int) (int64, error) {
	if !def.IsFlag {
		return def.StartValue + int64(i), nil
	}
	bit := def.StartValue + int64(i)
	if bit < 0 || bit > 62 {
		return 0, errors.Mark(
			errors.Newf("enum %s: flag %s needs bit %d, outside 0..62", def.Name, def.Values[i], bit),
			errors.ErrSchema,
		)
	}
	return int64(1) << bit, nil
}
