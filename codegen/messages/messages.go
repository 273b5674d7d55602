// Package messages generates the network message hierarchy: a fixed base
// message and message port pair, then one header/source pair per message.
//
// Inheritance is data: each message may name a parent in the same catalog.
// The whole catalog is validated before anything is rendered, and templates
// receive only the immediate parent so the emitted classes keep the declared
// hierarchy.
package messages

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
const Name = "messages"

// RootParent is the parent reported for messages that declare none.
const RootParent = "Message"

const (
	group  = "messages"
	suffix = "Message"

	headerTemplate     = "messages/message.h.tmpl"
	sourceTemplate     = "messages/message.cpp.tmpl"
	baseHeaderTemplate = "messages/base.h.tmpl"
	baseSourceTemplate = "messages/base.cpp.tmpl"
	portHeaderTemplate = "messages/port.h.tmpl"
	portSourceTemplate = "messages/port.cpp.tmpl"

	// DefaultFile is the message catalog name inside the definitions root
	DefaultFile = "messages.yaml"

	// DefaultLibraryName prefixes artifact paths and include directives
	DefaultLibraryName = "ripple"
)

// Options configures a Generator.
type Options struct {
	LibraryName string
	File        string
	Logger      *zap.SugaredLogger
}

// Generator renders message types.
type Generator struct {
	library string
	file    string
	logger  *zap.SugaredLogger

	path       string
	outputRoot string
	renderer   render.Renderer
	catalog    *catalog.MessageCatalog
}

// New returns a message generator; call Initialize before use.
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

// Initialize loads the message catalog from definitionsRoot. Inheritance is
// checked by Generate, not here.
func (g *Generator) Initialize(outputRoot, definitionsRoot string, r render.Renderer) error {
	path := filepath.Join(definitionsRoot, g.file)
	cat, err := catalog.LoadMessages(path)
	if err != nil {
		return err
	}

	g.path = path
	g.outputRoot = outputRoot
	g.renderer = r
	g.catalog = cat
	g.logger.Debugw("Loaded message catalog", logger.FieldCatalog, path, logger.FieldCount, len(cat.Messages))
	return nil
}

// RequestedVersionBump asks for a major bump when the catalog changed after since.
func (g *Generator) RequestedVersionBump(since time.Time) (schemaver.Bump, error) {
	return codegen.ModTimeVote(g.path, since)
}

// Catalog returns the loaded catalog.
func (g *Generator) Catalog() *catalog.MessageCatalog { return g.catalog }

type artifact struct {
	templateID string
	path       string
}

// Generate validates the catalog, renders the four fixed artifacts and then
// a header and a source file per message, in catalog order.
func (g *Generator) Generate() ([]string, error) {
	if g.catalog == nil {
		return nil, errors.New("message generator used before Initialize")
	}
	if err := Validate(g.catalog); err != nil {
		return nil, err
	}

	types := g.catalog.Names()
	paths := make([]string, 0, 4+2*len(types))

	shared := render.Context{
		"library_name":  g.library,
		"message_types": types,
	}
	fixed := []artifact{
		{baseHeaderTemplate, codegen.HeaderPath(g.outputRoot, g.library, group, "", suffix)},
		{baseSourceTemplate, codegen.SourcePath(g.outputRoot, g.library, group, "", suffix)},
		{portHeaderTemplate, codegen.HeaderPath(g.outputRoot, g.library, group, suffix+"Port", "")},
		{portSourceTemplate, codegen.SourcePath(g.outputRoot, g.library, group, suffix+"Port", "")},
	}
	for _, a := range fixed {
		p, err := g.renderer.Render(a.templateID, a.path, shared)
		if err != nil {
			return nil, render.AsRenderError(a.templateID, a.path, err)
		}
		paths = append(paths, p)
	}

	for index, def := range g.catalog.Messages {
		ctx := g.context(types, index, def)
		for _, a := range []artifact{
			{headerTemplate, codegen.HeaderPath(g.outputRoot, g.library, group, def.Name, suffix)},
			{sourceTemplate, codegen.SourcePath(g.outputRoot, g.library, group, def.Name, suffix)},
		} {
			p, err := g.renderer.Render(a.templateID, a.path, ctx)
			if err != nil {
				return nil, render.AsRenderError(a.templateID, a.path, err)
			}
			paths = append(paths, p)
		}
		g.logger.Debugw("Generated message", logger.FieldEntity, def.Name, "parent", ctx["parent"])
	}
	return paths, nil
}

func (g *Generator) context(types []string, index int, def catalog.MessageDefinition) render.Context {
	parent := def.Parent
	if parent == "" {
		parent = RootParent
	}

	members := make([]map[string]any, len(def.Members))
	for i, m := range def.Members {
		entry := map[string]any{"name": m.Name}
		for _, kind := range catalog.DescriptorKinds {
			v, _ := m.Get(kind)
			entry[string(kind)] = v
		}
		members[i] = entry
	}

	return render.Context{
		"library_name":  g.library,
		"message_types": types,
		"name":          def.Name,
		"index":         index,
		"parent":        parent,
		"members":       members,
		"description":   def.Description,
	}
}
