// Package commands implements the schemagen CLI commands.
package commands

import (
	"io/fs"
	"os"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/enums"
	"github.com/teranos/schemagen/codegen/messages"
	"github.com/teranos/schemagen/config"
	"github.com/teranos/schemagen/db"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/history"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/render"
	"github.com/teranos/schemagen/schemaver"
)

// cfg is the configuration loaded by LoadConfig for the running command.
var cfg *config.Config

// LoadConfig loads configuration from configFile, or from the default
// cascade when configFile is empty.
func LoadConfig(configFile string) (*config.Config, error) {
	config.Reset()

	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// validConfig returns the loaded configuration after validating it.
func validConfig() (*config.Config, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"run 'schemagen config show' to see the effective values",
		)
	}
	return cfg, nil
}

// newAggregator wires the enum and message generators for c.
func newAggregator(c *config.Config) (*codegen.Aggregator, error) {
	var templates fs.FS
	if c.Paths.TemplatesRoot != "" {
		templates = os.DirFS(c.Paths.TemplatesRoot)
	}

	agg, err := codegen.NewAggregator(codegen.Options{
		OutputRoot:      c.Paths.OutputRoot,
		DefinitionsRoot: c.Paths.DefinitionsRoot,
		Renderer:        render.NewTemplateRenderer(templates, logger.ComponentLogger("render")),
		Canonical:       schemaver.NewCanonical(c.CanonicalVersionPath()),
		Stamp:           schemaver.NewStamp(c.GeneratedStampPath()),
		Delimiter:       c.Generator.ManifestDelimiter,
		Logger:          logger.ComponentLogger("codegen"),
	})
	if err != nil {
		return nil, err
	}

	generators := []codegen.Generator{
		enums.New(enums.Options{
			LibraryName: c.Generator.LibraryName,
			File:        c.Generator.EnumsFile,
			Logger:      logger.ComponentLogger("codegen"),
		}),
		messages.New(messages.Options{
			LibraryName: c.Generator.LibraryName,
			File:        c.Generator.MessagesFile,
			Logger:      logger.ComponentLogger("codegen"),
		}),
	}
	for _, g := range generators {
		if err := agg.Register(g); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

// openHistory opens the run ledger. It returns a nil store when history is
// disabled; the returned close function is always safe to call.
func openHistory(c *config.Config) (*history.Store, func(), error) {
	if !c.History.Enabled {
		return nil, func() {}, nil
	}
	conn, err := db.OpenWithMigrations(c.History.Path, logger.ComponentLogger("db"))
	if err != nil {
		return nil, func() {}, errors.Wrap(err, "failed to open history")
	}
	return history.NewStore(conn), func() { conn.Close() }, nil
}

// generateOptions are the knobs of one generation run.
type generateOptions struct {
	force      bool
	setVersion string
}

// runGeneration builds the pipeline, regenerates and records the run. A
// ledger that cannot be written only produces a warning.
func runGeneration(c *config.Config, opts generateOptions) (*codegen.Result, error) {
	store, closeStore, err := openHistory(c)
	if err != nil {
		logger.Warnw("Run history unavailable", logger.FieldError, err)
	}
	defer closeStore()

	var run *history.Run
	if store != nil {
		run = store.Begin()
	}

	result, genErr := generate(c, opts)

	if store != nil {
		status := history.StatusSkipped
		if result != nil {
			run.Stale = result.Stale
			run.SchemaVersion = result.Version.String()
			run.ArtifactCount = len(result.Paths)
			if result.Generated() {
				status = history.StatusGenerated
			}
		}
		if err := store.Finish(run, status, genErr); err != nil {
			logger.Warnw("Failed to record run", logger.FieldRunID, run.ID, logger.FieldError, err)
		}
	}
	return result, genErr
}

func generate(c *config.Config, opts generateOptions) (*codegen.Result, error) {
	agg, err := newAggregator(c)
	if err != nil {
		return nil, err
	}

	if opts.setVersion != "" {
		v, err := schemaver.Parse(opts.setVersion)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --set-version %q", opts.setVersion)
		}
		if err := agg.SetCanonical(v); err != nil {
			return nil, err
		}
	}

	if opts.force {
		return agg.ForceRegenerate()
	}
	return agg.Regenerate()
}
