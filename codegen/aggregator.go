package codegen

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/render"
	"github.com/teranos/schemagen/schemaver"
)

// Default version file names, relative to the definitions root.
const (
	DefaultCanonicalFile = "schema_version.toml"
	DefaultStampFile     = "generated_version.toml"
)

// Options configures an Aggregator.
type Options struct {
	OutputRoot      string
	DefinitionsRoot string
	Renderer        render.Renderer

	// Canonical and Stamp default to DefaultCanonicalFile and DefaultStampFile
	// inside DefinitionsRoot.
	Canonical *schemaver.File
	Stamp     *schemaver.File

	// Delimiter joins manifest entries; defaults to DefaultDelimiter
	Delimiter string

	Logger *zap.SugaredLogger
}

// Result describes one Regenerate call.
type Result struct {
	Stale   bool
	Version schemaver.Version
	Paths   []string
	Headers []string
}

// Generated reports whether artifacts were written.
func (r *Result) Generated() bool {
	return r.Paths != nil
}

// Aggregator owns the output tree and both version files.
//
// It is not safe for concurrent use. Two Regenerate calls against the same
// output root, even from different Aggregators or processes, must be
// serialised by the caller.
type Aggregator struct {
	outputRoot      string
	definitionsRoot string
	renderer        render.Renderer
	canonical       *schemaver.File
	stamp           *schemaver.File
	delimiter       string
	logger          *zap.SugaredLogger

	generators []Generator
	names      map[string]struct{}
}

// NewAggregator returns an Aggregator with no generators.
func NewAggregator(opts Options) (*Aggregator, error) {
	if opts.OutputRoot == "" {
		return nil, errors.New("output root is required")
	}
	if opts.DefinitionsRoot == "" {
		return nil, errors.New("definitions root is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if opts.Canonical == nil {
		opts.Canonical = schemaver.NewCanonical(filepath.Join(opts.DefinitionsRoot, DefaultCanonicalFile))
	}
	if opts.Stamp == nil {
		opts.Stamp = schemaver.NewStamp(filepath.Join(opts.DefinitionsRoot, DefaultStampFile))
	}
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}

	return &Aggregator{
		outputRoot:      opts.OutputRoot,
		definitionsRoot: opts.DefinitionsRoot,
		renderer:        opts.Renderer,
		canonical:       opts.Canonical,
		stamp:           opts.Stamp,
		delimiter:       opts.Delimiter,
		logger:          logger.OrNop(opts.Logger),
		names:           make(map[string]struct{}),
	}, nil
}

// Register initializes g against the shared roots and renderer and appends it.
// Registration order is manifest order.
func (a *Aggregator) Register(g Generator) error {
	name := g.Name()
	if _, exists := a.names[name]; exists {
		return errors.Newf("generator %q is already registered", name)
	}

	if err := g.Initialize(a.outputRoot, a.definitionsRoot, a.renderer); err != nil {
		return errors.Wrapf(err, "initialize generator %s", name)
	}

	a.generators = append(a.generators, g)
	a.names[name] = struct{}{}
	a.logger.Debugw("Registered generator", logger.FieldGenerator, name)
	return nil
}

// Generators returns the registered generators in registration order.
func (a *Aggregator) Generators() []Generator {
	out := make([]Generator, len(a.generators))
	copy(out, a.generators)
	return out
}

// Canonical returns the canonical version on disk; 0.0.0 when the file is absent.
func (a *Aggregator) Canonical() (schemaver.Version, error) {
	v, _, err := a.canonical.Read()
	return v, err
}

// SetCanonical writes v as the canonical version. Versions only move forward:
// a v lower than the current canonical version is rejected, and v equal to it
// leaves the file untouched so pending bump votes keep their baseline.
func (a *Aggregator) SetCanonical(v schemaver.Version) error {
	current, err := a.Canonical()
	if err != nil {
		return err
	}
	if v == current {
		a.logger.Debugw("Canonical version unchanged", logger.FieldVersion, v.String())
		return nil
	}
	if v.Less(current) {
		return errors.WithHintf(
			errors.Newf("cannot lower schema version from %s to %s", current, v),
			"edit %s by hand if a rollback is really intended", a.canonical.Path,
		)
	}
	if err := a.canonical.Write(v); err != nil {
		return err
	}
	a.logger.Infow("Set canonical version", logger.FieldVersion, v.String())
	return nil
}

// IsStale collects every generator's bump vote, bumps and persists the
// canonical version when any vote is set, and reports whether the stamp of
// the last generation is missing or behind the canonical version.
func (a *Aggregator) IsStale() (bool, error) {
	_, stale, err := a.checkStaleness()
	return stale, err
}

func (a *Aggregator) checkStaleness() (schemaver.Version, bool, error) {
	current, _, err := a.canonical.Read()
	if err != nil {
		return schemaver.Version{}, false, err
	}
	since, err := a.canonical.ModTime()
	if err != nil {
		return schemaver.Version{}, false, err
	}

	var bump schemaver.Bump
	for _, g := range a.generators {
		vote, err := g.RequestedVersionBump(since)
		if err != nil {
			return schemaver.Version{}, false, errors.Wrapf(err, "version vote of generator %s", g.Name())
		}
		if vote.Any() {
			a.logger.Debugw("Generator requests version bump",
				logger.FieldGenerator, g.Name(),
				logger.FieldBump, vote.String(),
			)
		}
		bump = bump.Or(vote)
	}

	canonical := current
	if bump.Any() {
		canonical = current.Apply(bump)
		if err := a.canonical.Write(canonical); err != nil {
			return schemaver.Version{}, false, err
		}
		a.logger.Infow("Bumped canonical version",
			logger.FieldBump, bump.String(),
			"from", current.String(),
			logger.FieldVersion, canonical.String(),
		)
	}

	stamped, found, err := a.stamp.Read()
	if err != nil {
		return schemaver.Version{}, false, err
	}
	stale := !found || stamped.Less(canonical)

	stampDesc := "absent"
	if found {
		stampDesc = stamped.String()
	}
	a.logger.Infow("Checked staleness",
		logger.FieldStale, stale,
		logger.FieldCanonical, canonical.String(),
		logger.FieldStamp, stampDesc,
		logger.FieldBump, bump.String(),
	)
	return canonical, stale, nil
}

// Regenerate rebuilds the output tree when IsStale reports true and is a
// no-op otherwise.
func (a *Aggregator) Regenerate() (*Result, error) {
	return a.regenerate(false)
}

// ForceRegenerate rebuilds the output tree even when it is up to date.
func (a *Aggregator) ForceRegenerate() (*Result, error) {
	return a.regenerate(true)
}

func (a *Aggregator) regenerate(force bool) (*Result, error) {
	canonical, stale, err := a.checkStaleness()
	if err != nil {
		return nil, err
	}

	result := &Result{Stale: stale, Version: canonical}
	if !stale && !force {
		a.logger.Infow("Generated output is up to date", logger.FieldVersion, canonical.String())
		return result, nil
	}

	start := time.Now()
	if err := a.Clear(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(a.outputRoot, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output root %s", a.outputRoot)
	}

	paths := []string{}
	for _, g := range a.generators {
		generated, err := g.Generate()
		if err != nil {
			a.logger.Errorw("Generation aborted",
				logger.FieldGenerator, g.Name(),
				logger.FieldError, err,
			)
			return nil, errors.Wrapf(err, "generator %s", g.Name())
		}
		a.logger.Debugw("Generator finished",
			logger.FieldGenerator, g.Name(),
			logger.FieldCount, len(generated),
		)
		paths = append(paths, generated...)
	}

	result.Paths = paths
	result.Headers = headerPaths(paths)

	if err := writeManifest(filepath.Join(a.outputRoot, FilesManifest), result.Paths, a.delimiter); err != nil {
		return nil, err
	}
	if err := writeManifest(filepath.Join(a.outputRoot, HeadersManifest), result.Headers, a.delimiter); err != nil {
		return nil, err
	}
	if err := a.stamp.Write(canonical); err != nil {
		return nil, err
	}

	a.logger.Infow("Regenerated output",
		logger.FieldVersion, canonical.String(),
		logger.FieldCount, len(paths),
		logger.FieldOutputRoot, a.outputRoot,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Clear removes the output tree. It is safe to call when the tree does not exist.
func (a *Aggregator) Clear() error {
	if err := os.RemoveAll(a.outputRoot); err != nil {
		return errors.Wrapf(err, "clear output root %s", a.outputRoot)
	}
	a.logger.Debugw("Cleared output root", logger.FieldOutputRoot, a.outputRoot)
	return nil
}

// Clean removes the output tree and the generated stamp, so the next
// Regenerate rebuilds even when no definitions changed.
func (a *Aggregator) Clean() error {
	if err := a.Clear(); err != nil {
		return err
	}
	if err := a.stamp.Remove(); err != nil {
		return err
	}
	a.logger.Debugw("Removed generated stamp", logger.FieldStamp, a.stamp.Path)
	return nil
}

// OutputRoot returns the directory owned by the Aggregator.
func (a *Aggregator) OutputRoot() string { return a.outputRoot }

// DefinitionsRoot returns the directory the generators load from.
func (a *Aggregator) DefinitionsRoot() string { return a.definitionsRoot }

// ManifestPath returns the path of the manifest listing every artifact.
func (a *Aggregator) ManifestPath() string {
	return filepath.Join(a.outputRoot, FilesManifest)
}
