package project

import (
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/pseudomuto/lesskeeper/pkg/output"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	//go:embed embed/lesskeeper.yaml
	defaultConfig []byte

	//go:embed embed/styles/main.less
	defaultMain []byte

	//go:embed embed/styles/base.less
	defaultBase []byte

	image = fstest.MapFS{
		"styles":                 {Mode: os.ModeDir | consts.ModeDir},
		"styles/main.less":       {Data: defaultMain},
		"styles/base.less":       {Data: defaultBase},
		consts.DefaultConfigFile: {Data: defaultConfig},
	}
)

type (
	// ProjectParams configures a Project.
	ProjectParams struct {
		// Dir is the project root. Target directories are resolved against it.
		Dir string

		// Compiler compiles every entry. A default compiler is created when nil.
		Compiler *compiler.Compiler

		// Logger receives progress and warnings. Defaults to a no-op logger.
		Logger *zap.Logger

		// Options apply to every target before the target's own options.
		Options compiler.Options

		Targets []Target

		// WriteExpanded writes a .max.css companion for destinations with an expanded rendering.
		WriteExpanded bool
	}

	Project struct {
		root     string
		compiler *compiler.Compiler
		log      *zap.Logger
		options  compiler.Options
		targets  []Target
		expanded bool
	}
)

// New creates a Project rooted at params.Dir.
//
// Example:
//
//	proj := project.New(project.ProjectParams{
//		Dir:     "/path/to/site",
//		Logger:  log,
//		Options: cfg.Options,
//		Targets: cfg.Targets,
//	})
//
//	if err := proj.Build(ctx); err != nil {
//		log.Fatal("build failed", zap.Error(err))
//	}
func New(params ProjectParams) *Project {
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := params.Compiler
	if c == nil {
		c = compiler.New(compiler.WithLogger(log))
	}

	return &Project{
		root:     params.Dir,
		compiler: c,
		log:      log.Named("project"),
		options:  params.Options,
		targets:  params.Targets,
		expanded: params.WriteExpanded,
	}
}

// Root returns the project directory.
func (p *Project) Root() string {
	return p.root
}

// Targets returns the configured targets in declaration order.
func (p *Project) Targets() []Target {
	return append([]Target{}, p.targets...)
}

// Initialize creates a starter project. It is idempotent: only missing files and directories are
// created and existing content is preserved.
func (p *Project) Initialize() error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	for path, entry := range image {
		fullPath := filepath.Join(p.root, path)

		if _, err := os.Stat(fullPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		if entry.Mode.IsDir() {
			if err := os.MkdirAll(fullPath, entry.Mode.Perm()); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", fullPath)
			}

			continue
		}

		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, consts.ModeDir); err != nil {
			return errors.Wrapf(err, "failed to create parent directory %s", parentDir)
		}

		if err := os.WriteFile(fullPath, entry.Data, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write file %s", fullPath)
		}

		p.log.Info("File created", zap.String("path", fullPath))
	}

	return nil
}

// Build compiles the named targets, or every target when no name is given.
//
// Entries are compiled one at a time. A failing entry is logged by the compiler, skipped by the
// output assembler and collected into the returned error; the remaining entries and targets are
// still built. The context is checked before each entry.
func (p *Project) Build(ctx context.Context, names ...string) error {
	targets, err := p.selectTargets(names)
	if err != nil {
		return err
	}

	var errs error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		errs = multierr.Append(errs, p.build(ctx, t))
	}

	return errs
}

func (p *Project) build(ctx context.Context, t Target) error {
	opts, err := t.EffectiveOptions(p.options)
	if err != nil {
		return errors.Wrapf(err, "failed to merge options for target %s", t.Name)
	}

	srcs, err := t.ExpandSources(p.root, p.log)
	if err != nil {
		return err
	}

	p.log.Debug("Building target",
		zap.String("target", t.Name),
		zap.Strings("src", srcs),
		zap.String("dest", t.DestDir(p.root)),
	)

	dir := t.Dir(p.root)
	asm := output.NewAssembler(output.WithLogger(p.log), output.WithExpanded(p.expanded))

	var errs error
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		res := p.compiler.Compile(filepath.Join(dir, src), opts)
		if res.Failed() {
			errs = multierr.Append(errs, res.Err)
		} else if res.SourceMap != "" && opts.SourceMapFilename != "" {
			errs = multierr.Append(errs, output.WriteSourceMap(p.log, within(dir, opts.SourceMapFilename), res.SourceMap, opts.Banner))
		}

		asm.Add(output.DestPath(t.DestDir(p.root), src), res, opts)
	}

	return multierr.Append(errs, asm.Write())
}

func (p *Project) selectTargets(names []string) ([]Target, error) {
	if len(names) == 0 {
		return p.targets, nil
	}

	selected := make([]Target, 0, len(names))
	for _, name := range names {
		var found *Target
		for i := range p.targets {
			if strings.EqualFold(p.targets[i].Name, name) {
				found = &p.targets[i]
				break
			}
		}

		if found == nil {
			return nil, errors.Errorf("target not found: %s", name)
		}

		selected = append(selected, *found)
	}

	return selected, nil
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}
