package output

import (
	"strings"

	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type (
	// Option configures an Assembler.
	Option func(*Assembler)

	// Assembler collects compiled entries per destination and writes them.
	Assembler struct {
		log      *zap.Logger
		expanded bool
		order    []string
		dests    map[string]*destination
	}

	destination struct {
		path     string
		banner   string
		compress bool
		minified []string
		expanded []string
	}
)

func WithLogger(log *zap.Logger) Option {
	return func(a *Assembler) {
		if log != nil {
			a.log = log
		}
	}
}

// WithExpanded also writes the expanded rendering of each destination to
// a .max.css companion file.
func WithExpanded(enabled bool) Option {
	return func(a *Assembler) {
		a.expanded = enabled
	}
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		log:   zap.NewNop(),
		dests: make(map[string]*destination),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.log = a.log.Named("output")
	return a
}

// Add records res for dest. The banner and join mode of a destination come
// from the options of the first entry added for it. Failed and empty
// results are remembered only so the destination is reported on Write.
func (a *Assembler) Add(dest string, res *compiler.Result, opts compiler.Options) {
	d, ok := a.dests[dest]
	if !ok {
		d = &destination{
			path:     dest,
			banner:   opts.Banner,
			compress: opts.Compressing(),
		}
		a.dests[dest] = d
		a.order = append(a.order, dest)
	}

	if res == nil || res.Failed() || res.Minified == "" {
		return
	}

	d.minified = append(d.minified, res.Minified)
	if res.HasExpanded && res.Expanded != "" {
		d.expanded = append(d.expanded, res.Expanded)
	}
}

// Destinations returns the destinations in the order they were first added.
func (a *Assembler) Destinations() []string {
	return append([]string{}, a.order...)
}

// Write writes every destination that collected at least one result.
// Write errors are combined; one failing destination does not prevent the
// others from being written.
func (a *Assembler) Write() error {
	var errs error
	for _, dest := range a.order {
		d := a.dests[dest]
		if len(d.minified) == 0 {
			a.log.Warn("Destination not written because compiled files were empty.", zap.String("dest", d.path))
			continue
		}

		sep := consts.Linefeed
		if d.compress {
			sep = ""
		}

		if err := a.write(d.path, d.banner+strings.Join(d.minified, sep)); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if a.expanded && len(d.expanded) > 0 {
			if err := a.write(ExpandedPath(d.path), d.banner+strings.Join(d.expanded, consts.Linefeed)); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}

	return errs
}

func (a *Assembler) write(path, text string) error {
	if err := writeFile(path, text); err != nil {
		return err
	}

	a.log.Info("File created", zap.String("path", path))
	return nil
}
