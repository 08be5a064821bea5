package resolver

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/pseudomuto/lesskeeper/pkg/source"
	"go.uber.org/zap"
)

// DefaultPattern matches an import directive. Group 1 captures the indentation in front of the
// directive (possibly empty), group 2 the target path (never empty). The match ends after the
// optional terminating semicolon so text following the directive on the same line is kept.
var DefaultPattern = regexp.MustCompile(`^(\s*)(?://)?@import\s+(?:url\(\s*)?["']?([^(?":')]+)(?:["']\s*\)?|\))\s*;?`)

type (
	// Option configures a Resolver.
	Option func(*Resolver)

	// Resolver inlines import directives. A Resolver holds no per-resolution state and may be reused
	// for any number of entry files.
	Resolver struct {
		pattern    *regexp.Regexp
		defaultExt string
		log        *zap.Logger
	}

	// Document is the flattened result of resolving an entry file.
	Document struct {
		// Path is the absolute path of the entry file
		Path string
		// Text is the merged source with every import inlined
		Text string
		// Includes lists every file that was inlined, entry first, in depth-first pre-order
		Includes []string
		// Missing lists the imports that were replaced by a placeholder, in document order
		Missing []string
	}
)

// WithPattern replaces DefaultPattern. The pattern must define the same two capture groups.
func WithPattern(re *regexp.Regexp) Option {
	return func(r *Resolver) {
		r.pattern = re
	}
}

// WithLogger sets the logger missing imports are reported to.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithDefaultExtension sets the extension tried for extension-less import targets that do not
// exist as written. An empty extension disables the retry.
func WithDefaultExtension(ext string) Option {
	return func(r *Resolver) {
		r.defaultExt = ext
	}
}

// New creates a Resolver.
//
// Example:
//
//	r := resolver.New(resolver.WithLogger(log))
//	doc, err := r.Resolve("styles/main.less")
//	if err != nil {
//		log.Fatal("resolve failed", zap.Error(err))
//	}
//
//	fmt.Println(doc.Text)
func New(opts ...Option) *Resolver {
	r := &Resolver{
		pattern:    DefaultPattern,
		defaultExt: consts.SourceExt,
		log:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.log = r.log.Named("resolver")
	return r
}

// Resolve flattens the file at path. Missing imports do not fail resolution; they are replaced by
// a placeholder (see Placeholder). An entry path that is not a regular file yields a document
// consisting of the placeholder only. Errors are returned for files that exist but cannot be read.
func (r *Resolver) Resolve(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve path %s", path)
	}

	doc := &Document{Path: abs}
	included := NewInclusionSet()
	text, err := r.resolve(doc, abs, included, "")
	if err != nil {
		return nil, err
	}

	doc.Text = text
	doc.Includes = included.Paths()
	return doc, nil
}

// Position returns the 1-based line and column of the first placeholder in the document, or zeros
// when nothing is missing.
func (d *Document) Position() (int, int) {
	if len(d.Missing) == 0 {
		return 0, 0
	}

	idx := strings.Index(d.Text, Placeholder(d.Missing[0]))
	if idx < 0 {
		return 0, 0
	}

	before := d.Text[:idx]
	return strings.Count(before, "\n") + 1, idx - strings.LastIndex(before, "\n")
}

// Placeholder is the text substituted for an import that could not be found.
func Placeholder(path string) string {
	return `Error including "` + path + `"`
}

func (r *Resolver) resolve(doc *Document, path string, included *InclusionSet, indent string) (string, error) {
	if !source.IsFile(path) {
		r.log.Warn("Included file not found", zap.String("path", path))
		doc.Missing = append(doc.Missing, path)
		return Placeholder(path), nil
	}

	// checked before reading so cyclic and diamond graphs terminate
	if !included.Add(path) {
		r.log.Debug("Skipping already included file", zap.String("path", path))
		return "", nil
	}

	unit, err := source.Read(path)
	if err != nil {
		return "", err
	}

	lines := unit.Lines()
	for i, line := range lines {
		loc := r.pattern.FindStringSubmatchIndex(line)
		if loc == nil {
			if indent != "" && line != "" {
				lines[i] = indent + line
			}
			continue
		}

		captured, target := group(line, loc, 1), group(line, loc, 2)
		next := r.locate(filepath.Dir(path), target)

		content, err := r.resolve(doc, next, included, indent+captured)
		if err != nil {
			return "", err
		}

		lines[i] = line[:loc[0]] + content + line[loc[1]:]
	}

	return source.Join(lines, unit.Newline), nil
}

// locate resolves an import target against dir.
func (r *Resolver) locate(dir, target string) string {
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}

	if r.defaultExt != "" && filepath.Ext(target) == "" && !source.IsFile(target) {
		if withExt := target + r.defaultExt; source.IsFile(withExt) {
			return withExt
		}
	}

	return target
}

func group(s string, loc []int, n int) string {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return ""
	}

	return s[loc[2*n]:loc[2*n+1]]
}
