package project

import (
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/source"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Target is one named build unit of a project.
type Target struct {
	// Name selects the target on the command line
	Name string `yaml:"name"`

	// Cwd is the directory Src patterns are relative to. Relative values are resolved against the
	// project root.
	Cwd string `yaml:"cwd,omitempty"`

	// Src lists glob patterns of entry files
	Src []string `yaml:"src"`

	// Dest is the output directory, relative to the project root unless absolute
	Dest string `yaml:"dest"`

	// Options override the project options for this target only
	Options compiler.Options `yaml:"options,omitempty"`

	// overrides is the options mapping the target was decoded from, if any
	overrides *yaml.Node
}

// UnmarshalYAML decodes the target and keeps its options mapping so keys explicitly set to false
// still override the project options.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	type plain Target
	if err := node.Decode((*plain)(t)); err != nil {
		return err
	}

	t.overrides = nil
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "options" {
				t.overrides = node.Content[i+1]
			}
		}
	}

	return nil
}

// EffectiveOptions returns the options the target compiles with when the project uses base.
// Targets decoded from YAML overlay their options mapping key by key; others only override base
// with their non-empty fields.
func (t Target) EffectiveOptions(base compiler.Options) (compiler.Options, error) {
	if t.overrides != nil {
		return base.Overlay(t.overrides)
	}

	return base.Merge(t.Options)
}

// Dir returns the absolute source directory of the target.
func (t Target) Dir(root string) string {
	return within(root, t.Cwd)
}

// DestDir returns the absolute output directory of the target.
func (t Target) DestDir(root string) string {
	return within(root, t.Dest)
}

// ExpandSources expands the Src patterns into entry paths relative to the target directory.
//
// Matches of each pattern are naturally sorted and patterns keep their declaration order. A path
// matched by several patterns is kept at its first position. A pattern without matches is kept
// as a literal path, so that it is reported as missing along with any match that is not a file.
func (t Target) ExpandSources(root string, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir := t.Dir(root)
	seen := make(map[string]bool)

	var srcs []string
	for _, pattern := range t.Src {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid source pattern %q in target %s", pattern, t.Name)
		}

		if len(matches) == 0 {
			matches = []string{filepath.Join(dir, pattern)}
		}

		sort.Sort(natural.StringSlice(matches))
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			if !source.IsFile(match) {
				log.Warn("Source file \"" + match + "\" not found.")
				continue
			}

			rel, err := filepath.Rel(dir, match)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to relativize %s", match)
			}

			srcs = append(srcs, rel)
		}
	}

	if len(srcs) == 0 {
		log.Warn("Destination not written because no source files were found.", zap.String("target", t.Name))
	}

	return srcs, nil
}

func within(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}
