package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/pseudomuto/lesskeeper/pkg/project"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents a lesskeeper project file.
type Config struct {
	// Logging configures the console logger
	Logging LoggingConfig `yaml:"logging,omitempty"`

	// Options apply to every target
	Options compiler.Options `yaml:"options,omitempty"`

	// Targets are built in declaration order
	Targets []project.Target `yaml:"targets"`

	// WriteExpanded also writes <name>.max.css next to destinations that have an expanded rendering
	WriteExpanded bool `yaml:"writeExpanded,omitempty"`

	// Dir is the directory the configuration was loaded from. Empty for configurations read from a
	// stream.
	Dir string `yaml:"-"`
}

// LoadConfig parses a project configuration from r.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	options:
//	  compress: true
//	targets:
//	  - name: site
//	    src: [styles/main.less]
//	    dest: public
//	`))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(cfg.Targets[0].Name)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal lesskeeper config")
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LevelNormal
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from path. The directory of path becomes the
// project root.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid configuration %s", path)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve directory of %s", path)
	}

	cfg.Dir = dir
	return cfg, nil
}

// Path returns the configuration file to use: the value of LESSKEEPER_CONFIG when set, otherwise
// lesskeeper.yaml in the working directory.
func Path() string {
	if path := strings.TrimSpace(os.Getenv(consts.ConfigEnvVar)); path != "" {
		return path
	}

	return consts.DefaultConfigFile
}

// Project creates the project described by the configuration.
func (c *Config) Project(log *zap.Logger, comp *compiler.Compiler) *project.Project {
	return project.New(project.ProjectParams{
		Dir:           c.Dir,
		Compiler:      comp,
		Logger:        log,
		Options:       c.Options,
		Targets:       c.Targets,
		WriteExpanded: c.WriteExpanded,
	})
}

func (c *Config) validate() error {
	if !validLevel(c.Logging.Level) {
		return errors.Errorf("invalid logging level %q (expected none, normal or debug)", c.Logging.Level)
	}

	seen := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		if t.Name == "" {
			return errors.Errorf("target %d has no name", i)
		}

		name := strings.ToLower(t.Name)
		if seen[name] {
			return errors.Errorf("duplicate target: %s", t.Name)
		}
		seen[name] = true

		if t.Dest == "" {
			return errors.Errorf("target %s has no dest", t.Name)
		}
	}

	return nil
}
