package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/lesskeeper/pkg/config"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/stretchr/testify/require"
)

// ProjectFixture is a temporary project directory with a loaded configuration.
type ProjectFixture struct {
	Dir    string
	Config *config.Config
}

// WriteFiles creates files (relative path to content) under a new temporary directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
		require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))
	}

	return dir
}

// TestProject writes files plus the given lesskeeper.yaml and loads it.
func TestProject(t *testing.T, configYAML string, files map[string]string) *ProjectFixture {
	t.Helper()

	dir := WriteFiles(t, files)
	path := filepath.Join(dir, consts.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(configYAML), consts.ModeFile))

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err, "Failed to load config file")

	return &ProjectFixture{Dir: dir, Config: cfg}
}

// Path returns the absolute path of a project file.
func (p *ProjectFixture) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Dir}, elem...)...)
}

// RequireFileContent asserts that path exists and holds exactly want.
func RequireFileContent(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read file: %s", path)
	require.Equal(t, want, string(data), "Unexpected content in %s", path)
}
