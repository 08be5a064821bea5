package cmd

import (
	"path/filepath"
	"testing"

	"github.com/pseudomuto/lesskeeper/pkg/cmd/testutil"
	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompileCommand_RequiresFile(t *testing.T) {
	_, err := testutil.RunCommand(t, compileCmd(zap.NewNop(), compiler.New()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one file argument is required")
}

func TestCompileCommand_Stdout(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"main.less": "@import 'base.less';\na { color: red; }\n",
		"base.less": "body { margin: 0; }\n",
	})
	entry := filepath.Join(dir, "main.less")

	t.Run("expanded", func(t *testing.T) {
		out, err := testutil.RunCommand(t, compileCmd(zap.NewNop(), compiler.New()), entry)
		require.NoError(t, err)
		require.Equal(t, "body {\n  margin: 0;\n}\na {\n  color: red;\n}\n", out)
	})

	t.Run("compressed with banner", func(t *testing.T) {
		out, err := testutil.RunCommand(t, compileCmd(zap.NewNop(), compiler.New()), "-c", "--banner", "/*!b*/", entry)
		require.NoError(t, err)
		require.Equal(t, "/*!b*/body{margin:0}a{color:red}", out)
	})
}

func TestCompileCommand_OutFile(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"main.less": "a {\n  color: #FF0000;\n}\n",
	})
	out := filepath.Join(dir, "public", "main.css")
	sourceMap := filepath.Join(dir, "public", "main.css.map")

	printed, err := testutil.RunCommand(t, compileCmd(zap.NewNop(), compiler.New()),
		"-c", "-x", "-o", out, "--source-map", sourceMap, filepath.Join(dir, "main.less"),
	)
	require.NoError(t, err)
	require.Empty(t, printed)

	testutil.RequireFileContent(t, filepath.Join(dir, "public", "main.max.css"), "a {\n  color: #FF0000;\n}\n")
	require.FileExists(t, sourceMap)
	require.FileExists(t, out)
}

func TestCompileCommand_Failure(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"broken.less": "a {"})

	_, err := testutil.RunCommand(t, compileCmd(zap.NewNop(), compiler.New()), filepath.Join(dir, "broken.less"))
	require.Error(t, err)

	var cerr *compiler.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, compiler.KindParse, cerr.Kind)
}
