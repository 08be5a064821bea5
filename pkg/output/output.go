// Package output names destination files and writes compiled stylesheets.
//
// An Assembler collects results per destination in the order they were
// added, then writes each destination once:
//
//	asm := output.NewAssembler(output.WithLogger(log))
//	asm.Add("public/site.css", result, opts)
//	if err := asm.Write(); err != nil {
//	    return err
//	}
package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/pseudomuto/lesskeeper/pkg/sourcemap"
	"go.uber.org/zap"
)

// DestPath computes the output file for src, a path relative to the
// target's working directory. Sources with the .less extension are
// truncated at their first dot and given the .css extension. Other sources
// keep their name.
func DestPath(dest, src string) string {
	if filepath.Ext(src) != consts.SourceExt {
		return filepath.Join(dest, src)
	}

	if i := strings.Index(src, "."); i >= 0 {
		src = src[:i]
	}

	return filepath.Join(dest, src+consts.OutputExt)
}

// ExpandedPath returns the companion path for the expanded rendering of a
// destination, e.g. site.css -> site.max.css.
func ExpandedPath(dest string) string {
	ext := filepath.Ext(dest)
	return strings.TrimSuffix(dest, ext) + consts.ExpandedSuffix + ext
}

// WriteSourceMap writes a source map, creating parent directories. Mappings are shifted past banner,
// the text written in front of the stylesheet the map describes.
func WriteSourceMap(log *zap.Logger, path, text, banner string) error {
	text, err := sourcemap.Shift(text, banner)
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	if err := writeFile(path, text); err != nil {
		return err
	}

	if log != nil {
		log.Info("File created", zap.String("path", path))
	}

	return nil
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), consts.ModeDir); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	if err := os.WriteFile(path, []byte(text), consts.ModeFile); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return nil
}
