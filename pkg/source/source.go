// Package source reads stylesheet source files and detects their newline convention.
//
// A Unit is a single file on disk as seen by the import resolver: its absolute path, its raw
// content, and the newline sequence it uses. Units are read once per distinct path during a
// resolution pass and never mutated.
//
//	unit, err := source.Read("styles/main.less")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	lines := strings.Split(unit.Content, unit.Newline)
package source

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
)

var newlinePattern = regexp.MustCompile(`\r?\n`)

// Unit is a single source file.
type Unit struct {
	// Path is the absolute path of the file
	Path string
	// Content is the raw file content
	Content string
	// Newline is the newline sequence detected in Content
	Newline string
}

// Lines splits the content on the unit's own newline.
func (u *Unit) Lines() []string {
	return splitLines(u.Content, u.Newline)
}

// DetectNewline returns the first newline sequence ("\r\n" or "\n") found in content. Content
// without any newline gets the platform linefeed.
func DetectNewline(content string) string {
	if nl := newlinePattern.FindString(content); nl != "" {
		return nl
	}

	return consts.Linefeed
}

// Read loads the file at path and detects its newline convention. The returned unit always
// carries an absolute path.
func Read(path string) (*Unit, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve path %s", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", abs)
	}

	content := string(data)
	return &Unit{
		Path:    abs,
		Content: content,
		Newline: DetectNewline(content),
	}, nil
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
