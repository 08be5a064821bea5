package consts

import (
	"os"
	"runtime"
)

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// SourceExt is the extension of stylesheet sources. Entries with this extension are renamed to
	// OutputExt when written, and extension-less imports are retried with it.
	SourceExt = ".less"

	// OutputExt is the extension of compiled stylesheets
	OutputExt = ".css"

	// ExpandedSuffix is inserted before OutputExt for the unminified companion artifact
	ExpandedSuffix = ".max"

	// DefaultConfigFile is the project configuration file looked up in the working directory
	DefaultConfigFile = "lesskeeper.yaml"

	// ConfigEnvVar overrides DefaultConfigFile
	ConfigEnvVar = "LESSKEEPER_CONFIG"
)

// Linefeed is the platform newline, used when a file contains no newline of its own and when
// joining compiled results.
var Linefeed = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()
