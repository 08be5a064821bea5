// Package cmd provides CLI commands for the lesskeeper tool.
//
// # Available Commands
//
//   - build: Build the targets declared in lesskeeper.yaml
//   - compile: Compile a single file without configuration
//   - resolve: Print a file with its imports inlined
//   - init: Create a starter project
//
// # Command Structure
//
// Each command is implemented as a function returning a *cli.Command,
// following the urfave/cli/v3 pattern. Commands receive their dependencies
// (configuration, logger, compiler) as arguments and are collected through
// the fx "commands" group by Module.
//
// # Example Usage
//
//	lesskeeper init                          # Create lesskeeper.yaml and styles/
//	lesskeeper build                         # Build every target
//	lesskeeper build site --expanded         # Build one target with .max.css companions
//	lesskeeper compile main.less -c          # Print the minified stylesheet
//	lesskeeper resolve main.less --list      # List the files main.less includes
//
// Any compile failure makes build exit with status 1 after every other
// entry has been built and written.
package cmd
