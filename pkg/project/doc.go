// Package project drives stylesheet builds for a lesskeeper project.
//
// A project is a directory holding a lesskeeper.yaml file that declares
// global compile options and a list of targets. Each target names a working
// directory, glob patterns of entry files relative to it, a destination
// directory, and options that override the global ones.
//
// # Project Structure
//
// The starter project created by Initialize follows this layout:
//
//	project-root/
//	├── lesskeeper.yaml     # Options and targets
//	└── styles/
//	    ├── main.less       # Entry point
//	    └── base.less       # Imported by main.less
//
// # Building
//
// Build expands the sources of every selected target, compiles each entry
// with the merged options, writes source maps when sourceMapFilename is set,
// and hands the results to an output.Assembler. Entries with the .less
// extension are written to <dest>/<name up to the first dot>.css; results
// mapped to the same destination are concatenated in source order.
//
//	proj := project.New(project.ProjectParams{
//		Dir:     ".",
//		Logger:  log,
//		Options: cfg.Options,
//		Targets: cfg.Targets,
//	})
//
//	if err := proj.Build(ctx, "site"); err != nil {
//		// err combines every failed entry of the build
//	}
package project
