package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/output"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// compileCmd compiles a single entry file without a project configuration.
//
// Without --out the compiled stylesheet is written to stdout. With --out it is written to the
// given file, and --expanded additionally writes the expanded rendering next to it.
//
// Examples:
//
//	# Print the expanded rendering
//	lesskeeper compile styles/main.less
//
//	# Minify into public/main.css with a source map
//	lesskeeper compile styles/main.less -c -o public/main.css --source-map public/main.css.map
func compileCmd(log *zap.Logger, comp *compiler.Compiler) *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compile a single stylesheet",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write the stylesheet to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "compress",
				Aliases: []string{"c"},
				Usage:   "Remove optional whitespace",
			},
			&cli.BoolFlag{
				Name:  "cleancss",
				Usage: "Compress and optimize the output",
			},
			&cli.BoolFlag{
				Name:  "strict-imports",
				Usage: "Reject @import inside blocks",
			},
			&cli.StringFlag{
				Name:  "source-map",
				Usage: "Write a source map to `FILE`",
			},
			&cli.StringFlag{
				Name:  "line-numbers",
				Usage: "Emit debug info: comments, mediaquery or all",
			},
			&cli.StringFlag{
				Name:  "rootpath",
				Usage: "Prefix for relative url() references",
			},
			&cli.StringFlag{
				Name:  "banner",
				Usage: "Text prepended to the output",
			},
			&cli.BoolFlag{
				Name:    "expanded",
				Aliases: []string{"x"},
				Usage:   "With --out, also write the expanded rendering to <name>.max.css",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one file argument is required")
			}

			opts := compiler.Options{
				Compress:          cmd.Bool("compress"),
				CleanCSS:          cmd.Bool("cleancss"),
				StrictImports:     cmd.Bool("strict-imports"),
				SourceMapFilename: cmd.String("source-map"),
				DumpLineNumbers:   cmd.String("line-numbers"),
				Rootpath:          cmd.String("rootpath"),
				Banner:            cmd.String("banner"),
			}

			res := comp.Compile(cmd.Args().First(), opts)
			if res.Failed() {
				return res.Err
			}

			if res.SourceMap != "" && opts.SourceMapFilename != "" {
				if err := output.WriteSourceMap(log, opts.SourceMapFilename, res.SourceMap, opts.Banner); err != nil {
					return err
				}
			}

			out := cmd.String("out")
			if out == "" {
				if _, err := fmt.Fprint(cmd.Writer, opts.Banner+res.Minified); err != nil {
					return errors.Wrap(err, "failed to write compiled stylesheet")
				}

				return nil
			}

			asm := output.NewAssembler(output.WithLogger(log), output.WithExpanded(cmd.Bool("expanded")))
			asm.Add(out, res, opts)
			return asm.Write()
		},
	}
}
