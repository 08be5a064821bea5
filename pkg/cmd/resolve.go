package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/pseudomuto/lesskeeper/pkg/resolver"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// resolveCmd prints the document produced by inlining every @import of a file. It is the input
// the compiler parses, which makes it useful for locating errors reported against it.
//
// Examples:
//
//	lesskeeper resolve styles/main.less
//	lesskeeper resolve --list styles/main.less
func resolveCmd(log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print a stylesheet with its imports inlined",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write the document to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "Print the included files instead of the document",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one file argument is required")
			}

			doc, err := resolver.New(resolver.WithLogger(log)).Resolve(cmd.Args().First())
			if err != nil {
				return err
			}

			if cmd.Bool("list") {
				for _, path := range doc.Includes {
					if _, err := fmt.Fprintln(cmd.Writer, path); err != nil {
						return errors.Wrap(err, "failed to write included files")
					}
				}

				return nil
			}

			if out := cmd.String("out"); out != "" {
				if err := os.WriteFile(out, []byte(doc.Text), consts.ModeFile); err != nil {
					return errors.Wrapf(err, "failed to write %s", out)
				}

				return nil
			}

			if _, err := fmt.Fprint(cmd.Writer, doc.Text); err != nil {
				return errors.Wrap(err, "failed to write resolved document")
			}

			return nil
		},
	}
}
