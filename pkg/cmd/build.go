package cmd

import (
	"context"

	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"github.com/pseudomuto/lesskeeper/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// buildCmd builds the targets of the project configuration. Without arguments every target is
// built; otherwise only the named ones, in the order given.
//
// Every entry is compiled even when an earlier one fails. The command fails when at least one
// entry failed, after all destinations that could be written have been written.
//
// Examples:
//
//	# Build every target
//	lesskeeper build
//
//	# Build the site target and write site.max.css companions
//	lesskeeper build --expanded site
func buildCmd(cfg *config.Config, log *zap.Logger, comp *compiler.Compiler) *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Build the configured targets",
		ArgsUsage: "[target...]",
		Before:    requireConfig(cfg),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "expanded",
				Aliases: []string{"x"},
				Usage:   "Also write the expanded rendering to <name>.max.css",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			build := *cfg
			if cmd.IsSet("expanded") {
				build.WriteExpanded = cmd.Bool("expanded")
			}

			return build.Project(log, comp).Build(ctx, cmd.Args().Slice()...)
		},
	}
}
