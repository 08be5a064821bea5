package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/lesskeeper/pkg/config"
	"github.com/pseudomuto/lesskeeper/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Logger     *zap.Logger
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the lesskeeper CLI application to run once the fx application has started. The
// application shuts down with exit code 1 when the command fails and 0 otherwise.
//
// The configuration file is lesskeeper.yaml in the working directory unless LESSKEEPER_CONFIG
// names another file. Commands that need it (build) fail when it does not exist.
//
// Example usage:
//
//	lesskeeper build
//	lesskeeper build site admin
//	lesskeeper compile styles/main.less --compress --out public/main.css
//	lesskeeper resolve styles/main.less
//	lesskeeper init
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := newApp(p.Version.Version, p.Commands)

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			p.Logger.Error("Error running command", zap.Error(err))
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func newApp(version string, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "lesskeeper",
		Usage: "Compile stylesheet projects",
		Description: `lesskeeper resolves @import directives into a single document, compiles it,
and writes the minified (and optionally expanded) stylesheets of every
configured target. The configuration is read from ` + consts.DefaultConfigFile + ` unless
` + consts.ConfigEnvVar + ` names another file.`,
		Version:  version,
		Commands: commands,
	}
}

func requireConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfg == nil {
			return ctx, errors.Errorf("%s not found", config.Path())
		}

		return ctx, nil
	}
}
