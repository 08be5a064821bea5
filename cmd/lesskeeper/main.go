package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pseudomuto/lesskeeper/pkg/cmd"
	"github.com/pseudomuto/lesskeeper/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(&cmd.Version{Version: version, Commit: commit, Timestamp: date}),
		fx.Provide(
			func() context.Context { return ctx },
			func() []string { return os.Args },
		),
		config.Module,
		cmd.Module,
	)

	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app.Run()
}
