package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/lesskeeper/pkg/project"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// initCmd creates a starter project in the given directory. Existing files are left untouched,
// so running it in an existing project only adds what is missing.
func initCmd(log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "the project directory",
				Value:   ".",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")
			if err := project.New(project.ProjectParams{Dir: dir, Logger: log}).Initialize(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Initialized lesskeeper project in %s\n", dir)
			return nil
		},
	}
}
