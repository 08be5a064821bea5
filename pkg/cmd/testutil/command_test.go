package testutil_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/pseudomuto/lesskeeper/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRunCommand(t *testing.T) {
	echo := &cli.Command{
		Name: "echo",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprint(cmd.Writer, cmd.Args().Slice())
			return err
		},
	}

	out, err := RunCommand(t, echo, "a", "b")
	require.NoError(t, err)
	require.Equal(t, "[a b]", out)

	// a second run gets a fresh buffer
	out, err = RunCommand(t, echo, "c")
	require.NoError(t, err)
	require.Equal(t, "[c]", out)
}
