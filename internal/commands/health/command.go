package health

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/common"
)

func RegisterCommands(ctx context.Context, commands map[string]cli.CommandFactory, ui cli.Ui, logOutput io.Writer) {
	commands["health"] = func() (cli.Command, error) {
		return NewCommand(ctx, ui, logOutput), nil
	}
}

type Command struct {
	*common.ClientCLI
}

func NewCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	return &Command{
		ClientCLI: common.NewClientCLI(ctx, help, synopsis, ui, logOutput, "health"),
	}
}

func (c *Command) Run(args []string) int {
	if err := c.Parse(args); err != nil {
		return c.Error("parsing command line flags", err)
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	version, err := client.Version(c.Context())
	if err != nil {
		return c.Error("fetching the gateway version", err)
	}
	healthy, err := client.Healthy(c.Context())
	if err != nil {
		return c.Error("fetching the gateway status", err)
	}
	if !healthy {
		return c.Error("checking gateway health", fmt.Errorf("gateway %s reports its database as unreachable", version))
	}

	return c.Success(fmt.Sprintf("Successfully retrieved gateway health: version %s, database reachable", version))
}

const (
	synopsis = "Gets the health of the gateway Admin API"
	help     = `
Usage: kongsync health [options]

  Fetches the gateway version and status and reports whether the
  gateway considers its backing database reachable.

  Additional flags and more advanced use cases are detailed below.
`
)
