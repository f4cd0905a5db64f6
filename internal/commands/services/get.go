package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/common"
)

type GetCommand struct {
	*common.ClientCLI
}

func NewGetCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	return &GetCommand{
		ClientCLI: common.NewClientCLI(ctx, getHelp, getSynopsis, ui, logOutput, "get"),
	}
}

func (c *GetCommand) Run(args []string) int {
	if err := c.Parse(args); err != nil {
		return c.Error("parsing command line flags", err)
	}

	name := c.Flags.Arg(0)
	if name == "" {
		return c.Error("parsing arguments", errors.New("a name parameter must be provided"))
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	service, err := client.Services().Get(c.Context(), name)
	if err != nil {
		return c.Error("sending the request", err)
	}
	if service == nil {
		return c.Error("finding the service", fmt.Errorf("service %q not found", name))
	}

	data, err := json.MarshalIndent(service, "", "  ")
	if err != nil {
		return c.Error("rendering the service", err)
	}
	return c.Success(string(data))
}

const (
	getSynopsis = "Gets a configured Service"
	getHelp     = `
Usage: kongsync services get [options] NAME

  Gets the configured Service with the given NAME.

  Additional flags and more advanced use cases are detailed below.
`
)
