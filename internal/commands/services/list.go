package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/common"
)

type ListCommand struct {
	*common.ClientCLI
}

func NewListCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	return &ListCommand{
		ClientCLI: common.NewClientCLI(ctx, listHelp, listSynopsis, ui, logOutput, "list"),
	}
}

func (c *ListCommand) Run(args []string) int {
	if err := c.Parse(args); err != nil {
		return c.Error("parsing command line flags", err)
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	services, err := client.Services().ListAll(c.Context())
	if err != nil {
		return c.Error("sending the request", err)
	}

	lines := make([]string, 0, len(services))
	for _, service := range services {
		lines = append(lines, fmt.Sprintf("%s\t%s", service.ID, service.Name))
	}
	return c.Success(strings.Join(lines, "\n"))
}

const (
	listSynopsis = "Lists configured Services"
	listHelp     = `
Usage: kongsync services list [options]

  Lists every configured Service with its id.

  Additional flags and more advanced use cases are detailed below.
`
)
