package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/common"
	"github.com/gatewayops/kongsync/internal/reconcile"
)

type DeleteCommand struct {
	*common.ClientCLI
}

func NewDeleteCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	return &DeleteCommand{
		ClientCLI: common.NewClientCLI(ctx, deleteHelp, deleteSynopsis, ui, logOutput, "delete"),
	}
}

func (c *DeleteCommand) Run(args []string) int {
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

	result, err := reconcile.New(client, c.Logger("kongsync")).DeleteService(c.Context(), name)
	if err != nil {
		return c.Error("deleting the service", err)
	}
	if !result.Changed {
		return c.Success(fmt.Sprintf("No service to delete: %s", name))
	}
	return c.Success(fmt.Sprintf("Successfully deleted service: %s", name))
}

const (
	deleteSynopsis = "Deletes a Service"
	deleteHelp     = `
Usage: kongsync services delete [options] NAME

  Deletes the Service with the given NAME if it exists.

  Additional flags and more advanced use cases are detailed below.
`
)
