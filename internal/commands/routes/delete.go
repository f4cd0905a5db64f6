package routes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/cli"
	"sigs.k8s.io/yaml"

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

	file := c.Flags.Arg(0)
	if file == "" {
		return c.Error("parsing arguments", errors.New("a file parameter must be provided"))
	}
	spec := reconcile.RouteSpec{}
	data, err := os.ReadFile(file)
	if err != nil {
		return c.Error("reading route definition file", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return c.Error("unmarshaling route definition file", err)
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	result, err := reconcile.New(client, c.Logger("kongsync")).DeleteRoute(c.Context(), spec)
	if err != nil {
		return c.Error("deleting the route", err)
	}
	if !result.Changed {
		return c.Success("No route to delete")
	}
	return c.Success(fmt.Sprintf("Successfully deleted route: %s", result.ID))
}

const (
	deleteSynopsis = "Deletes a Route"
	deleteHelp     = `
Usage: kongsync routes delete [options] FILE

  Deletes the Route matching the definition in FILE. Nothing is deleted
  when no Route matches.

  Additional flags and more advanced use cases are detailed below.
`
)
