package plugins

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
	spec := reconcile.PluginSpec{}
	data, err := os.ReadFile(file)
	if err != nil {
		return c.Error("reading plugin definition file", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return c.Error("unmarshaling plugin definition file", err)
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	result, err := reconcile.New(client, c.Logger("kongsync")).DeletePlugin(c.Context(), spec)
	if err != nil {
		return c.Error("deleting the plugin", err)
	}
	if !result.Changed {
		return c.Success("No plugin to delete")
	}
	return c.Success(fmt.Sprintf("Successfully deleted plugin: %s", result.ID))
}

const (
	deleteSynopsis = "Deletes a Plugin"
	deleteHelp     = `
Usage: kongsync plugins delete [options] FILE

  Deletes the Plugin matching the definition in FILE. Nothing is
  deleted when no Plugin matches.

  Additional flags and more advanced use cases are detailed below.
`
)
