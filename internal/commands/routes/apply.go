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

type ApplyCommand struct {
	*common.ClientCLI
}

func NewApplyCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	return &ApplyCommand{
		ClientCLI: common.NewClientCLI(ctx, applyHelp, applySynopsis, ui, logOutput, "apply"),
	}
}

func (c *ApplyCommand) Run(args []string) int {
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

	result, err := reconcile.New(client, c.Logger("kongsync")).ApplyRoute(c.Context(), spec)
	if err != nil {
		return c.Error("applying the route", err)
	}
	if !result.Changed {
		return c.Success(fmt.Sprintf("Route already up to date: %s", result.ID))
	}
	return c.Success(fmt.Sprintf("Successfully %s route: %s", result.Action, result.ID))
}

const (
	applySynopsis = "Creates or updates a Route"
	applyHelp     = `
Usage: kongsync routes apply [options] FILE

  Converges the gateway to the Route defined in FILE. The file may be
  JSON or YAML and must reference an existing Service by name.

  Additional flags and more advanced use cases are detailed below.
`
)
