package services

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
	spec := reconcile.ServiceSpec{}
	data, err := os.ReadFile(file)
	if err != nil {
		return c.Error("reading service definition file", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return c.Error("unmarshaling service definition file", err)
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	result, err := reconcile.New(client, c.Logger("kongsync")).ApplyService(c.Context(), spec)
	if err != nil {
		return c.Error("applying the service", err)
	}
	if !result.Changed {
		return c.Success(fmt.Sprintf("Service already up to date: %s", spec.Name))
	}
	return c.Success(fmt.Sprintf("Successfully %s service: %s", result.Action, spec.Name))
}

const (
	applySynopsis = "Creates or updates a Service"
	applyHelp     = `
Usage: kongsync services apply [options] FILE

  Converges the gateway to the Service defined in FILE. The file may be
  JSON or YAML. No call is made when the Service already matches the
  definition.

  Additional flags and more advanced use cases are detailed below.
`
)
