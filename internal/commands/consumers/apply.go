package consumers

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/common"
	"github.com/gatewayops/kongsync/internal/reconcile"
)

type ApplyCommand struct {
	*common.ClientCLI

	flagUsername string
	flagCustomID string
}

func NewApplyCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	command := &ApplyCommand{
		ClientCLI: common.NewClientCLI(ctx, applyHelp, applySynopsis, ui, logOutput, "apply"),
	}
	command.Flags.StringVar(&command.flagUsername, "username", "", "Username of the Consumer to install.")
	command.Flags.StringVar(&command.flagCustomID, "custom-id", "", "Custom id of the Consumer to install.")
	return command
}

func (c *ApplyCommand) Run(args []string) int {
	if err := c.Parse(args); err != nil {
		return c.Error("parsing command line flags", err)
	}

	spec := reconcile.ConsumerSpec{
		Username: c.flagUsername,
		CustomID: c.flagCustomID,
	}

	client, err := c.CreateClient()
	if err != nil {
		return c.Error("creating the client", err)
	}

	result, err := reconcile.New(client, c.Logger("kongsync")).ApplyConsumer(c.Context(), spec)
	if err != nil {
		return c.Error("applying the consumer", err)
	}
	if !result.Changed {
		return c.Success(fmt.Sprintf("Consumer already present: %s", result.ID))
	}
	return c.Success(fmt.Sprintf("Successfully created consumer: %s", result.ID))
}

const (
	applySynopsis = "Installs a Consumer"
	applyHelp     = `
Usage: kongsync consumers apply [options]

  Installs a Consumer identified by -username or -custom-id. An
  existing Consumer is left untouched.

  Additional flags and more advanced use cases are detailed below.
`
)
