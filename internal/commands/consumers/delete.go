package consumers

import (
	"context"
	"fmt"
	"io"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/common"
	"github.com/gatewayops/kongsync/internal/reconcile"
)

type DeleteCommand struct {
	*common.ClientCLI

	flagUsername string
	flagCustomID string
}

func NewDeleteCommand(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command {
	command := &DeleteCommand{
		ClientCLI: common.NewClientCLI(ctx, deleteHelp, deleteSynopsis, ui, logOutput, "delete"),
	}
	command.Flags.StringVar(&command.flagUsername, "username", "", "Username of the Consumer to delete.")
	command.Flags.StringVar(&command.flagCustomID, "custom-id", "", "Custom id of the Consumer to delete.")
	return command
}

func (c *DeleteCommand) Run(args []string) int {
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

	result, err := reconcile.New(client, c.Logger("kongsync")).DeleteConsumer(c.Context(), spec)
	if err != nil {
		return c.Error("deleting the consumer", err)
	}
	if !result.Changed {
		return c.Success("No consumer to delete")
	}
	return c.Success(fmt.Sprintf("Successfully deleted consumer: %s", result.ID))
}

const (
	deleteSynopsis = "Deletes a Consumer"
	deleteHelp     = `
Usage: kongsync consumers delete [options]

  Deletes the Consumer identified by -username or -custom-id if it
  exists.

  Additional flags and more advanced use cases are detailed below.
`
)
