package routes

import (
	"context"
	"io"

	"github.com/mitchellh/cli"
)

func RegisterCommands(ctx context.Context, commands map[string]cli.CommandFactory, ui cli.Ui, logOutput io.Writer) {
	commands["routes"] = func() (cli.Command, error) {
		return NewCommand(), nil
	}

	commands["routes apply"] = func() (cli.Command, error) {
		return NewApplyCommand(ctx, ui, logOutput), nil
	}

	commands["routes delete"] = func() (cli.Command, error) {
		return NewDeleteCommand(ctx, ui, logOutput), nil
	}
}

func NewCommand() cli.Command {
	return &Command{}
}

type Command struct{}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

func (c *Command) Synopsis() string {
	return synopsis
}

func (c *Command) Help() string {
	return help
}

const synopsis = "Manage gateway Routes"
const help = `
Usage: kongsync routes <subcommand> [options] [args]

  This command has subcommands for converging gateway Route
  configuration. A Route is identified by its Service and the unordered
  combination of its hosts, paths, methods and protocols.

  Create or update the Route defined in "route.yaml":

    $ kongsync routes apply route.yaml

  Delete the Route matching the same definition:

    $ kongsync routes delete route.yaml

  For more examples, ask for subcommand help.
`
