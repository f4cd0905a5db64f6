package services

import (
	"context"
	"io"

	"github.com/mitchellh/cli"
)

func RegisterCommands(ctx context.Context, commands map[string]cli.CommandFactory, ui cli.Ui, logOutput io.Writer) {
	commands["services"] = func() (cli.Command, error) {
		return NewCommand(), nil
	}

	commands["services apply"] = func() (cli.Command, error) {
		return NewApplyCommand(ctx, ui, logOutput), nil
	}

	commands["services delete"] = func() (cli.Command, error) {
		return NewDeleteCommand(ctx, ui, logOutput), nil
	}

	commands["services get"] = func() (cli.Command, error) {
		return NewGetCommand(ctx, ui, logOutput), nil
	}

	commands["services list"] = func() (cli.Command, error) {
		return NewListCommand(ctx, ui, logOutput), nil
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

const synopsis = "Manage gateway Services"
const help = `
Usage: kongsync services <subcommand> [options] [args]

  This command has subcommands for converging gateway Service
  configuration. Here are some simple examples, and more detailed
  examples are available in the subcommands.

  Create or update the Service defined in "service.yaml":

    $ kongsync services apply service.yaml

  Read the Service named "my-service" back:

    $ kongsync services get my-service

  List configured Services:

    $ kongsync services list

  Finally, delete the Service named "my-service":

    $ kongsync services delete my-service

  For more examples, ask for subcommand help.
`
