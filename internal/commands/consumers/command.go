package consumers

import (
	"context"
	"io"

	"github.com/mitchellh/cli"
)

func RegisterCommands(ctx context.Context, commands map[string]cli.CommandFactory, ui cli.Ui, logOutput io.Writer) {
	commands["consumers"] = func() (cli.Command, error) {
		return NewCommand(), nil
	}

	commands["consumers apply"] = func() (cli.Command, error) {
		return NewApplyCommand(ctx, ui, logOutput), nil
	}

	commands["consumers delete"] = func() (cli.Command, error) {
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

const synopsis = "Manage gateway Consumers"
const help = `
Usage: kongsync consumers <subcommand> [options] [args]

  This command has subcommands for converging gateway Consumer
  configuration.

  Install the Consumer with username "alice":

    $ kongsync consumers apply -username alice

  Delete it again:

    $ kongsync consumers delete -username alice

  For more examples, ask for subcommand help.
`
