package plugins

import (
	"context"
	"io"

	"github.com/mitchellh/cli"
)

func RegisterCommands(ctx context.Context, commands map[string]cli.CommandFactory, ui cli.Ui, logOutput io.Writer) {
	commands["plugins"] = func() (cli.Command, error) {
		return NewCommand(), nil
	}

	commands["plugins apply"] = func() (cli.Command, error) {
		return NewApplyCommand(ctx, ui, logOutput), nil
	}

	commands["plugins delete"] = func() (cli.Command, error) {
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

const synopsis = "Manage gateway Plugins"
const help = `
Usage: kongsync plugins <subcommand> [options] [args]

  This command has subcommands for converging gateway Plugin
  configuration. A Plugin is identified by its type name and the
  combination of Service, Route and Consumer it is bound to; at most
  one instance may exist for that combination.

  Create or update the Plugin defined in "plugin.yaml":

    $ kongsync plugins apply plugin.yaml

  Delete the Plugin matching the same definition:

    $ kongsync plugins delete plugin.yaml

  For more examples, ask for subcommand help.
`
