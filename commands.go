package main

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/commands/consumers"
	"github.com/gatewayops/kongsync/internal/commands/health"
	"github.com/gatewayops/kongsync/internal/commands/plugins"
	"github.com/gatewayops/kongsync/internal/commands/routes"
	"github.com/gatewayops/kongsync/internal/commands/services"
	cmdVersion "github.com/gatewayops/kongsync/internal/commands/version"
	"github.com/gatewayops/kongsync/internal/version"
)

// initializeCommands returns the mapping of all available kongsync
// commands.
func initializeCommands(ui cli.Ui) map[string]cli.CommandFactory {
	ctx := context.Background()
	logOutput := os.Stderr

	commands := map[string]cli.CommandFactory{
		"version": func() (cli.Command, error) {
			return &cmdVersion.Command{UI: ui, Version: version.GetHumanVersion()}, nil
		},
	}

	services.RegisterCommands(ctx, commands, ui, logOutput)
	routes.RegisterCommands(ctx, commands, ui, logOutput)
	consumers.RegisterCommands(ctx, commands, ui, logOutput)
	plugins.RegisterCommands(ctx, commands, ui, logOutput)
	health.RegisterCommands(ctx, commands, ui, logOutput)

	return commands
}

// helpFunc keeps the top-level help output to the command namespaces.
// Subcommands can still be executed and show up in their namespace's
// own help output.
func helpFunc(commands map[string]cli.CommandFactory) cli.HelpFunc {
	var include []string
	for k := range commands {
		if !strings.Contains(k, " ") {
			include = append(include, k)
		}
	}
	sort.Strings(include)

	return cli.FilteredHelpFunc(include, cli.BasicHelpFunc("kongsync"))
}
