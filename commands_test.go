package main

import (
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/require"
)

func TestHelpFilter(t *testing.T) {
	ui := cli.NewMockUi()

	commands := initializeCommands(ui)
	output := helpFunc(commands)(commands)

	require.Contains(t, output, "services")
	require.Contains(t, output, "health")
	require.NotContains(t, output, "services apply")
}
