package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewayops/kongsync/internal/testing/gateway"
)

func writeDefinition(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "definition.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApply(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	definition := writeDefinition(t, `
name: web
host: web.internal
port: 8080
`)

	g.RunCLI(t, gateway.CLITest{
		Command: NewApplyCommand,
		Args:    []string{definition},
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "Successfully created service: web")
		},
	})

	g.RunCLI(t, gateway.CLITest{
		Command: NewApplyCommand,
		Args:    []string{definition},
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "Service already up to date: web")
		},
	})
}

func TestApplyMissingFile(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)

	g.RunCLI(t, gateway.CLITest{
		Command:    NewApplyCommand,
		ExitStatus: 1,
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "a file parameter must be provided")
		},
	})
}

func TestApplyInvalidDefinition(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	definition := writeDefinition(t, `
name: web
`)

	g.RunCLI(t, gateway.CLITest{
		Command:    NewApplyCommand,
		Args:       []string{definition},
		ExitStatus: 1,
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "host")
		},
	})
}
