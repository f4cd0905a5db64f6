package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatewayops/kongsync/internal/testing/gateway"
)

func TestGet(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	g.AddService("web", "web.internal")

	g.RunCLI(t, gateway.CLITest{
		Command: NewGetCommand,
		Args:    []string{"web"},
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, `"name": "web"`)
			assert.Contains(t, output, `"host": "web.internal"`)
		},
	})
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)

	g.RunCLI(t, gateway.CLITest{
		Command:    NewGetCommand,
		Args:       []string{"nonexistent"},
		ExitStatus: 1,
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "not found")
		},
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	g.SetPageSize(1)
	g.AddService("web", "web.internal")
	g.AddService("api", "api.internal")

	g.RunCLI(t, gateway.CLITest{
		Command: NewListCommand,
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "web")
			assert.Contains(t, output, "api")
		},
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	g := gateway.TestGateway(t)
	g.AddService("web", "web.internal")

	g.RunCLI(t, gateway.CLITest{
		Command: NewDeleteCommand,
		Args:    []string{"web"},
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "Successfully deleted service: web")
		},
	})

	g.RunCLI(t, gateway.CLITest{
		Command: NewDeleteCommand,
		Args:    []string{"web"},
		OutputCheck: func(t *testing.T, output string) {
			assert.Contains(t, output, "No service to delete: web")
		},
	})
}
