package gateway

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
)

type CLITest struct {
	Command     func(ctx context.Context, ui cli.Ui, logOutput io.Writer) cli.Command
	Args        []string
	ExitStatus  int
	OutputCheck func(t *testing.T, output string)
	Timeout     time.Duration
}

// RunCLI runs a command against the fake gateway and checks its exit
// status and combined output.
func (g *Gateway) RunCLI(t *testing.T, tt CLITest) {
	t.Helper()

	timeout := tt.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	address, port := g.Address(t)

	var buffer bytes.Buffer
	command := tt.Command(ctx, &cli.BasicUi{Writer: &buffer, ErrorWriter: &buffer}, &buffer)
	assert.Equal(t, tt.ExitStatus, command.Run(append([]string{
		"-log-level", "error",
		"-kong-admin-address", address,
		"-kong-admin-port", strconv.Itoa(int(port)),
	}, tt.Args...)))

	if tt.OutputCheck != nil {
		tt.OutputCheck(t, buffer.String())
	}
}
