package common

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/kr/text"
	"github.com/mitchellh/cli"

	"github.com/gatewayops/kongsync/internal/admin"
)

type CommonCLI struct {
	UI       cli.Ui
	output   io.Writer
	ctx      context.Context
	help     string
	synopsis string

	// Logging
	flagLogLevel string
	flagLogJSON  bool

	Flags *flag.FlagSet
}

func NewCommonCLI(ctx context.Context, help, synopsis string, ui cli.Ui, logOutput io.Writer, name string) *CommonCLI {
	cli := &CommonCLI{UI: ui, synopsis: synopsis, output: logOutput, ctx: ctx, Flags: flag.NewFlagSet(name, flag.ContinueOnError)}
	cli.init()

	cli.help = FlagUsage(help, cli.Flags)

	return cli
}

func (c *CommonCLI) init() {
	c.Flags.StringVar(&c.flagLogLevel, "log-level", "info",
		`Log verbosity level. Supported values (in order of detail) are "trace", "debug", "info", "warn", and "error".`)
	c.Flags.BoolVar(&c.flagLogJSON, "log-json", false,
		"Enable or disable JSON output format for logging.")

	c.Flags.SetOutput(c.output)
}

func (c *CommonCLI) Context() context.Context {
	return c.ctx
}

func (c *CommonCLI) LogLevel() string {
	return c.flagLogLevel
}

func (c *CommonCLI) Output() io.Writer {
	return c.output
}

func (c *CommonCLI) Logger(name string) hclog.Logger {
	return CreateLogger(c.output, c.flagLogLevel, c.flagLogJSON, name)
}

func (c *CommonCLI) Parse(args []string) error {
	return c.Flags.Parse(args)
}

func (c *CommonCLI) Error(message string, err error) int {
	c.UI.Error("There was an error " + message + ":\n\t" + err.Error())
	return 1
}

func (c *CommonCLI) Success(message string) int {
	c.UI.Output(message)
	return 0
}

func (c *CommonCLI) Synopsis() string {
	return c.synopsis
}

func (c *CommonCLI) Help() string {
	return c.help
}

type ClientCLI struct {
	*CommonCLI

	flagAddress    string // Admin API address for requests
	flagPort       uint   // Admin API port for requests
	flagToken      string // Admin token header value for requests
	flagUsername   string // Basic auth username for the admin API
	flagPassword   string // Basic auth password for the admin API
	flagScheme     string // Admin API scheme
	flagCAFile     string // Admin API TLS CA file for TLS verification
	flagSkipVerify bool   // Skip certificate verification for client
}

func NewClientCLI(ctx context.Context, help, synopsis string, ui cli.Ui, logOutput io.Writer, name string) *ClientCLI {
	cli := &ClientCLI{
		CommonCLI: NewCommonCLI(ctx, help, synopsis, ui, logOutput, name),
	}
	cli.init()
	cli.help = FlagUsage(help, cli.Flags)

	return cli
}

func (c *ClientCLI) init() {
	c.Flags.StringVar(&c.flagToken, "kong-admin-token", "", "Admin token to use for client.")
	c.Flags.StringVar(&c.flagUsername, "kong-admin-username", "", "Basic auth username to use for client.")
	c.Flags.StringVar(&c.flagPassword, "kong-admin-password", "", "Basic auth password to use for client.")
	c.Flags.StringVar(&c.flagAddress, "kong-admin-address", "localhost", "Admin API address to use for client.")
	c.Flags.UintVar(&c.flagPort, "kong-admin-port", 8001, "Admin API port to use for client.")
	c.Flags.StringVar(&c.flagScheme, "kong-admin-scheme", "http", "Admin API scheme to use for client.")
	c.Flags.StringVar(&c.flagCAFile, "kong-admin-ca-file", "", "Path to CA file for verifying admin API TLS certificate.")
	c.Flags.BoolVar(&c.flagSkipVerify, "kong-admin-skip-verify", false, "Skip certificate verification for TLS connection.")
}

func (c *ClientCLI) CreateClient() (*admin.Client, error) {
	var tlsConfig *admin.TLSConfiguration
	if c.flagScheme == "https" {
		tlsConfig = &admin.TLSConfiguration{
			CAFile:           c.flagCAFile,
			SkipVerification: c.flagSkipVerify,
		}
	}

	return admin.CreateClient(admin.Config{
		Address:          c.flagAddress,
		Port:             c.flagPort,
		Token:            GetAdminTokenOr(c.flagToken),
		Username:         c.flagUsername,
		Password:         c.flagPassword,
		TLSConfiguration: tlsConfig,
		Logger:           c.Logger("kongsync"),
	})
}

func FlagUsage(usage string, flags *flag.FlagSet) string {
	out := new(bytes.Buffer)
	out.WriteString(strings.TrimSpace(usage))
	out.WriteString("\n")
	out.WriteString("\n")

	printTitle(out, "Command Options")
	flags.VisitAll(func(f *flag.Flag) {
		printFlag(out, f)
	})

	return strings.TrimRight(out.String(), "\n")
}

// printTitle prints a consistently-formatted title to the given writer.
func printTitle(w io.Writer, s string) {
	fmt.Fprintf(w, "%s\n\n", s)
}

// printFlag prints a single flag to the given writer.
func printFlag(w io.Writer, f *flag.Flag) {
	example, _ := flag.UnquoteUsage(f)
	if example != "" {
		fmt.Fprintf(w, "  -%s=<%s>\n", f.Name, example)
	} else {
		fmt.Fprintf(w, "  -%s\n", f.Name)
	}

	indented := wrapAtLength(f.Usage, 5)
	fmt.Fprintf(w, "%s\n\n", indented)
}

// maxLineLength is the maximum width of any line.
const maxLineLength int = 72

// wrapAtLength wraps the given text at the maxLineLength, taking into account
// any provided left padding.
func wrapAtLength(s string, pad int) string {
	wrapped := text.Wrap(s, maxLineLength-pad)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}
