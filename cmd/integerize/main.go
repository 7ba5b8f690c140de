// Command integerize rounds allocations to integers that match
// authoritative controls. Every subcommand reads one JSON problem (a file
// or stdin) and writes one JSON result to stdout; logs go to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/katalvlaran/integerize/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Config    kong.ConfigFlag `help:"Load flag defaults from a JSON file."`
	LogLevel  string          `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"INTEGERIZE_LOG_LEVEL" help:"Log level (${enum})."`
	LogFormat string          `name:"log-format" default:"text" enum:"text,json" env:"INTEGERIZE_LOG_FORMAT" help:"Log format (${enum})."`
	NoColor   bool            `name:"no-color" env:"NO_COLOR" help:"Disable colors in text logs."`
	Seed      int64           `default:"42" env:"INTEGERIZE_SEED" help:"Seed of the random generator."`

	Vector   VectorCmd   `cmd:"" help:"Round a vector to a scalar control."`
	Matrix   MatrixCmd   `cmd:"" help:"Round a matrix to row and column controls."`
	Balance  BalanceCmd  `cmd:"" help:"Fit an N-dimensional array to marginals (IPF)."`
	Round    RoundCmd    `cmd:"" help:"Round an N-dimensional array to integer marginals."`
	Generate GenerateCmd `cmd:"" help:"Generate a synthetic rounding problem."`
	Version  VersionCmd  `cmd:"" help:"Print version information."`
}

// runEnv is bound to every command's Run method.
type runEnv struct {
	ctx  context.Context
	log  *slog.Logger
	in   io.Reader
	out  io.Writer
	seed int64
}

// rng returns a fresh generator seeded from --seed.
func (e *runEnv) rng() *rand.Rand {
	return rand.New(rand.NewSource(e.seed))
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("integerize"),
		kong.Description("Controlled integerization: round allocations to integers matching controls."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, "~/.config/integerize/config.json"),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	log := logging.New(stderr, level, format, logging.Options{NoColor: cli.NoColor}).
		With("run", uuid.NewString(), "cmd", kctx.Command())

	return kctx.Run(&runEnv{ctx: ctx, log: log, in: stdin, out: stdout, seed: cli.Seed})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "integerize:", err)
		stop()
		os.Exit(1)
	}
}
