// Command mf-returns computes SIP and lumpsum returns and capital gains tax
// for mutual fund investments, or serves the same calculations over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/joho/godotenv"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormat := flag.String("output-format", "", "type of output override: pretty, csv, json, xlsx")
	outputFile := flag.String("output-file", "", "file to write output to (required for xlsx)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	envFile := flag.String("env-file", ".env", "file of environment variables to load before the configuration")

	a := &app{stdout: os.Stdout}
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&sipCmd{app: a}, "returns")
	commander.Register(&lumpsumCmd{app: a}, "returns")
	commander.Register(&taxCmd{app: a}, "returns")
	commander.Register(&analyzeCmd{app: a}, "returns")
	commander.Register(&serveCmd{app: a}, "server")

	flag.Parse()

	// A missing .env file is normal; the variables may already be set.
	_ = godotenv.Load(*envFile)

	if err := a.init(*configLocation, *logLevel, *outputFormat, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize\", \"error\": %q}\n", err.Error())
		os.Exit(int(subcommands.ExitFailure))
	}
	status := commander.Execute(context.Background())
	_ = a.logger.Sync()
	os.Exit(int(status))
}
