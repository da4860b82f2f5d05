package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/kcz17/loganalyzer/analyzer"
	"github.com/kcz17/loganalyzer/config"
	"github.com/kcz17/loganalyzer/logging"
	"github.com/kcz17/loganalyzer/publishing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

const (
	version           = "1.0.0"
	defaultConfigPath = "config.yml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the analyzer and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	flags := pflag.NewFlagSet("log-analyzer", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.StringP("config", "c", defaultConfigPath, "path to the YAML configuration file")
	showVersion := flags.Bool("version", false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if *showVersion {
		fmt.Fprintf(stdout, "log-analyzer %s\n", version)
		return 0
	}

	cfg, err := config.ReadConfig(*configPath, flags.Changed("config"))
	if err != nil {
		fmt.Fprintf(stderr, "unable to load configuration: %v\n", err)
		return 1
	}

	closeLog, err := logging.Init(cfg.LoggingLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "unable to set up logging: %v\n", err)
		return 1
	}
	defer closeLog()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("unexpected error")
			code = 1
		}
	}()

	metrics, err := logging.NewLogger(cfg.Metrics, stdout)
	if err != nil {
		log.Error().Err(err).Msg("unable to set up metrics")
		return 1
	}
	defer metrics.Close()

	publisher, err := publishing.New(ctx, cfg.Publish)
	if err != nil {
		log.Error().Err(err).Msg("unable to set up report publishing")
		return 1
	}

	outcome, err := analyzer.NewAnalyzer(*cfg, metrics, publisher).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted, no report written")
			return 0
		}
		log.Error().Err(err).Msg("analysis failed")
		return 1
	}

	log.Info().Stringer("outcome", outcome).Msg("done")
	return 0
}
