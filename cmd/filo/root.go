package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/opts"
	"github.com/walteh/filo/pkg/engine"
	"github.com/walteh/filo/pkg/fsys"
	"github.com/walteh/filo/pkg/report"
	"github.com/walteh/filo/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	rulesFile string
	debug     bool
)

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	logger := zerolog.Ctx(ctx)

	path := rulesFile
	if path == "" {
		path = rule.DefaultPath()
	}

	// A missing rule file is an empty rule set, not an error.
	var ruleFile *rule.File
	if _, err := os.Stat(path); err == nil {
		ruleFile, err = rule.Load(path)
		if err != nil {
			return nil, errors.Errorf("loading rules: %w", err)
		}
	} else {
		ruleFile = &rule.File{Version: rule.CurrentVersion}
	}
	logger.Debug().Str("path", path).Int("rules", len(ruleFile.Rules)).Msg("rules loaded")

	printer := report.New(os.Stdout, *logger)

	return &opts.RootOpts{
		RuleFile:    ruleFile,
		RulePath:    path,
		Coordinator: engine.New(fsys.OS{}),
		Printer:     printer,
		Sink:        report.NewConsoleSink(*logger),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&rulesFile, "rules", "r", "", "rule file path (default: user config dir)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
