package utils

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/0xRadioAc7iv/go-quickdata/internal"
)

// HandleCLIInputs parses the flags shared by the quickdata binaries into a
// config. Values come from the defaults, then the file named by -config,
// then any flag given explicitly.
func HandleCLIInputs(name string, args []string, output io.Writer) (*internal.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "YAML config file")
	path := fs.String("path", internal.DEFAULT_PATH, "Store file to open")
	sync := fs.String("sync", internal.DEFAULT_SYNC, "Write durability: always or never")
	logLevel := fs.String("log-level", internal.DEFAULT_LOG_LEVEL, "Log level: debug, info, warn or error")
	logFormat := fs.String("log-format", internal.DEFAULT_LOG_FORMAT, "Log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := internal.DefaultConfig()
	if *configPath != "" {
		loaded, err := internal.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.Path = *path
		case "sync":
			cfg.Sync = *sync
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SplitStringIntoCommandAndArguments splits an interactive input line with
// shell quoting rules. The command name is lower-cased.
func SplitStringIntoCommandAndArguments(line string) (string, []string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", nil, fmt.Errorf("parse %q: %w", line, err)
	}
	if len(words) == 0 {
		return "", nil, errors.New("empty command")
	}
	return strings.ToLower(words[0]), words[1:], nil
}
