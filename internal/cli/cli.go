package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/trackgate/internal/doctor"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated doctor
// config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*doctor.Config, bool, error) {
	flagSet := flag.NewFlagSet("trackgate-doctor", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
trackgate-doctor - Checks whether the body tracking runtime can load on this host.

Usage:
  trackgate-doctor [options]

Exit status is 0 when the runtime is available and 1 when it is not.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an optional trackgate HCL config file.")
	jsonFlag := flagSet.Bool("json", false, "Emit the check report as JSON.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return &doctor.Config{
		ConfigPath: *configFlag,
		JSON:       *jsonFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	}, false, nil
}
