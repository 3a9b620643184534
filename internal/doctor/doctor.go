// Package doctor runs the availability checks and renders the per-check
// report for the trackgate-doctor command.
package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gookit/color"

	"github.com/vk/trackgate"
	"github.com/vk/trackgate/internal/avail"
	"github.com/vk/trackgate/internal/ctxlog"
)

// ErrUnavailable is returned by Run when the checks conclude the runtime
// cannot be used. The report has already been printed when this is returned.
var ErrUnavailable = errors.New("body tracking runtime is unavailable")

// Config holds the doctor's settings, populated by the cli package.
type Config struct {
	ConfigPath string
	JSON       bool
	LogFormat  string
	LogLevel   string
}

// Run executes the checks and writes the report to outW.
func Run(ctx context.Context, cfg *Config, outW io.Writer) error {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)

	gate, err := trackgate.New(trackgate.WithConfigFile(cfg.ConfigPath))
	if err != nil {
		return err
	}

	report := gate.Availability(ctx)
	if cfg.JSON {
		enc := json.NewEncoder(outW)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		render(outW, report)
	}

	if !report.OK {
		return ErrUnavailable
	}
	return nil
}

func render(outW io.Writer, report trackgate.Report) {
	for _, check := range report.Checks {
		switch check.Status {
		case avail.StatusPass:
			fmt.Fprintf(outW, "  %s %s\n", color.Green.Sprint("ok"), check.Name)
		case avail.StatusFail:
			fmt.Fprintf(outW, "  %s %s: %s\n", color.Red.Sprint("fail"), check.Name, check.Message)
		default:
			fmt.Fprintf(outW, "  %s %s\n", color.Gray.Sprint("skip"), check.Name)
		}
	}
	if report.OK {
		fmt.Fprintln(outW, color.Green.Sprint("body tracking runtime is available"))
	} else {
		fmt.Fprintln(outW, color.Red.Sprint("body tracking runtime is unavailable"))
	}
}
