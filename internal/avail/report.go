package avail

import "context"

// Status of a single check in a Report.
const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusSkipped = "skipped"
)

// Check names in Report order.
const (
	CheckPlatform     = "platform"
	CheckToolkit      = "cuda toolkit"
	CheckCompanion    = "cudnn library"
	CheckRuntimeFiles = "runtime files"
)

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Report is the per-check breakdown of one evaluation, for diagnostic
// output. Checks after the first failure are reported as skipped, mirroring
// Evaluate's short-circuit.
type Report struct {
	OK     bool          `json:"ok"`
	Checks []CheckResult `json:"checks"`
}

// Report runs the check sequence and records each outcome. The decision it
// reaches is always the same as Evaluate's on the same environment.
func (e *Evaluator) Report(ctx context.Context) Report {
	report := Report{OK: true}
	failed := false

	record := func(name string, run func() error) {
		if failed {
			report.Checks = append(report.Checks, CheckResult{Name: name, Status: StatusSkipped})
			return
		}
		if err := run(); err != nil {
			failed = true
			report.OK = false
			report.Checks = append(report.Checks, CheckResult{Name: name, Status: StatusFail, Message: err.Error()})
			return
		}
		report.Checks = append(report.Checks, CheckResult{Name: name, Status: StatusPass})
	}

	var binPath string
	record(CheckPlatform, func() error { return e.Compat.Check() })
	record(CheckToolkit, func() error {
		p, err := e.Toolkit.ResolveBinPath(ctx)
		binPath = p
		return err
	})
	record(CheckCompanion, func() error { return e.Toolkit.CheckCompanionLibrary(binPath) })
	record(CheckRuntimeFiles, func() error {
		_, err := e.Prober.Probe(ctx)
		return err
	})
	return report
}
