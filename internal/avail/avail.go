// Package avail composes the individual environment checks into the single
// availability decision. Evaluation is pure: it reads the environment and
// filesystem but caches nothing and mutates nothing, so it is safe to call
// any number of times from any number of goroutines.
package avail

import (
	"context"

	"github.com/vk/trackgate/internal/cuda"
	"github.com/vk/trackgate/internal/hostcheck"
	"github.com/vk/trackgate/internal/runtimedir"
)

// Evaluator runs the fixed check sequence: platform, toolkit, companion
// library, runtime files. The order matters; each step assumes the previous
// ones passed, and the cheapest checks run first.
type Evaluator struct {
	Compat  *hostcheck.Checker
	Toolkit *cuda.Resolver
	Prober  *runtimedir.Prober
}

// New wires an Evaluator over the given checks.
func New(compat *hostcheck.Checker, toolkit *cuda.Resolver, prober *runtimedir.Prober) *Evaluator {
	return &Evaluator{Compat: compat, Toolkit: toolkit, Prober: prober}
}

// Evaluate returns nil when the tracking runtime can be used on this host,
// or the first failure in check order. Short-circuiting: once a check fails,
// later checks do not run.
func (e *Evaluator) Evaluate(ctx context.Context) error {
	if err := e.Compat.Check(); err != nil {
		return err
	}
	binPath, err := e.Toolkit.ResolveBinPath(ctx)
	if err != nil {
		return err
	}
	if err := e.Toolkit.CheckCompanionLibrary(binPath); err != nil {
		return err
	}
	if _, err := e.Prober.Probe(ctx); err != nil {
		return err
	}
	return nil
}
