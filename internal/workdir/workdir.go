// Package workdir scopes a mutation of the process working directory. The
// native tracker loader resolves its model file relative to the current
// directory, so the load must run with the directory pinned to the runtime
// location and restored afterwards no matter how the load exits.
package workdir

import (
	"fmt"
	"os"
)

// Scope records the directory that was current before Enter switched away
// from it. The process has exactly one working directory, so at most one
// Scope may be live at a time; the loader enforces that under its lock.
type Scope struct {
	prev     string
	restored bool
}

// Enter switches the process working directory to dir and returns a Scope
// whose Restore puts the previous directory back.
func Enter(dir string) (*Scope, error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("reading current directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("switching to %s: %w", dir, err)
	}
	return &Scope{prev: prev}, nil
}

// Restore switches back to the directory that was current when Enter ran.
// Safe to call more than once; only the first call acts.
func (s *Scope) Restore() error {
	if s.restored {
		return nil
	}
	s.restored = true
	if err := os.Chdir(s.prev); err != nil {
		return fmt.Errorf("restoring working directory %s: %w", s.prev, err)
	}
	return nil
}

// In runs fn with the working directory set to dir. Restoration happens on
// every exit path, including a panic inside fn. A restore failure is
// reported only when fn itself succeeded, so the original error wins.
func In(dir string, fn func() error) (err error) {
	scope, err := Enter(dir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := scope.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}
