package adapter

import (
	"fmt"
	"os/exec"
	"sync"
)

// Bootstrap is the process-wide "is the player runtime available" check,
// mirroring a one-time control-script load: the lookup runs exactly once
// per process no matter how many sessions are created concurrently, and
// its outcome (success or failure) is shared by all of them. It is never
// reset after the first attempt.
type Bootstrap struct {
	// Binary is the player executable to locate. Defaults to "mpv".
	Binary string

	// LookPath resolves the executable. Injectable for tests; defaults
	// to exec.LookPath.
	LookPath func(file string) (string, error)

	once sync.Once
	path string
	err  error
}

var defaultBootstrap = &Bootstrap{}

// DefaultBootstrap returns the shared process-wide bootstrap instance.
func DefaultBootstrap() *Bootstrap {
	return defaultBootstrap
}

// Ensure resolves the player binary, running the lookup at most once. All
// callers, concurrent or later, observe the result of that single attempt.
func (b *Bootstrap) Ensure() (string, error) {
	b.once.Do(func() {
		binary := b.Binary
		if binary == "" {
			binary = "mpv"
		}
		lookPath := b.LookPath
		if lookPath == nil {
			lookPath = exec.LookPath
		}
		b.path, b.err = lookPath(binary)
		if b.err != nil {
			b.err = fmt.Errorf("player binary %q not found: %w", binary, b.err)
		}
	})
	return b.path, b.err
}
