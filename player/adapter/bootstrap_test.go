package adapter

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestBootstrapRunsLookupOnce(t *testing.T) {
	var calls atomic.Int32
	b := &Bootstrap{
		Binary: "fakeplayer",
		LookPath: func(file string) (string, error) {
			calls.Add(1)
			return "/usr/bin/" + file, nil
		},
	}

	// Concurrent callers must share the single in-flight lookup
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path, err := b.Ensure()
			if err != nil {
				t.Errorf("Ensure() error: %v", err)
			}
			if path != "/usr/bin/fakeplayer" {
				t.Errorf("Ensure() = %q", path)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("lookup ran %d times, want 1", got)
	}
}

func TestBootstrapSharesFailure(t *testing.T) {
	var calls atomic.Int32
	b := &Bootstrap{
		LookPath: func(file string) (string, error) {
			calls.Add(1)
			return "", errors.New("nope")
		},
	}

	if _, err := b.Ensure(); err == nil {
		t.Fatal("expected error from failing lookup")
	}
	// Failures are shared, never retried: the flag is set once for the
	// process lifetime.
	if _, err := b.Ensure(); err == nil {
		t.Fatal("expected the shared failure on the second call")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("lookup ran %d times, want 1", got)
	}
}

func TestBootstrapDefaultsToMPV(t *testing.T) {
	var looked string
	b := &Bootstrap{
		LookPath: func(file string) (string, error) {
			looked = file
			return "/usr/bin/" + file, nil
		},
	}

	if _, err := b.Ensure(); err != nil {
		t.Fatal(err)
	}
	if looked != "mpv" {
		t.Errorf("looked up %q, want mpv", looked)
	}
}
