package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a sweep under test when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Context returns a context that ends after timeout, when the test finishes,
// or shortly before the go test deadline, whichever comes first.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if dl, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, set := dl.Deadline(); set {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)
	return ctx
}
