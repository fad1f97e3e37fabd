package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout returns a context derived from the test's own context that expires after d.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), d)
	t.Cleanup(cancel)

	return ctx
}

// CancelledContext returns a context that is already cancelled, for runs that must stop before the first battle.
func CancelledContext(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	return ctx
}
