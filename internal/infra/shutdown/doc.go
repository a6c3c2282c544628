// Package shutdown runs cleanup hooks when medqueue-cli stops.
//
// Hooks run once, in reverse registration order, under a shared timeout.
// The interactive shell waits on SIGINT/SIGTERM; one-shot commands call
// Shutdown directly when they finish.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return pc.Close() })
//	defer h.Shutdown()
package shutdown
