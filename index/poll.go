package index

import (
	"context"
	"fmt"
	"time"
)

// PollUntil invokes probe at the given interval until it reports done,
// the timeout elapses, or the context is cancelled. A probe error stops
// polling immediately.
func PollUntil(ctx context.Context, timeout, interval time.Duration, probe func(ctx context.Context) (bool, error)) error {
	deadline := time.Now().Add(timeout)

	for {
		done, err := probe(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("poll timed out after %s", timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
