package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task on a fixed interval until ctx is done. The first run
// waits a full interval; startup work happens before the loop starts.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Printf("level=warn msg=\"scheduled task failed\" task=%s err=%v", name, err)
			}
		}
	}
}
