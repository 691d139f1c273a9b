package spawner

import (
	"context"

	"golang.org/x/time/rate"
)

// spawnLimiter bounds how many children this Handler has in flight at
// once (a real semaphore, so a request over the ceiling is refused
// immediately) and additionally paces how fast new spawns are admitted
// via golang.org/x/time/rate. A plain rate.Limiter alone cannot reject:
// Wait(ctx) only ever blocks or respects ctx cancellation, since its
// configured burst always covers the single token requested per call.
// The semaphore is what makes "too many concurrent invocations"
// (middleware.go) an actual behavior instead of dead code.
type spawnLimiter struct {
	sem     chan struct{}
	limiter *rate.Limiter
}

// newSpawnLimiter builds a limiter admitting at most max concurrent
// invocations, paced at max admissions/second with a burst of max.
// max <= 0 disables admission control entirely.
func newSpawnLimiter(max int) spawnLimiter {
	if max <= 0 {
		return spawnLimiter{}
	}
	return spawnLimiter{
		sem:     make(chan struct{}, max),
		limiter: rate.NewLimiter(rate.Limit(max), max),
	}
}

// acquire reserves one concurrency slot and one pacing token. It
// returns false immediately if the handler is already at its
// concurrency ceiling, or if ctx is canceled while waiting on the
// pacing limiter.
func (l spawnLimiter) acquire(ctx context.Context) bool {
	if l.sem == nil {
		return true
	}
	select {
	case l.sem <- struct{}{}:
	default:
		return false
	}
	if err := l.limiter.Wait(ctx); err != nil {
		<-l.sem
		return false
	}
	return true
}

// release frees the concurrency slot reserved by a successful acquire.
func (l spawnLimiter) release() {
	if l.sem != nil {
		<-l.sem
	}
}
