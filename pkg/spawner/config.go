package spawner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/digitallysavvy/go-spawner/pkg/spawner/cache"
)

// Config is the configuration surface recognized by the spawner
// middleware: a single struct of optional fields, each defaulted
// independently by WithDefaults.
type Config struct {
	// BinaryRoot is the directory under which executor binaries are
	// resolved: <BinaryRoot>/bin/binaries/<name>.
	BinaryRoot string

	// ServiceMaxTimeoutMS is the default per-request timeout, used when
	// a service has no CustomTimeout of its own.
	ServiceMaxTimeoutMS int

	// TimeoutMessage formats the body written to the response when the
	// timeout fires. Defaults to a generic message if nil.
	TimeoutMessage func(d time.Duration) string

	// Log is the default log sink, used whenever a service was built
	// without its own.
	Log *slog.Logger

	// DefaultEnv is injected into every __env.env unless overridden by
	// per-service Env entries.
	DefaultEnv map[string]string

	// Cache is the transpile cache. Defaults to an in-memory map.
	Cache cache.Cache

	// MaxArgvBytes bounds the serialized argv size; 0 selects the
	// platform default (see DefaultMaxArgvBytes).
	MaxArgvBytes int

	// MaxConcurrentSpawns bounds how many children this middleware
	// instance will have in flight at once; 0 disables the limiter.
	MaxConcurrentSpawns int

	// KillGrace is a SIGTERM-to-SIGKILL grace window suitable for
	// processtree.KillWithGrace. Nothing in this package reads it; the
	// per-request timeout always SIGKILLs immediately.
	KillGrace time.Duration
}

// DefaultMaxArgvBytes is the conservative fallback used on platforms
// where the real ARG_MAX cannot be queried.
const DefaultMaxArgvBytes = 128 * 1024

// WithDefaults returns a copy of cfg with zero-valued fields replaced
// by sensible defaults.
func (c Config) WithDefaults() Config {
	if c.ServiceMaxTimeoutMS == 0 {
		c.ServiceMaxTimeoutMS = 10000
	}
	if c.TimeoutMessage == nil {
		c.TimeoutMessage = func(d time.Duration) string {
			return fmt.Sprintf("Service execution timed out after %.0f seconds.", d.Seconds())
		}
	}
	if c.Log == nil {
		c.Log = slog.Default()
	}
	if c.Cache == nil {
		c.Cache = cache.NewMemoryCache()
	}
	if c.MaxArgvBytes == 0 {
		c.MaxArgvBytes = platformMaxArgvBytes()
	}
	if c.KillGrace == 0 {
		c.KillGrace = 3 * time.Second
	}
	return c
}
