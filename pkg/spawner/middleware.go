package spawner

import (
	"net"
	"net/http"

	"github.com/digitallysavvy/go-spawner/pkg/spawner/control"
)

// Handler is the reusable service-spawning middleware. Construction-time
// state (the registry, service descriptor, config) is immutable and
// safe to share across concurrent requests; per-request state is
// allocated fresh inside the http.Handler returned by Wrap.
type Handler struct {
	reg  *Registry
	svc  *ServiceDescriptor
	cfg  Config
	ctrl control.Handler

	limiter spawnLimiter
}

// New builds a reusable Handler for one service descriptor. Unknown
// languages or a missing code body are a *ConfigurationError returned
// here, at construction time, so a misconfigured service never reaches
// an HTTP client.
func New(opts ServiceOptions, cfg Config) (*Handler, error) {
	svc, err := NewServiceDescriptor(opts)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	if cfg.BinaryRoot == "" {
		return nil, NewConfigurationError("missing BinaryRoot", nil)
	}
	reg := NewRegistry(cfg.BinaryRoot)
	if _, _, err := reg.Resolve(svc.Language); err != nil {
		return nil, err
	}
	return &Handler{
		reg:     reg,
		svc:     svc,
		cfg:     cfg,
		ctrl:    control.DefaultHandler{},
		limiter: newSpawnLimiter(cfg.MaxConcurrentSpawns),
	}, nil
}

// WithControlHandler overrides the stderr control-channel interpreter.
// Callers with their own registry-install or header-signaling protocol
// can supply one instead of DefaultHandler.
func (h *Handler) WithControlHandler(c control.Handler) *Handler {
	h.ctrl = c
	return h
}

// NextFunc observes the Outcome of one invocation after the response
// has already been written. It is a completion signal, not a data
// channel: nothing downstream can alter what was already sent to the
// client.
type NextFunc func(r *http.Request, outcome Outcome)

// defaultNext is used when Wrap is given a nil NextFunc: it logs a
// warning for any invocation that ended with a diagnostic error and
// otherwise stays silent.
func defaultNext(log interface{ Warn(string, ...any) }) NextFunc {
	return func(r *http.Request, outcome Outcome) {
		if outcome.Err != nil {
			log.Warn("spawner invocation completed with diagnostic", "path", r.URL.Path, "outcome", outcome.Message, "err", outcome.Err)
		}
	}
}

// Wrap adapts the handler into standard net/http middleware. The
// returned handler is terminal: it never delegates to the wrapped
// http.Handler, because by the time Invoke returns the response has
// already been fully written and flushed. The http.Handler parameter
// exists only so this satisfies the ordinary `func(http.Handler)
// http.Handler` middleware shape routers expect. When next is nil, the
// default warns on non-nil Outcome.Err and otherwise stays silent.
func (h *Handler) Wrap(next NextFunc) func(http.Handler) http.Handler {
	if next == nil {
		next = defaultNext(h.cfg.Log)
	}
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.limiter.acquire(r.Context()) {
				http.Error(w, "too many concurrent invocations", http.StatusServiceUnavailable)
				return
			}
			defer h.limiter.release()

			req := requestFromHTTP(r, h.svc)
			svc := h.svc
			if code := r.Header.Get("X-Spawn-Code-Override"); code != "" {
				svc = svc.WithCode(code)
			}

			outcome := TracedInvoke(r.Context(), h.reg, svc, req, r.Body, w, &h.cfg, h.ctrl)
			next(r, outcome)
		})
	}
}

// requestFromHTTP builds the coordinator's IncomingRequest snapshot
// from a real *http.Request.
func requestFromHTTP(r *http.Request, svc *ServiceDescriptor) *IncomingRequest {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	return &IncomingRequest{
		Method:        r.Method,
		Headers:       r.Header,
		Host:          r.Host,
		Path:          r.URL.Path,
		URL:           r.URL.String(),
		Params:        params,
		RemoteAddr:    remote,
		BodyStreaming: r.Body != nil && r.ContentLength != 0,
		HookAccessKey: r.Header.Get("X-Hook-Access-Key"),
	}
}
