package spawner

import (
	"net/http"
	"time"
)

// ConnectionInfo mirrors the `connection` object of the request passed
// through to the child.
type ConnectionInfo struct {
	RemoteAddress string `json:"remoteAddress"`
}

// InputInfo is the `input` field of the __env payload: a snapshot of
// the incoming request.
type InputInfo struct {
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers"`
	Host       string            `json:"host"`
	Path       string            `json:"path"`
	Params     map[string]string `json:"params"`
	URL        string            `json:"url"`
	Connection ConnectionInfo    `json:"connection"`
}

// Env is the serializable payload (`__env`) handed to the executor.
type Env struct {
	Params        map[string]string `json:"params"`
	IsStreaming   bool              `json:"isStreaming"`
	CustomTimeout int               `json:"customTimeout"`
	Env           map[string]string `json:"env"`
	Resource      map[string]any    `json:"resource"`
	Input         InputInfo         `json:"input"`
	IsHookio      bool              `json:"isHookio,omitempty"`
	HookAccessKey string            `json:"hookAccessKey,omitempty"`
}

// IncomingRequest is the subset of an inbound HTTP request the
// environment assembler needs. It is built by the middleware adapter
// from the real *http.Request so that BuildEnv stays a pure function
// independent of net/http's streaming types.
type IncomingRequest struct {
	Method         string
	Headers        http.Header
	Host           string
	Path           string
	URL            string
	Params         map[string]string
	Instance       map[string]string
	RemoteAddr     string
	BodyStreaming  bool // true iff the body is an unfinished readable stream with buffered/pending bytes
	Code           string
	HookAccessKey  string
}

// BuildEnv is a pure function from (service, request, config) to the
// __env payload — no hidden state, so the same inputs always produce
// the same environment.
func BuildEnv(svc *ServiceDescriptor, req *IncomingRequest, cfg *Config) *Env {
	params := req.Instance
	if params == nil {
		params = req.Params
	}
	if params == nil {
		params = map[string]string{}
	}

	remoteAddr := req.RemoteAddr
	if xff := req.Headers.Get("x-forwarded-for"); xff != "" {
		remoteAddr = xff
	}

	headers := map[string]string{}
	for k := range req.Headers {
		headers[k] = req.Headers.Get(k)
	}

	customTimeout := svc.CustomTimeout
	if customTimeout == 0 {
		customTimeout = cfg.ServiceMaxTimeoutMS
	}

	envMap := map[string]string{}
	for k, v := range cfg.DefaultEnv {
		envMap[k] = v
	}
	for k, v := range svc.Env {
		envMap[k] = v
	}

	e := &Env{
		Params:        params,
		IsStreaming:   req.BodyStreaming,
		CustomTimeout: customTimeout,
		Env:           envMap,
		Resource:      resourceFor(svc),
		Input: InputInfo{
			Method:     req.Method,
			Headers:    headers,
			Host:       req.Host,
			Path:       req.Path,
			Params:     params,
			URL:        req.URL,
			Connection: ConnectionInfo{RemoteAddress: remoteAddr},
		},
	}
	if svc.IsHookio {
		e.IsHookio = true
		e.HookAccessKey = req.HookAccessKey
	}
	return e
}

// resourceFor builds the `resource` field: the service descriptor minus
// non-serializable fields (the log sink), forced empty for lua.
func resourceFor(svc *ServiceDescriptor) map[string]any {
	if svc.Language == LangLua {
		return map[string]any{}
	}
	return map[string]any{
		"code":      svc.Code,
		"language":  string(svc.Language),
		"view":      svc.View,
		"presenter": svc.Presenter,
		"config":    svc.Config,
		"isHookio":  svc.IsHookio,
	}
}

// effectiveTimeout returns the effective timeout as a time.Duration,
// falling back to cfg.ServiceMaxTimeoutMS when the service has none.
func effectiveTimeout(svc *ServiceDescriptor, cfg *Config) time.Duration {
	ms := svc.CustomTimeout
	if ms == 0 {
		ms = cfg.ServiceMaxTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}
