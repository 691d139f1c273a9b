package spawner

import "log/slog"

// ServiceOptions is the loosely-typed input accepted when constructing
// a handler, including every legacy field name the original runner
// accepted. NewServiceDescriptor resolves all of these once; nothing
// downstream of it ever looks at a legacy field again.
type ServiceOptions struct {
	Code      string
	Source    string // legacy alias for Code
	Language  string
	Lang      string // legacy alias for Language
	View      string
	ThemeSource     string // legacy alias for View
	Presenter       string
	PresenterSource string // legacy alias for Presenter
	CustomTimeoutMS int
	Config          map[string]any
	IsHookio        bool
	Env             map[string]string
	Log             *slog.Logger
}

// ServiceDescriptor is the immutable, canonical description of a
// service built once at handler construction. The Code field may be
// overridden per request (see Handler.Wrap and WithCode); everything else is fixed
// for the lifetime of the handler.
type ServiceDescriptor struct {
	Code          string
	Language      Language
	View          string
	Presenter     string
	CustomTimeout int // milliseconds, 0 means "use the global default"
	Config        map[string]any
	IsHookio      bool
	Env           map[string]string
	Log           *slog.Logger
}

// NewServiceDescriptor resolves legacy aliases and canonicalizes the
// language tag exactly once, producing the immutable descriptor the
// rest of the module operates on. Missing code or an unknown language
// is a *ConfigurationError raised here, at construction time — never
// surfaced to an HTTP client.
func NewServiceDescriptor(opts ServiceOptions) (*ServiceDescriptor, error) {
	code := opts.Code
	if code == "" {
		code = opts.Source
	}
	if code == "" {
		return nil, NewConfigurationError("missing code", nil)
	}

	rawLang := opts.Language
	if rawLang == "" {
		rawLang = opts.Lang
	}
	lang, err := CanonicalizeLanguage(rawLang)
	if err != nil {
		return nil, err
	}

	view := opts.View
	if view == "" {
		view = opts.ThemeSource
	}
	presenter := opts.Presenter
	if presenter == "" {
		presenter = opts.PresenterSource
	}

	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	return &ServiceDescriptor{
		Code:          code,
		Language:      lang,
		View:          view,
		Presenter:     presenter,
		CustomTimeout: opts.CustomTimeoutMS,
		Config:        opts.Config,
		IsHookio:      opts.IsHookio,
		Env:           opts.Env,
		Log:           log,
	}, nil
}

// WithCode returns a shallow copy of the descriptor with Code replaced,
// used when a request overrides the service's code for that one call.
func (s *ServiceDescriptor) WithCode(code string) *ServiceDescriptor {
	if code == "" || code == s.Code {
		return s
	}
	clone := *s
	clone.Code = code
	return &clone
}
