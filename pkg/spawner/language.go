package spawner

import (
	"path/filepath"
	"strings"
)

// Language is a canonical, closed-set language tag.
type Language string

const (
	LangJavaScript   Language = "javascript"
	LangBabel        Language = "babel"
	LangCoffeeScript Language = "coffee-script"
	LangBash         Language = "bash"
	LangLua          Language = "lua"
	LangPerl         Language = "perl"
	LangPHP          Language = "php"
	LangPython       Language = "python"
	LangPython3      Language = "python3"
	LangRuby         Language = "ruby"
	LangScheme       Language = "scheme"
	LangSmalltalk    Language = "smalltalk"
	LangTcl          Language = "tcl"
)

// languageAliases maps legacy/shorthand tags to their canonical form.
// Empty/undefined aliases to javascript via CanonicalizeLanguage's
// special-case, not through this table.
var languageAliases = map[string]Language{
	"coffee": LangCoffeeScript,
	"es6":    LangBabel,
	"es7":    LangBabel,
}

// knownLanguages is the closed set CanonicalizeLanguage accepts.
var knownLanguages = map[Language]bool{
	LangJavaScript:   true,
	LangBabel:        true,
	LangCoffeeScript: true,
	LangBash:         true,
	LangLua:          true,
	LangPerl:         true,
	LangPHP:          true,
	LangPython:       true,
	LangPython3:      true,
	LangRuby:         true,
	LangScheme:       true,
	LangSmalltalk:    true,
	LangTcl:          true,
}

// CanonicalizeLanguage resolves a raw tag (possibly empty, aliased, or
// already canonical) to its canonical Language. Idempotent: calling it
// again on the result returns the same value. Unknown tags produce a
// *ConfigurationError.
func CanonicalizeLanguage(tag string) (Language, error) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return LangJavaScript, nil
	}
	if alias, ok := languageAliases[trimmed]; ok {
		return alias, nil
	}
	lang := Language(trimmed)
	if !knownLanguages[lang] {
		return "", NewConfigurationError("unknown language: "+trimmed, nil)
	}
	return lang, nil
}

// Binding is what the Language Registry returns for a canonical
// language: the executor binary name and the components that know how
// to prepare code and argv for it.
type Binding struct {
	BinaryName string
	ArgvGen    ArgvGenerator
	Transpiler Transpiler // nil if the language needs no transpilation
}

// Registry is the static language → binding table, plus the on-disk
// root under which executor binaries live.
type Registry struct {
	root     string
	bindings map[Language]Binding
}

// NewRegistry builds the default language registry rooted at root
// (executors resolve to <root>/bin/binaries/<name>).
func NewRegistry(root string) *Registry {
	bash := &BashArgvGenerator{}
	lua := &LuaArgvGenerator{}
	def := &DefaultArgvGenerator{}

	return &Registry{
		root: root,
		bindings: map[Language]Binding{
			LangJavaScript:   {BinaryName: "node", ArgvGen: def},
			LangBabel:        {BinaryName: "node", ArgvGen: def, Transpiler: NewBabelTranspiler()},
			LangCoffeeScript: {BinaryName: "node", ArgvGen: def, Transpiler: NewCoffeeScriptTranspiler()},
			LangBash:         {BinaryName: "bash", ArgvGen: bash},
			LangLua:          {BinaryName: "lua", ArgvGen: lua},
			LangPerl:         {BinaryName: "perl", ArgvGen: def},
			LangPHP:          {BinaryName: "php", ArgvGen: def},
			LangPython:       {BinaryName: "python", ArgvGen: def},
			LangPython3:      {BinaryName: "python3", ArgvGen: def},
			LangRuby:         {BinaryName: "ruby", ArgvGen: def},
			LangScheme:       {BinaryName: "scheme", ArgvGen: def},
			LangSmalltalk:    {BinaryName: "smalltalk", ArgvGen: def},
			LangTcl:          {BinaryName: "tcl", ArgvGen: def},
		},
	}
}

// Resolve returns the binding and the normalized absolute path to the
// executor binary for a canonical language. Languages outside the
// table are a configuration error.
func (r *Registry) Resolve(lang Language) (Binding, string, error) {
	b, ok := r.bindings[lang]
	if !ok {
		return Binding{}, "", NewConfigurationError("no binding registered for language: "+string(lang), nil)
	}
	path := filepath.Clean(filepath.Join(r.root, "bin", "binaries", b.BinaryName))
	return b, path, nil
}
