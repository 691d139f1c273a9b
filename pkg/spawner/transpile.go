package spawner

import (
	"crypto/md5" //nolint:gosec // dedup fingerprint only, not security sensitive
	"encoding/hex"

	"github.com/digitallysavvy/go-spawner/pkg/spawner/cache"
)

// Transpiler synchronously compiles source code for languages that
// need it before spawn (coffee-script, babel).
type Transpiler interface {
	Compile(code string) (string, error)
}

// Fingerprint returns the hex MD5 digest of source, used as the
// compile-cache key. Collisions are acceptable here: this is a
// deduplication key, not a security boundary.
func Fingerprint(source string) string {
	sum := md5.Sum([]byte(source)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// TranspileIfNeeded runs the cache-check → compile → store → return
// flow. If t is nil the language needs no transpilation and code is
// returned unchanged. A cache hit never invokes t.Compile.
func TranspileIfNeeded(t Transpiler, c cache.Cache, code string) (string, error) {
	if t == nil {
		return code, nil
	}
	fp := Fingerprint(code)
	if compiled, ok := c.Get(fp); ok {
		return compiled, nil
	}
	compiled, err := t.Compile(code)
	if err != nil {
		return "", err
	}
	c.Put(fp, compiled)
	return compiled, nil
}

// CoffeeScriptTranspiler and BabelTranspiler are thin adapters around
// external transpile processes. These defaults shell out to the
// corresponding node-based CLI the way the language's own executor
// would, so the module is usable out of the box without requiring
// callers to supply their own.
type CoffeeScriptTranspiler struct {
	// CommandPath is the transpiler CLI to invoke; defaults to
	// "coffee" on $PATH.
	CommandPath string
}

// NewCoffeeScriptTranspiler returns the default coffee-script transpiler.
func NewCoffeeScriptTranspiler() *CoffeeScriptTranspiler {
	return &CoffeeScriptTranspiler{CommandPath: "coffee"}
}

// Compile invokes the coffee-script compiler out-of-process. Concrete
// invocation lives in transpile_exec.go alongside BabelTranspiler's,
// since both share the same "run a CLI, capture stdout" shape.
func (t *CoffeeScriptTranspiler) Compile(code string) (string, error) {
	return runTranspilerCLI(t.CommandPath, []string{"--compile", "--print", "--stdio"}, code)
}

// BabelTranspiler compiles es6/es7/jsx sources via the babel CLI.
type BabelTranspiler struct {
	CommandPath string
}

// NewBabelTranspiler returns the default babel transpiler.
func NewBabelTranspiler() *BabelTranspiler {
	return &BabelTranspiler{CommandPath: "babel"}
}

// Compile invokes the babel compiler out-of-process.
func (t *BabelTranspiler) Compile(code string) (string, error) {
	return runTranspilerCLI(t.CommandPath, []string{"--filename", "service.js"}, code)
}
