// Package control defines the stderr control-channel contract: stderr
// is repurposed by the executor as a structured out-of-band channel
// back to the coordinator. The business logic behind specific control
// messages (e.g. missing-module registry installs) lives elsewhere;
// this package only specifies the interface and a default line-framed
// parser that recognizes a small, documented set of directives and
// treats everything else as a plain log line.
package control

import (
	"bufio"
	"log/slog"
	"net/http"
	"strings"
)

// Terminator is the small capability the handler needs to force
// completion without holding a direct reference to the response
// writer's owning coordinator.
type Terminator interface {
	Terminate()
}

// Status is the subset of the coordinator's lifecycle flags the
// control handler is allowed to touch. CheckingRegistry is the only
// one exposed here: it is set exclusively from stderr directives.
type Status interface {
	SetCheckingRegistry(bool)
}

// Handler processes one chunk of stderr. It may log, set response
// headers, toggle checkingRegistry during an install sequence, or
// terminate the response outright.
type Handler interface {
	Handle(chunk []byte, status Status, log *slog.Logger, w http.ResponseWriter, term Terminator)
}

// DefaultHandler implements a line-framed protocol:
//
//	"#registry-begin\n"  -> checkingRegistry = true
//	"#registry-end\n"    -> checkingRegistry = false
//	"#header: K=V\n"     -> w.Header().Set(K, V), only before WriteHeader
//	"#fatal: message\n"  -> log it and Terminate()
//	anything else        -> logged at Info as a diagnostic line
type DefaultHandler struct{}

// Handle implements Handler.
func (DefaultHandler) Handle(chunk []byte, status Status, log *slog.Logger, w http.ResponseWriter, term Terminator) {
	scanner := bufio.NewScanner(strings.NewReader(string(chunk)))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "#registry-begin":
			status.SetCheckingRegistry(true)
		case line == "#registry-end":
			status.SetCheckingRegistry(false)
		case strings.HasPrefix(line, "#header: "):
			kv := strings.TrimPrefix(line, "#header: ")
			if k, v, ok := strings.Cut(kv, "="); ok {
				w.Header().Set(k, v)
			}
		case strings.HasPrefix(line, "#fatal: "):
			msg := strings.TrimPrefix(line, "#fatal: ")
			log.Error("child reported fatal error", "message", msg)
			term.Terminate()
		default:
			log.Info("child stderr", "line", line)
		}
	}
}
