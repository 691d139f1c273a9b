package spawner

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/digitallysavvy/go-spawner/pkg/spawner/control"
	"github.com/digitallysavvy/go-spawner/pkg/spawner/processtree"
)

// status is the per-invocation lifecycle state. It is touched
// exclusively by the single goroutine running the coordinator's event
// loop (including the stderr control handler, which runs inline on
// that same goroutine), so no locking is needed — the serialization
// point is the goroutine itself, not a mutex.
type status struct {
	ended            bool
	erroring         bool
	checkingRegistry bool
	stdoutEnded      bool
	serviceEnded     bool
	vmClosed         bool
	vmError          bool
	stdinError       bool
}

// SetCheckingRegistry implements control.Status.
func (s *status) SetCheckingRegistry(v bool) { s.checkingRegistry = v }

type eventKind int

const (
	evStdoutChunk eventKind = iota
	evStdoutEnd
	evStderrChunk
	evStdinErr
	evExit
	evTimer
)

type event struct {
	kind   eventKind
	chunk  []byte
	err    error
	code   int
	signal string
}

// terminatorFunc adapts a plain func() to control.Terminator.
type terminatorFunc func()

func (f terminatorFunc) Terminate() { f() }

// Outcome is what Invoke returns: the terminal result handed to the
// middleware adapter's next() callback.
type Outcome struct {
	// Message is always "response ended" on any path that reached
	// endResponse, so callers can treat it as a constant completion
	// marker rather than inspecting it for detail.
	Message string
	// Err is non-nil only for diagnostics; it never changes what was
	// already written to the HTTP response.
	Err error
}

// Invoke runs one full request through the lifecycle coordinator:
// spawns the child, pipes the body in, streams stdout to w, interprets
// stderr as a control channel, and resolves exactly once via
// endResponse — including stdin-error bookkeeping and a tree-kill on
// timeout.
func Invoke(
	reg *Registry,
	svc *ServiceDescriptor,
	req *IncomingRequest,
	body io.Reader,
	w http.ResponseWriter,
	cfg *Config,
	ctrl control.Handler,
) Outcome {
	log := svc.Log
	if log == nil {
		log = cfg.Log
	}
	if ctrl == nil {
		ctrl = control.DefaultHandler{}
	}

	env := BuildEnv(svc, req, cfg)

	compiled, err := transpileFor(reg, svc, cfg)
	if err != nil {
		var te *TranspileError
		if errors.As(err, &te) {
			writeAndFlush(w, []byte(te.Error()))
			return Outcome{Message: "response ended", Err: te}
		}
		writeAndFlush(w, []byte(err.Error()))
		return Outcome{Message: "response ended", Err: err}
	}
	svc = svc.WithCode(compiled)

	child, err := Spawn(reg, svc, env, cfg)
	if err != nil {
		// No process ever existed: write the failure and end immediately
		// rather than entering the event loop.
		writeAndFlush(w, []byte(err.Error()))
		return Outcome{Message: "response ended", Err: err}
	}

	return runCoordinator(child, svc, req, body, w, cfg, ctrl, log)
}

func transpileFor(reg *Registry, svc *ServiceDescriptor, cfg *Config) (string, error) {
	binding, _, err := reg.Resolve(svc.Language)
	if err != nil {
		return "", err
	}
	return TranspileIfNeeded(binding.Transpiler, cfg.Cache, svc.Code)
}

func runCoordinator(
	child *Child,
	svc *ServiceDescriptor,
	req *IncomingRequest,
	body io.Reader,
	w http.ResponseWriter,
	cfg *Config,
	ctrl control.Handler,
	log *slog.Logger,
) Outcome {
	events := make(chan event, 16)

	go readStream(child.Stdout, events, evStdoutChunk, evStdoutEnd)
	go drainStderr(child.Stderr, events)

	stdinErrCh := make(chan error, 1)
	PipeRequestBody(child, body, stdinErrCh)
	go func() {
		if err, ok := <-stdinErrCh; ok {
			events <- event{kind: evStdinErr, err: err}
		}
	}()

	go func() {
		waitErr := child.Wait()
		code, signal := exitInfo(waitErr)
		events <- event{kind: evExit, code: code, signal: signal}
	}()

	timeout := effectiveTimeout(svc, cfg)
	timer := time.AfterFunc(timeout, func() {
		events <- event{kind: evTimer}
	})

	st := &status{}
	var exitCode int
	var exitSignal string
	var once sync.Once
	result := make(chan Outcome, 1)

	endResponse := func(cause error) {
		once.Do(func() {
			timer.Stop()
			st.serviceEnded = true
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			result <- Outcome{Message: "response ended", Err: cause}
		})
	}
	term := terminatorFunc(func() { endResponse(nil) })

	for {
		select {
		case ev := <-events:
			switch ev.kind {
			case evTimer:
				if !st.serviceEnded && !st.ended && !st.checkingRegistry {
					st.ended = true
					msg := cfg.TimeoutMessage(timeout)
					writeAndFlush(w, []byte(msg))
					if pid := child.PID(); pid > 0 {
						if err := processtree.Kill(pid); err != nil {
							log.Error("failed to kill child process tree on timeout", "err", err, "pid", pid)
						}
					}
					endResponse(NewTimeoutError(timeout.String()))
				}

			case evStdoutChunk:
				if !st.ended {
					writeAndFlush(w, ev.chunk)
				}

			case evStdoutEnd:
				st.stdoutEnded = true
				if !st.checkingRegistry && !st.ended && !st.erroring {
					st.ended = true
					endResponse(nil)
				}
				if st.vmClosed && !st.ended {
					st.ended = true
					var cause error
					if st.erroring {
						cause = &RuntimeChildError{ExitCode: exitCode, Signal: exitSignal}
					}
					endResponse(cause)
				}

			case evStderrChunk:
				ctrl.Handle(ev.chunk, st, log, w, term)

			case evStdinErr:
				st.stdinError = true

			case evExit:
				st.vmClosed = true
				if !st.checkingRegistry && !st.ended && !st.stdoutEnded {
					if ev.code == 1 || ev.code > 1 || ev.signal != "" {
						st.erroring = true
						st.vmError = true
						exitCode, exitSignal = ev.code, ev.signal
					}
				} else if st.stdoutEnded && !st.ended {
					st.ended = true
					endResponse(nil)
				}
			}

		case outcome := <-result:
			return outcome
		}
	}
}

// readStream copies r in chunks onto ch, tagging each chunk with
// chunkKind and emitting endKind once r is exhausted.
func readStream(r io.Reader, ch chan<- event, chunkKind, endKind eventKind) {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- event{kind: chunkKind, chunk: chunk}
		}
		if err != nil {
			ch <- event{kind: endKind}
			return
		}
	}
}

// drainStderr is readStream specialized for stderr: stderr EOF carries
// no meaning for the response lifecycle, so it simply stops the
// goroutine without emitting an event.
func drainStderr(r io.Reader, ch chan<- event) {
	br := bufio.NewReaderSize(r, 32*1024)
	buf := make([]byte, 32*1024)
	for {
		n, err := br.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- event{kind: evStderrChunk, chunk: chunk}
		}
		if err != nil {
			return
		}
	}
}

func writeAndFlush(w http.ResponseWriter, b []byte) {
	_, _ = w.Write(b)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
