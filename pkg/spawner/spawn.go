package spawner

import (
	"io"
	"os/exec"
)

// Child is a spawned executor process with its three standard streams
// captured.
type Child struct {
	cmd    *exec.Cmd
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	Stderr io.ReadCloser
}

// PID returns the child's process id, or 0 if it never started.
func (c *Child) PID() int {
	if c.cmd == nil || c.cmd.Process == nil {
		return 0
	}
	return c.cmd.Process.Pid
}

// Wait blocks until the child exits and returns its *exec.ExitError (if
// any) the way exec.Cmd.Wait does.
func (c *Child) Wait() error {
	return c.cmd.Wait()
}

// Spawn resolves the binary path, builds argv via the language's
// registered generator, and launches the child with its own process
// group (see spawn_unix.go) so the whole tree can be SIGKILLed later.
// No shell is ever invoked — argv is passed directly to exec.Command.
func Spawn(reg *Registry, svc *ServiceDescriptor, env *Env, cfg *Config) (*Child, error) {
	binding, path, err := reg.Resolve(svc.Language)
	if err != nil {
		return nil, err
	}

	gen := binding.ArgvGen
	if gen == nil {
		gen = DefaultArgvGenerator{}
	}
	argv, err := gen.Generate(svc, env)
	if err != nil {
		return nil, err
	}

	if size := argvSize(argv); size > cfg.MaxArgvBytes {
		return nil, NewArgvTooLargeError(size, cfg.MaxArgvBytes)
	}

	cmd := exec.Command(path, argv...)
	applyProcessGroup(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, NewSpawnError(path, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, NewSpawnError(path, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, NewSpawnError(path, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, NewSpawnError(path, err)
	}

	return &Child{cmd: cmd, Stdin: stdin, Stdout: stdout, Stderr: stderr}, nil
}

// PipeRequestBody copies body into the child's stdin on its own
// goroutine and reports any write error on errCh. A stdin write error
// never ends the response by itself: the child may have intentionally
// closed stdin early, so its exit/stdout outcomes still govern the
// response.
func PipeRequestBody(child *Child, body io.Reader, errCh chan<- error) {
	go func() {
		defer child.Stdin.Close()
		if body == nil {
			return
		}
		_, err := io.Copy(child.Stdin, body)
		if err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
}
