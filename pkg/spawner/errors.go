package spawner

import "fmt"

// ConfigurationError is raised at handler construction or first request
// when the service descriptor cannot be built: missing code, unknown
// language. It is surfaced to the caller building the handler, never to
// an HTTP client.
type ConfigurationError struct {
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("spawner: configuration error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("spawner: configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(reason string, cause error) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Cause: cause}
}

// TranspileError is raised synchronously during transpilation and is
// written to the response body before endResponse fires.
type TranspileError struct {
	Language string
	Cause    error
}

func (e *TranspileError) Error() string {
	return fmt.Sprintf("spawner: transpile error (%s): %v", e.Language, e.Cause)
}

func (e *TranspileError) Unwrap() error { return e.Cause }

// NewTranspileError creates a new TranspileError.
func NewTranspileError(language string, cause error) *TranspileError {
	return &TranspileError{Language: language, Cause: cause}
}

// ArgvTooLargeError is returned when the serialized argv would exceed
// the configured or platform ARG_MAX limit. The spawn controller checks
// this before ever calling exec.Command.
type ArgvTooLargeError struct {
	Size  int
	Limit int
}

func (e *ArgvTooLargeError) Error() string {
	return fmt.Sprintf("spawner: argv too large: %d bytes exceeds limit of %d", e.Size, e.Limit)
}

// NewArgvTooLargeError creates a new ArgvTooLargeError.
func NewArgvTooLargeError(size, limit int) *ArgvTooLargeError {
	return &ArgvTooLargeError{Size: size, Limit: limit}
}

// SpawnError represents a failure to start the child process: missing
// binary, permission failure, or similar. Invoke writes its message to
// the response and returns without entering the coordinator's event
// loop, since no child process exists.
type SpawnError struct {
	Binary string
	Cause  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawner: failed to spawn %q: %v", e.Binary, e.Cause)
}

func (e *SpawnError) Unwrap() error { return e.Cause }

// NewSpawnError creates a new SpawnError.
func NewSpawnError(binary string, cause error) *SpawnError {
	return &SpawnError{Binary: binary, Cause: cause}
}

// RuntimeChildError represents a child that exited with a non-zero code
// or a signal. The coordinator does not write an extra body for this —
// the child's own stdout/stderr is the diagnostic — but the error is
// available to callers and loggers.
type RuntimeChildError struct {
	ExitCode int
	Signal   string
}

func (e *RuntimeChildError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("spawner: child killed by signal %s", e.Signal)
	}
	return fmt.Sprintf("spawner: child exited with code %d", e.ExitCode)
}

// TimeoutError represents a per-invocation timeout firing before the
// child completed.
type TimeoutError struct {
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("spawner: execution timed out after %s", e.Timeout)
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(timeout string) *TimeoutError {
	return &TimeoutError{Timeout: timeout}
}
