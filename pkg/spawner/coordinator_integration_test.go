package spawner

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeFakeExecutor installs a tiny shell script as the "bash" binary
// under root/bin/binaries/bash, standing in for a real language
// executor: a fake binary that emits deterministic stdout, honors its
// --code selector, and exits the way a real one would.
func writeFakeExecutor(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	binDir := filepath.Join(root, "bin", "binaries")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	script := `#!/bin/sh
code="$2"
case "$code" in
  echo-ok)
    printf 'hello-stdout'
    exit 0
    ;;
  sleep-forever)
    sleep 5
    printf 'too-late'
    exit 0
    ;;
esac
exit 0
`
	path := filepath.Join(binDir, "bash")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake executor: %v", err)
	}
	return root
}

func TestInvoke_SuccessfulStdoutStreaming(t *testing.T) {
	t.Parallel()

	root := writeFakeExecutor(t)
	svc := testService(t, ServiceOptions{Code: "echo-ok", Language: "bash"})
	cfg := Config{ServiceMaxTimeoutMS: 5000}.WithDefaults()
	reg := NewRegistry(root)

	w := httptest.NewRecorder()
	req := &IncomingRequest{Headers: http.Header{}}

	outcome := Invoke(reg, svc, req, strings.NewReader(""), w, &cfg, nil)

	if outcome.Err != nil {
		t.Fatalf("expected a clean outcome, got error: %v", outcome.Err)
	}
	if outcome.Message != "response ended" {
		t.Errorf("unexpected outcome message: %q", outcome.Message)
	}
	if got := w.Body.String(); got != "hello-stdout" {
		t.Errorf("unexpected response body: %q", got)
	}
}

func TestInvoke_TimeoutFiresBeforeCompletion(t *testing.T) {
	t.Parallel()

	root := writeFakeExecutor(t)
	svc := testService(t, ServiceOptions{Code: "sleep-forever", Language: "bash"})
	cfg := Config{ServiceMaxTimeoutMS: 150}.WithDefaults()
	reg := NewRegistry(root)

	w := httptest.NewRecorder()
	req := &IncomingRequest{Headers: http.Header{}}

	start := time.Now()
	outcome := Invoke(reg, svc, req, strings.NewReader(""), w, &cfg, nil)
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if outcome.Err == nil {
		t.Fatal("expected a timeout error")
	}
	if te, ok := outcome.Err.(*TimeoutError); ok {
		timeoutErr = te
	} else {
		t.Fatalf("expected *TimeoutError, got %T", outcome.Err)
	}
	_ = timeoutErr

	if elapsed >= 5*time.Second {
		t.Errorf("expected the timeout to preempt the 5s sleep, took %v", elapsed)
	}
	if got := w.Body.String(); strings.Contains(got, "too-late") {
		t.Errorf("expected no bytes from the child after timeout, got %q", got)
	}
	if got := w.Body.String(); !strings.Contains(got, "timed out") {
		t.Errorf("expected the configured timeout message in the body, got %q", got)
	}
}
