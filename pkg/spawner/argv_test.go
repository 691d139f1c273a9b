package spawner

import (
	"net/http"
	"strings"
	"testing"
)

func TestLuaArgvGenerator_ServiceBlobIsEmpty(t *testing.T) {
	t.Parallel()

	svc := testService(t, ServiceOptions{Code: "print('hi')", Language: "lua", View: "should-not-appear"})
	cfg := Config{}.WithDefaults()
	env := BuildEnv(svc, &IncomingRequest{Headers: http.Header{}}, &cfg)

	argv, err := (LuaArgvGenerator{}).Generate(svc, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(argv) != 6 {
		t.Fatalf("expected 6 argv elements, got %d: %v", len(argv), argv)
	}
	if argv[5] != "{}" {
		t.Errorf("expected lua's service blob to be the literal empty object, got %q", argv[5])
	}
	if strings.Contains(argv[5], "should-not-appear") {
		t.Errorf("lua service blob leaked descriptor fields: %q", argv[5])
	}
}

func TestDefaultArgvGenerator_ServiceBlobCarriesFields(t *testing.T) {
	t.Parallel()

	svc := testService(t, ServiceOptions{Code: "print(1)", Language: "python3", View: "my-view"})
	cfg := Config{}.WithDefaults()
	env := BuildEnv(svc, &IncomingRequest{Headers: http.Header{}}, &cfg)

	argv, err := (DefaultArgvGenerator{}).Generate(svc, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(argv) != 6 {
		t.Fatalf("expected 6 argv elements, got %d: %v", len(argv), argv)
	}
	if !strings.Contains(argv[5], "my-view") {
		t.Errorf("expected non-lua service blob to carry the view field, got %q", argv[5])
	}
	if argv[1] != svc.Code {
		t.Errorf("expected argv[1] to be the service code, got %q", argv[1])
	}
}

func TestArgvSize(t *testing.T) {
	t.Parallel()

	got := argvSize([]string{"ab", "cde"})
	if got != 5 {
		t.Errorf("argvSize = %d, want 5", got)
	}
}
