package control

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
)

type fakeStatus struct {
	calls []bool
}

func (f *fakeStatus) SetCheckingRegistry(v bool) {
	f.calls = append(f.calls, v)
}

type fakeTerminator struct {
	terminated bool
}

func (f *fakeTerminator) Terminate() {
	f.terminated = true
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		chunk          string
		wantStatus     []bool
		wantHeaderKey  string
		wantHeaderVal  string
		wantTerminated bool
	}{
		{
			name:       "registry begin",
			chunk:      "#registry-begin\n",
			wantStatus: []bool{true},
		},
		{
			name:       "registry end",
			chunk:      "#registry-end\n",
			wantStatus: []bool{false},
		},
		{
			name:       "registry begin then end",
			chunk:      "#registry-begin\n#registry-end\n",
			wantStatus: []bool{true, false},
		},
		{
			name:          "header directive sets response header",
			chunk:         "#header: X-Custom=value\n",
			wantHeaderKey: "X-Custom",
			wantHeaderVal: "value",
		},
		{
			name:           "fatal directive terminates",
			chunk:          "#fatal: out of memory\n",
			wantTerminated: true,
		},
		{
			name: "plain line is a no-op diagnostic",
			chunk: "just some stdout chatter\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status := &fakeStatus{}
			term := &fakeTerminator{}
			w := httptest.NewRecorder()

			DefaultHandler{}.Handle([]byte(tt.chunk), status, testLogger(), w, term)

			if len(status.calls) != len(tt.wantStatus) {
				t.Fatalf("SetCheckingRegistry calls = %v, want %v", status.calls, tt.wantStatus)
			}
			for i, want := range tt.wantStatus {
				if status.calls[i] != want {
					t.Errorf("SetCheckingRegistry call %d = %v, want %v", i, status.calls[i], want)
				}
			}

			if tt.wantHeaderKey != "" {
				if got := w.Header().Get(tt.wantHeaderKey); got != tt.wantHeaderVal {
					t.Errorf("header %q = %q, want %q", tt.wantHeaderKey, got, tt.wantHeaderVal)
				}
			}

			if term.terminated != tt.wantTerminated {
				t.Errorf("Terminate called = %v, want %v", term.terminated, tt.wantTerminated)
			}
		})
	}
}

func TestDefaultHandler_HeaderIgnoredWithoutEquals(t *testing.T) {
	t.Parallel()

	status := &fakeStatus{}
	term := &fakeTerminator{}
	w := httptest.NewRecorder()

	DefaultHandler{}.Handle([]byte("#header: malformed\n"), status, testLogger(), w, term)

	if len(w.Header()) != 0 {
		t.Errorf("expected no headers set, got %v", w.Header())
	}
}
