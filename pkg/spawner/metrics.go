package spawner

import (
	"context"
	"io"
	"net/http"

	"github.com/digitallysavvy/go-spawner/pkg/spawner/control"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/digitallysavvy/go-spawner/pkg/spawner"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// outcomeLabel classifies an Outcome for span attributes.
func outcomeLabel(o Outcome) string {
	switch o.Err.(type) {
	case nil:
		return "ok"
	case *TimeoutError:
		return "timeout"
	case *RuntimeChildError:
		return "runtime_error"
	case *SpawnError:
		return "spawn_error"
	case *TranspileError:
		return "transpile_error"
	case *ArgvTooLargeError:
		return "argv_too_large"
	default:
		return "error"
	}
}

// TracedInvoke wraps Invoke with a span named "spawner.invoke" carrying
// the language and the outcome classification. It also stamps a
// generated correlation id as the X-Spawn-Invocation-Id response
// header before Invoke writes any body bytes, so callers can always
// correlate a response with a trace even on the earliest error paths.
func TracedInvoke(
	ctx context.Context,
	reg *Registry,
	svc *ServiceDescriptor,
	req *IncomingRequest,
	body io.Reader,
	w http.ResponseWriter,
	cfg *Config,
	ctrl control.Handler,
) Outcome {
	id := uuid.NewString()
	w.Header().Set("X-Spawn-Invocation-Id", id)

	_, span := tracer().Start(ctx, "spawner.invoke", trace.WithAttributes(
		attribute.String("spawner.language", string(svc.Language)),
		attribute.String("spawner.invocation_id", id),
	))
	defer span.End()

	outcome := Invoke(reg, svc, req, body, w, cfg, ctrl)
	span.SetAttributes(attribute.String("spawner.outcome", outcomeLabel(outcome)))
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
	}
	return outcome
}
