package spawner

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount registers a Handler on pattern using chi's router. The handler
// remains reusable across every request that matches pattern:
// construction-time state lives on h, per-request state is allocated
// fresh by Wrap's closure. The inner route handler is a no-op because
// Wrap's middleware is terminal — it has already ended the response by
// the time chi would otherwise call it.
func Mount(r chi.Router, pattern string, h *Handler, next NextFunc) {
	r.With(h.Wrap(next)).HandleFunc(pattern, func(http.ResponseWriter, *http.Request) {})
}
