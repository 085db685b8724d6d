package response

import (
	"net/http"

	"github.com/baechuer/skillmarket/internal/pkg/reqctx"
)

// RequestIDFromContext returns the id set by middleware.RequestID, if any.
func RequestIDFromContext(r *http.Request) string {
	return reqctx.RequestID(r.Context())
}
