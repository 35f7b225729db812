package middleware

import (
	"context"
	"net/http"

	"bookly/pkg/logger"
	"bookly/pkg/token"

	"github.com/julienschmidt/httprouter"
)

const IdentityKey contextKey = "identity"

// IdentityFrom returns the authenticated username, if any.
func IdentityFrom(ctx context.Context) string {
	if v := ctx.Value(IdentityKey); v != nil {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}

// RequireAuth guards a single route with bearer-token authentication.
// It wraps individual httprouter handles rather than the whole chain
// because the read-only booking endpoints stay public.
func RequireAuth(tokens *token.Service, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			bearer := token.ExtractBearer(r.Header.Get("Authorization"))
			if bearer == "" {
				reject(w, "Access denied.")
				return
			}

			claims, err := tokens.Verify(bearer)
			if err != nil {
				log.Warn("Rejected invalid bearer token",
					"request_id", requestIDFrom(r),
					"path", r.URL.Path,
					"error", err,
				)
				reject(w, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, claims.Username)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
