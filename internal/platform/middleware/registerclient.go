package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type registerClientKey struct{}

// RegisterClient identifies the register software calling the local API from
// its User-Agent header and stores a compact description in the context.
// Audit entries pick it up so a log line shows which integration (browser
// extension, native register, curl during troubleshooting) drove the event.
func RegisterClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ua := useragent.New(raw)
		name, version := ua.Browser()
		client := name
		if version != "" {
			client = name + "/" + version
		}
		if ua.Bot() {
			client = client + " (bot)"
		}

		ctx := context.WithValue(r.Context(), registerClientKey{}, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRegisterClient retrieves the register client description from the
// context, or "" when the caller sent no User-Agent.
func GetRegisterClient(ctx context.Context) string {
	if client, ok := ctx.Value(registerClientKey{}).(string); ok {
		return client
	}
	return ""
}
