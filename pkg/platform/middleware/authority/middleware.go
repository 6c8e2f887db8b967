// Package authority provides HTTP plumbing for services that integrate the
// trustplane primitives: a middleware that assembles an authority context
// from request headers and the active trace, validates it fail-closed, and
// stores it in the request context.
//
// The middleware does not authenticate. It carries already-verified identity
// headers forward; verifying them is the calling service's job, upstream of
// this handler.
package authority

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	auth "trustplane/internal/authority"
	dErrors "trustplane/pkg/domain-errors"
)

// Header names for the authority fields.
const (
	HeaderWorkspaceID    = "X-Workspace-ID"
	HeaderActorID        = "X-Actor-ID"
	HeaderActorType      = "X-Actor-Type"
	HeaderAppID          = "X-App-ID"
	HeaderEnvironment    = "X-Environment"
	HeaderVersion        = "X-App-Version"
	HeaderBuildTimestamp = "X-Build-Timestamp"
	HeaderRequestID      = "X-Request-ID"
	HeaderTraceID        = "X-Trace-ID"
	HeaderDataClass      = "X-Data-Class"
)

type contextKey struct{}

// FromContext retrieves the validated authority context stored by Require.
func FromContext(ctx context.Context) (auth.Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(auth.Context)
	return ac, ok
}

// WithContext injects a validated authority context; tests use it to skip
// the HTTP layer.
func WithContext(ctx context.Context, ac auth.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// Require assembles an authority context from the request and validates it.
// Requests with missing or invalid authority are rejected with 403 and the
// violated invariant's error code; nothing is defaulted.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		candidate := auth.Context{
			WorkspaceID:    r.Header.Get(HeaderWorkspaceID),
			ActorID:        r.Header.Get(HeaderActorID),
			ActorType:      auth.ActorType(r.Header.Get(HeaderActorType)),
			AppID:          r.Header.Get(HeaderAppID),
			Environment:    auth.Environment(r.Header.Get(HeaderEnvironment)),
			Version:        r.Header.Get(HeaderVersion),
			BuildTimestamp: r.Header.Get(HeaderBuildTimestamp),
			RequestID:      r.Header.Get(HeaderRequestID),
			TraceID:        traceID(r),
			DataClass:      auth.DataClass(r.Header.Get(HeaderDataClass)),
		}

		validated, err := auth.Assert(&candidate)
		if err != nil {
			writeDenied(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), validated)))
	})
}

// traceID prefers the active OpenTelemetry span over the header so the
// authority context and distributed trace always agree.
func traceID(r *http.Request) string {
	if span := trace.SpanContextFromContext(r.Context()); span.HasTraceID() {
		return span.TraceID().String()
	}
	return r.Header.Get(HeaderTraceID)
}

func writeDenied(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    string(dErrors.CodeOf(err)),
		"message": err.Error(),
	})
}
