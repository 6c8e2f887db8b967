// Package testutil provides fixtures shared across test suites.
package testutil

import "trustplane/internal/authority"

// Authority returns a fully-populated, valid authority context for the given
// workspace. Tests mutate individual fields to exercise failure paths.
func Authority(workspaceID string) authority.Context {
	return authority.Context{
		WorkspaceID:    workspaceID,
		ActorType:      authority.ActorUser,
		ActorID:        "actor-1",
		AppID:          "app-test",
		Environment:    authority.EnvDev,
		Version:        "0.1.0",
		BuildTimestamp: "2026-08-01T00:00:00Z",
		RequestID:      "req-1",
		TraceID:        "trace-1",
		DataClass:      authority.DataClassNone,
	}
}
