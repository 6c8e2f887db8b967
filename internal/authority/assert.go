package authority

import (
	dErrors "trustplane/pkg/domain-errors"
)

// check is one link in the validation chain: a predicate plus the code and
// field it reports on failure. The chain is an ordered list evaluated in a
// single pass; the first failing check wins.
type check struct {
	code  dErrors.Code
	field string
	ok    func(Context) bool
}

var checks = []check{
	{dErrors.CodeWorkspaceMissing, "workspaceId", func(c Context) bool { return c.WorkspaceID != "" }},
	{dErrors.CodeActorMissing, "actorId", func(c Context) bool { return c.ActorID != "" }},
	{dErrors.CodeActorMissing, "actorType", func(c Context) bool { return c.ActorType.Valid() }},
	{dErrors.CodeAppMissing, "appId", func(c Context) bool { return c.AppID != "" }},
	{dErrors.CodeEnvMissing, "environment", func(c Context) bool { return c.Environment.Valid() }},
	{dErrors.CodeVersionMissing, "version", func(c Context) bool { return c.Version != "" }},
	{dErrors.CodeVersionMissing, "buildTimestamp", func(c Context) bool { return c.BuildTimestamp != "" }},
	{dErrors.CodeInvalidInput, "requestId", func(c Context) bool { return c.RequestID != "" }},
	{dErrors.CodeInvalidInput, "traceId", func(c Context) bool { return c.TraceID != "" }},
	{dErrors.CodeDataClassInvalid, "dataClass", func(c Context) bool { return c.DataClass.Valid() }},
}

// Assert validates a caller-supplied context and returns an owned, validated
// copy. Rejection is fail-closed: the first missing or invalid field raises
// its specific code; nothing is ever defaulted.
func Assert(ctx *Context) (Context, error) {
	if ctx == nil {
		return Context{}, dErrors.New(dErrors.CodeAuthorityMissing, "authority context is required")
	}
	c := *ctx
	for _, chk := range checks {
		if !chk.ok(c) {
			return Context{}, dErrors.Newf(chk.code, "authority field %q is missing or invalid", chk.field).
				WithDetail("field", chk.field)
		}
	}
	return c, nil
}

// DenyCrossWorkspace raises unless both workspace ids are non-empty and
// exactly equal. Every store and gateway calls this before returning or
// mutating workspace-scoped data.
func DenyCrossWorkspace(currentID, targetID string) error {
	if currentID == "" || targetID == "" {
		return dErrors.New(dErrors.CodeWorkspaceMissing, "workspace id is required on both sides of an access check")
	}
	if currentID != targetID {
		return dErrors.New(dErrors.CodeCrossWorkspaceDenied, "workspace ids do not match").
			WithDetail("current", currentID).
			WithDetail("target", targetID)
	}
	return nil
}
