// Package authority defines the canonical who/what/where envelope required by
// every trustplane primitive call, and the fail-closed validation gate that
// enforces it. There is no ambient "current user" anywhere in the library:
// every operation is handed its authority explicitly.
package authority

// ActorType classifies the acting principal.
type ActorType string

const (
	ActorUser       ActorType = "user"
	ActorService    ActorType = "service"
	ActorBreakglass ActorType = "breakglass"
)

func (t ActorType) Valid() bool {
	switch t {
	case ActorUser, ActorService, ActorBreakglass:
		return true
	}
	return false
}

// Environment identifies the deployment tier the caller runs in.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

func (e Environment) Valid() bool {
	switch e {
	case EnvDev, EnvStaging, EnvProd:
		return true
	}
	return false
}

// DataClass is the sensitivity tier of the data an operation touches. There
// is no default: omission is an error, never an implicit "none".
type DataClass string

const (
	DataClassNone       DataClass = "none"
	DataClassInternal   DataClass = "internal"
	DataClassPII        DataClass = "pii"
	DataClassPHI        DataClass = "phi"
	DataClassRestricted DataClass = "restricted"
)

func (d DataClass) Valid() bool {
	switch d {
	case DataClassNone, DataClassInternal, DataClassPII, DataClassPHI, DataClassRestricted:
		return true
	}
	return false
}

// Sensitive reports whether the class requires redaction in logs and alert
// dispatch records.
func (d DataClass) Sensitive() bool {
	switch d {
	case DataClassPII, DataClassPHI, DataClassRestricted:
		return true
	}
	return false
}

// Context describes who is acting, on behalf of which workspace, from which
// build, under which correlation ids. Constructed once per inbound request
// by the caller and validated on every primitive call.
//
// Invariants:
//   - every field is required; validation is fail-closed
//   - DataClass must be one of the five enumerated values
//   - the validated copy returned by Assert is a value, so callers cannot
//     mutate authority mid-operation
type Context struct {
	WorkspaceID    string    `json:"workspace_id"`
	ActorType      ActorType `json:"actor_type"`
	ActorID        string    `json:"actor_id"`
	AppID          string    `json:"app_id"`
	Environment    Environment `json:"environment"`
	Version        string    `json:"version"`
	BuildTimestamp string    `json:"build_timestamp"`
	RequestID      string    `json:"request_id"`
	TraceID        string    `json:"trace_id"`
	DataClass      DataClass `json:"data_class"`
}
