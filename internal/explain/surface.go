// Package explain assembles "what is known / what is missing" views. A
// surface may expose uncertainty and provenance; it may never carry anything
// that reads like advice. Prohibited advice-implying keys are rejected at
// construction, regardless of nesting depth.
package explain

import (
	"trustplane/internal/identity"
	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/platform/scan"
)

// prohibitedKeys are advice/action-implying terms banned from surfaces.
var prohibitedKeys = []string{"recommend", "should", "action", "execute", "approve", "priority"}

// Completeness states how much of the picture the surface covers.
type Completeness string

const (
	CompletenessComplete Completeness = "complete"
	CompletenessPartial  Completeness = "partial"
	CompletenessUnknown  Completeness = "unknown"
)

func (c Completeness) Valid() bool {
	switch c {
	case CompletenessComplete, CompletenessPartial, CompletenessUnknown:
		return true
	}
	return false
}

// Input is the raw material for a surface.
type Input struct {
	Completeness    Completeness          `json:"completeness,omitempty"`
	Uncertainties   []string              `json:"uncertainties,omitempty"`
	ProvenanceTrail []identity.Provenance `json:"provenance_trail,omitempty"`
	EvidenceIDs     []string              `json:"evidence_ids,omitempty"`
	ContextPackIDs  []string              `json:"context_pack_ids,omitempty"`
}

// Surface is the normalized, owned view handed back to the caller. It
// deliberately has no field that could look like a recommendation.
type Surface struct {
	Completeness    Completeness          `json:"completeness"`
	Uncertainties   []string              `json:"uncertainties"`
	ProvenanceTrail []identity.Provenance `json:"provenance_trail"`
	EvidenceIDs     []string              `json:"evidence_ids"`
	ContextPackIDs  []string              `json:"context_pack_ids"`
}

// NewSurface validates and normalizes input into a Surface. The returned
// value owns its slices; mutating the input afterwards does not change it.
func NewSurface(in *Input) (Surface, error) {
	if in == nil {
		return Surface{}, dErrors.New(dErrors.CodeInvalidInput, "explainability input is required")
	}
	if err := scan.Prohibited(in, prohibitedKeys); err != nil {
		return Surface{}, err
	}

	completeness := in.Completeness
	if completeness == "" {
		completeness = CompletenessUnknown
	}
	if !completeness.Valid() {
		return Surface{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid completeness %q", in.Completeness)
	}

	return Surface{
		Completeness:    completeness,
		Uncertainties:   append([]string{}, in.Uncertainties...),
		ProvenanceTrail: append([]identity.Provenance{}, in.ProvenanceTrail...),
		EvidenceIDs:     append([]string{}, in.EvidenceIDs...),
		ContextPackIDs:  append([]string{}, in.ContextPackIDs...),
	}, nil
}
