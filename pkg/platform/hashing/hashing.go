// Package hashing provides deterministic content fingerprinting for
// redaction-safe logging. Callers log a 64-hex SHA-256 digest instead of the
// raw content, mirroring how audit records carry SubjectIDHash-style fields
// without storing PII.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	dErrors "trustplane/pkg/domain-errors"
)

// Canonical serializes a value into the normalized JSON form used for
// hashing. encoding/json sorts map keys and emits struct fields in
// declaration order, so equal values always serialize identically.
func Canonical(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "value is not serializable")
	}
	return b, nil
}

// SumHex returns the lowercase 64-hex SHA-256 digest of data.
func SumHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue fingerprints a value: canonical serialization, then SHA-256.
func HashValue(v any) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return SumHex(b), nil
}
