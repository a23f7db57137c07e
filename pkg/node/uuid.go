package node

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// UUID identifies a class within a project. Its canonical text form is the
// standard base64 encoding of the 16 raw bytes.
type UUID uuid.UUID

// ZeroUUID marks a missing reference, e.g. a function without owning class.
var ZeroUUID UUID

// NewUUID returns a fresh random identifier.
func NewUUID() UUID { return UUID(uuid.New()) }

// ParseUUID decodes the canonical text form produced by [UUID.String].
func ParseUUID(s string) (UUID, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ZeroUUID, fmt.Errorf("decode uuid %q: %w", s, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return ZeroUUID, fmt.Errorf("decode uuid %q: %w", s, err)
	}
	return UUID(u), nil
}

// String returns the canonical base64 text form.
func (u UUID) String() string {
	return base64.StdEncoding.EncodeToString(u[:])
}

// IsZero reports whether u is the zero sentinel.
func (u UUID) IsZero() bool { return u == ZeroUUID }
