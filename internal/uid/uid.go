// Package uid provides the identifiers shared by every population, projection and network.
package uid

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// UID is an opaque 128-bit identifier. The zero value is the nil UID.
type UID struct {
	tag uuid.UUID
}

// Nil is the UID that never identifies an entity.
var Nil = UID{}

// New returns a fresh UID from the default generator.
func New() UID {
	return defaultGenerator().Next()
}

func FromUUID(id uuid.UUID) UID {
	return UID{tag: id}
}

// Parse accepts any textual form understood by uuid.Parse.
func Parse(s string) (UID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("parse uid %q: %w", s, err)
	}
	return UID{tag: id}, nil
}

func MustParse(s string) UID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u UID) UUID() uuid.UUID {
	return u.tag
}

func (u UID) IsNil() bool {
	return u.tag == uuid.Nil
}

func (u UID) String() string {
	return u.tag.String()
}

// Compare orders UIDs by their byte representation.
func (u UID) Compare(other UID) int {
	return bytes.Compare(u.tag[:], other.tag[:])
}

func (u UID) MarshalText() ([]byte, error) {
	return u.tag.MarshalText()
}

func (u *UID) UnmarshalText(data []byte) error {
	return u.tag.UnmarshalText(data)
}
