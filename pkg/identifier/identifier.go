// Package identifier provides the name+uid identity shared by every entity
// in the compute graph: operations, data interfaces, sockets and nodes.
package identifier

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Identifier is the human-readable name and globally unique opaque id
// carried by every owned entity (Operation, DataInterface, Socket, Node).
// String equality on Name has no bearing on identity; Equal compares UIDs.
type Identifier struct {
	name string
	uid  string
}

// New returns an Identifier with the given name. If uid is empty, a fresh
// random uid is generated.
func New(name, uid string) Identifier {
	if uid == "" {
		uid = Generate()
	}
	return Identifier{name: name, uid: uid}
}

// Generate returns a fresh 128-bit random identifier rendered as lowercase
// hex (32 characters, no dashes) — the Go equivalent of the source's
// uuid.uuid4().hex.
func Generate() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Name returns the identifier's human-readable name.
func (id Identifier) Name() string { return id.name }

// UID returns the identifier's unique id.
func (id Identifier) UID() string { return id.uid }

// Equal reports whether two identifiers share the same uid.
func (id Identifier) Equal(other Identifier) bool { return id.uid == other.uid }
