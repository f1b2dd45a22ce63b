// Package clock implements the Clock and IDProvider ports. Operations depend
// on these instead of reading time.Now or generating identifiers inline, so
// tests can substitute fixed values and assert exact outputs.
package clock

import (
	"time"

	"github.com/google/uuid"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Clock      = System{}
	_ ports.IDProvider = UUID{}
)

// System reads the wall clock.
type System struct{}

// Now returns the current time in UTC.
func (System) Now() time.Time { return time.Now().UTC() }

// UUID generates random (version 4) UUID strings.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() string { return uuid.NewString() }
