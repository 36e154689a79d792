package wizard

import (
	"github.com/woodhall335/landlord-heaven/facts"
)

// SessionStore manages wizard session persistence. Facts are saved whole on
// every answered question; serializing concurrent answers for one session
// is the caller's job, the store only guarantees each save is atomic.
type SessionStore interface {
	// Create a new session
	Create(session *Session) error

	// Get a session by ID
	Get(id string) (*Session, error)

	// SaveFacts replaces a session's facts record
	SaveFacts(id string, record facts.Record) error

	// Delete a session
	Delete(id string) error
}
