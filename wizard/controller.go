package wizard

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/woodhall335/landlord-heaven/facts"
)

// Controller drives a case wizard: it starts sessions, looks up each
// answered question in the live catalog, folds the answer into the session's
// facts through the mapper, and persists the result. The mapper itself
// never fails; the only error paths here are unknown sessions, unknown
// questions, and store failures.
type Controller struct {
	catalogs CatalogSource
	store    SessionStore
	mapper   *facts.Mapper
	log      *slog.Logger
}

// NewController wires a controller. A nil logger falls back to slog.Default.
func NewController(catalogs CatalogSource, store SessionStore, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		catalogs: catalogs,
		store:    store,
		mapper:   facts.NewMapper(log),
		log:      log,
	}
}

// StartSession creates an empty session for a known case type.
func (c *Controller) StartSession(caseType string) (*Session, error) {
	if len(c.catalogs.Catalog().Questions(caseType)) == 0 {
		return nil, fmt.Errorf("unknown case type %q", caseType)
	}

	session := &Session{
		ID:       uuid.NewString(),
		CaseType: caseType,
		Facts:    facts.Record{},
	}

	if err := c.store.Create(session); err != nil {
		return nil, err
	}

	c.log.Info("wizard session started",
		"session_id", session.ID,
		"case_type", caseType,
	)

	return session, nil
}

// Answer applies one answered question to a session and returns the updated
// session. The raw answer value goes to the mapper untouched; anything the
// mapper skips is logged there, never surfaced to the landlord.
func (c *Controller) Answer(sessionID, questionID string, value any) (*Session, error) {
	session, err := c.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	question, ok := c.catalogs.Catalog().Question(session.CaseType, questionID)
	if !ok {
		return nil, fmt.Errorf("unknown question %q for case type %q", questionID, session.CaseType)
	}

	updated := c.mapper.Apply(session.Facts, question.MapsTo, value)

	if err := c.store.SaveFacts(sessionID, updated); err != nil {
		return nil, err
	}

	session.Facts = updated
	return session, nil
}

// Facts returns the current facts record for a session.
func (c *Controller) Facts(sessionID string) (facts.Record, error) {
	session, err := c.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Facts, nil
}
