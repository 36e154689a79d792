package wizard

import (
	"time"

	"github.com/woodhall335/landlord-heaven/facts"
)

// Question types supported by the wizard UI. The type decides the shape of
// the answer payload the controller receives: scalar for text/number/date,
// bool for confirm, a string slice for multiselect, and an object for
// address and group widgets that answer several mapped facts at once.
const (
	TypeText        = "text"
	TypeNumber      = "number"
	TypeDate        = "date"
	TypeConfirm     = "confirm"
	TypeSelect      = "select"
	TypeMultiSelect = "multiselect"
	TypeAddress     = "address"
	TypeGroup       = "group"
)

// Question is one step of a case wizard, loaded from a YAML pack. MapsTo
// lists the facts record keys this question populates; the fact mapper
// resolves how a single answer fans out across them.
type Question struct {
	ID      string   `yaml:"id"`
	Text    string   `yaml:"text"`
	Type    string   `yaml:"type"`
	Options []string `yaml:"options,omitempty"`
	MapsTo  []string `yaml:"maps_to"`
}

// Pack groups the questions for one case type.
type Pack struct {
	CaseType  string     `yaml:"case_type"`
	Questions []Question `yaml:"questions"`
}

// Session is one landlord's in-progress case: the case type picks the
// question pack, Facts accumulates mapped answers one question at a time.
type Session struct {
	ID        string
	CaseType  string
	Facts     facts.Record
	CreatedAt time.Time
	UpdatedAt time.Time
}
