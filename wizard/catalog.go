package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/woodhall335/landlord-heaven/facts"
)

// Catalog holds the validated question packs, keyed by case type. A catalog
// is immutable once built; hot reload swaps in a whole new one.
type Catalog struct {
	packs map[string][]Question
	index map[string]map[string]Question // case type -> question ID -> question
}

// LoadCatalog discovers every YAML pack under dir (recursively) and builds a
// validated catalog. Packs for the same case type accumulate in file order.
func LoadCatalog(dir string) (*Catalog, error) {
	pattern := filepath.Join(dir, "**", "*.{yaml,yml}")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob question packs: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no question packs found under %s", dir)
	}
	sort.Strings(matches)

	c := &Catalog{
		packs: make(map[string][]Question),
		index: make(map[string]map[string]Question),
	}

	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var pack Pack
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("invalid question pack %s: %w", path, err)
		}

		if err := c.addPack(pack); err != nil {
			return nil, fmt.Errorf("invalid question pack %s: %w", path, err)
		}
	}

	return c, nil
}

func (c *Catalog) addPack(pack Pack) error {
	if err := ValidatePack(pack); err != nil {
		return err
	}

	byID := c.index[pack.CaseType]
	if byID == nil {
		byID = make(map[string]Question)
		c.index[pack.CaseType] = byID
	}

	for _, q := range pack.Questions {
		if _, dup := byID[q.ID]; dup {
			return fmt.Errorf("duplicate question ID %q for case type %q", q.ID, pack.CaseType)
		}
		byID[q.ID] = q
		c.packs[pack.CaseType] = append(c.packs[pack.CaseType], q)
	}

	return nil
}

// Questions returns the ordered questions for a case type, or nil when the
// case type is unknown.
func (c *Catalog) Questions(caseType string) []Question {
	qs := c.packs[caseType]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// Question looks up one question by case type and ID.
func (c *Catalog) Question(caseType, id string) (Question, bool) {
	q, ok := c.index[caseType][id]
	return q, ok
}

// CaseTypes returns the known case types, sorted.
func (c *Catalog) CaseTypes() []string {
	types := make([]string, 0, len(c.packs))
	for ct := range c.packs {
		types = append(types, ct)
	}
	sort.Strings(types)
	return types
}

// ValidatePack validates a question pack: identifiers, question types, and
// mapping paths. A bad pack is rejected whole, so a typo in one question
// cannot silently drop facts for live sessions.
func ValidatePack(pack Pack) error {
	if err := validateIdentifier(pack.CaseType); err != nil {
		return fmt.Errorf("invalid case type %q: %w", pack.CaseType, err)
	}

	if len(pack.Questions) == 0 {
		return fmt.Errorf("case type %q has no questions", pack.CaseType)
	}

	for _, q := range pack.Questions {
		if err := validateIdentifier(q.ID); err != nil {
			return fmt.Errorf("invalid question ID %q: %w", q.ID, err)
		}
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %q has no text", q.ID)
		}
		if !isValidQuestionType(q.Type) {
			return fmt.Errorf("question %q has invalid type %q", q.ID, q.Type)
		}
		if (q.Type == TypeSelect || q.Type == TypeMultiSelect) && len(q.Options) == 0 {
			return fmt.Errorf("question %q of type %q needs options", q.ID, q.Type)
		}

		// maps_to may be empty: some questions only steer the flow and
		// have no downstream fact targets. Present entries must be
		// well-formed paths of valid identifier segments.
		for _, path := range q.MapsTo {
			key := facts.CanonicalKey(path)
			if key == "" {
				return fmt.Errorf("question %q has an empty maps_to path", q.ID)
			}
			for _, segment := range strings.Split(key, ".") {
				if err := validateIdentifier(segment); err != nil {
					return fmt.Errorf("question %q maps_to %q: %w", q.ID, path, err)
				}
			}
		}
	}

	return nil
}

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateIdentifier checks a case type, question ID, or fact key segment.
func validateIdentifier(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("identifier length %d exceeds maximum of 100 characters", len(name))
	}
	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("must start with a letter or underscore, followed by letters, digits, or underscores")
	}
	return nil
}

func isValidQuestionType(t string) bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeConfirm, TypeSelect, TypeMultiSelect, TypeAddress, TypeGroup:
		return true
	}
	return false
}
