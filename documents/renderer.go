package documents

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/woodhall335/landlord-heaven/facts"
)

// Renderer produces document HTML from a flat facts record. Every fact read
// tolerates absence: a missing key renders as an empty field, never a
// panic, so a partially answered wizard can still preview a draft.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the built-in form templates.
func NewRenderer() (*Renderer, error) {
	tmpl := template.New("documents").Funcs(template.FuncMap{
		"fact":    factString,
		"hasFact": hasFact,
		"pounds":  poundsString,
	})

	for name, text := range formTemplates {
		var err error
		tmpl, err = tmpl.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Forms returns the renderable form names.
func (r *Renderer) Forms() []string {
	return []string{FormSection8Notice, FormSection21Notice, FormParticulars}
}

// Render executes the named form template against a facts record.
func (r *Renderer) Render(form string, record facts.Record) ([]byte, error) {
	if r.tmpl.Lookup(form) == nil {
		return nil, fmt.Errorf("unknown form %q", form)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, form, record); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", form, err)
	}
	return buf.Bytes(), nil
}

// factString formats one fact for display. Absent keys and nil values
// render empty; slices join with a comma.
func factString(record facts.Record, key string) string {
	v, ok := record[key]
	if !ok {
		return ""
	}
	return formatValue(v)
}

func hasFact(record facts.Record, key string) bool {
	_, ok := record[key]
	return ok
}

// poundsString renders a numeric fact as a money amount with two decimals.
func poundsString(record facts.Record, key string) string {
	v, ok := record[key]
	if !ok {
		return ""
	}
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', 2, 64)
	case int:
		return strconv.FormatFloat(float64(n), 'f', 2, 64)
	default:
		return formatValue(v)
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, formatValue(e))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	default:
		return fmt.Sprintf("%v", t)
	}
}
