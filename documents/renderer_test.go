package documents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodhall335/landlord-heaven/facts"
)

func sampleFacts() facts.Record {
	return facts.Record{
		"tenant_full_name":   "Sonia Shezadi",
		"property_address":   "35 Woodhall Park Avenue, Pudsey, LS28 7HF",
		"landlord_full_name": "Tariq Mohammed",
		"landlord_address":   "1 Example Street, Leeds, LS1 1AA",
		"landlord_phone":     "07123 456789",
		"section8_grounds":   []any{"8", "10", "11"},
		"section8.particulars": "The tenant has failed to pay rent since October 2025. " +
			"As of the date of this notice, rent arrears total GBP 3,000.00.",
		"notice_service.notice_date":                "01/01/2026",
		"notice_service.earliest_proceedings_date":  "15/01/2026",
		"notice_service.expiry_date":                "14/07/2026",
		"tenancy.start_date":                        "01/04/2024",
		"tenancy.monthly_rent_pounds":               1500.0,
		"arrears.total_amount_pounds":               3000.0,
		"arrears.statement_date":                    "22/12/2025",
	}
}

func TestRenderSection8Notice(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	out, err := renderer.Render(FormSection8Notice, sampleFacts())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "FORM NO. 3")
	assert.Contains(t, html, "Sonia Shezadi")
	assert.Contains(t, html, "35 Woodhall Park Avenue, Pudsey, LS28 7HF")
	assert.Contains(t, html, "Grounds 8, 10, 11")
	assert.Contains(t, html, "15/01/2026")
	assert.Contains(t, html, "Tariq Mohammed")
	assert.Contains(t, html, "3000.00")
	assert.Contains(t, html, "1500.00")
}

func TestRenderSection21Notice(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	out, err := renderer.Render(FormSection21Notice, sampleFacts())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "FORM NO. 6A")
	assert.Contains(t, html, "14/07/2026")
	assert.Contains(t, html, "Sonia Shezadi")
	assert.Contains(t, html, "Tariq Mohammed")
}

func TestRenderParticulars(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	out, err := renderer.Render(FormParticulars, sampleFacts())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "PARTICULARS OF CLAIM")
	assert.Contains(t, html, "01/04/2024")
	assert.Contains(t, html, "3000.00")
}

func TestRenderToleratesAbsentFacts(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	// A freshly started session has no facts at all. Every form must still
	// render a draft with empty fields.
	for _, form := range renderer.Forms() {
		out, err := renderer.Render(form, facts.Record{})
		require.NoError(t, err, "form %s", form)
		assert.NotEmpty(t, out)
	}
}

func TestRenderUnknownForm(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	_, err = renderer.Render("form999", sampleFacts())
	assert.Error(t, err)
}

func TestRenderEscapesFactValues(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	record := facts.Record{
		"tenant_full_name": `<script>alert("x")</script>`,
	}
	out, err := renderer.Render(FormSection21Notice, record)
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(out), "<script>alert"),
		"fact values must be HTML-escaped")
}

func TestFormatValue(t *testing.T) {
	testCases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "Yes"},
		{false, "No"},
		{1500.0, "1500"},
		{1500.5, "1500.5"},
		{42, "42"},
		{[]any{"8", "10"}, "8, 10"},
		{[]string{"a", "b"}, "a, b"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, formatValue(tc.in), "formatValue(%v)", tc.in)
	}
}
