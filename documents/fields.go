package documents

import (
	"fmt"

	"github.com/woodhall335/landlord-heaven/facts"
)

// FormField binds one named field on a court form to the facts that can
// fill it. FactKeys are tried in order; the first present key wins, which
// lets newer dotted fact keys take precedence while older flat keys still
// fill legacy sessions.
type FormField struct {
	Field    string
	FactKeys []string
}

// Court-form field tables. The field names follow the fillable-PDF field
// naming on the respective HMCTS forms.
var formFieldTables = map[string][]FormField{
	FormN5: {
		{Field: "claimant_name", FactKeys: []string{"landlord_full_name"}},
		{Field: "claimant_address", FactKeys: []string{"landlord_address"}},
		{Field: "defendant_name", FactKeys: []string{"tenant_full_name"}},
		{Field: "property_address", FactKeys: []string{"property_address"}},
		{Field: "grounds", FactKeys: []string{"section8_grounds"}},
		{Field: "notice_served_date", FactKeys: []string{"notice_service.notice_date", "s8_date_served"}},
		{Field: "notice_expiry_date", FactKeys: []string{"notice_service.expiry_date", "s21_expiry_date"}},
	},
	FormN119: {
		{Field: "claimant_name", FactKeys: []string{"landlord_full_name"}},
		{Field: "defendant_name", FactKeys: []string{"tenant_full_name"}},
		{Field: "property_address", FactKeys: []string{"property_address"}},
		{Field: "tenancy_start_date", FactKeys: []string{"tenancy.start_date"}},
		{Field: "rent_amount", FactKeys: []string{"tenancy.monthly_rent_pounds"}},
		{Field: "rent_frequency", FactKeys: []string{"tenancy.rent_frequency"}},
		{Field: "arrears_amount", FactKeys: []string{"arrears.total_amount_pounds", "s8_arrears_amount"}},
		{Field: "grounds", FactKeys: []string{"section8_grounds"}},
		{Field: "particulars", FactKeys: []string{"section8.particulars"}},
	},
	FormN1: {
		{Field: "claimant_name", FactKeys: []string{"landlord_full_name"}},
		{Field: "claimant_address", FactKeys: []string{"landlord_address"}},
		{Field: "defendant_name", FactKeys: []string{"tenant_full_name"}},
		{Field: "defendant_address", FactKeys: []string{"property_address"}},
		{Field: "claim_amount", FactKeys: []string{"arrears.total_amount_pounds"}},
		{Field: "claim_particulars", FactKeys: []string{"money_claim.particulars", "section8.particulars"}},
	},
}

// MapFormFields projects a facts record onto the flat field map of a court
// form. Facts that are absent leave their form field out of the result
// entirely; the downstream form filler treats missing fields as blank.
func MapFormFields(form string, record facts.Record) (map[string]string, error) {
	table, ok := formFieldTables[form]
	if !ok {
		return nil, fmt.Errorf("unknown court form %q", form)
	}

	out := make(map[string]string, len(table))
	for _, field := range table {
		for _, key := range field.FactKeys {
			v, present := record[key]
			if !present {
				continue
			}
			out[field.Field] = formatValue(v)
			break
		}
	}
	return out, nil
}

// CourtForms returns the court forms with a field table.
func CourtForms() []string {
	return []string{FormN5, FormN119, FormN1}
}
