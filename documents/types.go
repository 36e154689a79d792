package documents

// Document types a case can produce. These match the wizard case types and
// the compliance engine's document-type scoping.
const (
	DocSection8   = "section8"
	DocSection21  = "section21"
	DocMoneyClaim = "money_claim"
)

// Renderable forms. Form 3 and Form 6A are the prescribed GOV.UK notice
// forms; the particulars block feeds a money-claim pack. The court forms
// (N5, N119, N1) are not rendered here, only mapped to flat field values
// for an external form filler.
const (
	FormSection8Notice  = "form3"
	FormSection21Notice = "form6a"
	FormParticulars     = "particulars"

	FormN5   = "n5"
	FormN119 = "n119"
	FormN1   = "n1"
)
