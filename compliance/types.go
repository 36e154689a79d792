package compliance

import "time"

// Severity levels for a failed check. An "error" blocks document generation
// (an invalid Section 21 notice is worthless in court); a "warning" is
// surfaced to the landlord but does not block.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule is a single CEL compliance check evaluated against a case's flat
// facts record. The expression addresses facts by their literal keys,
// including dotted ones, e.g.
//
//	"deposit_protected" in facts && facts["deposit_protected"] == true
//
// and must evaluate to true for a compliant case.
type Rule struct {
	ID           string
	Name         string
	DocumentType string
	Expression   string
	Severity     string
	Message      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckResult is the outcome of evaluating one rule against a facts record.
// Error carries a non-fatal evaluation failure; the check counts as not
// passed but never aborts the rest of the pass.
type CheckResult struct {
	RuleID   string
	RuleName string
	Severity string
	Message  string
	Passed   bool
	Error    error
}
