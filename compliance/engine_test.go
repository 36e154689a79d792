package compliance

import (
	"strings"
	"sync"
	"testing"

	"github.com/woodhall335/landlord-heaven/facts"
)

func section21Facts() facts.Record {
	return facts.Record{
		"deposit_protected":           true,
		"epc_provided":                true,
		"gas_safety_cert_provided":    true,
		"how_to_rent_guide_provided":  false,
		"notice_service.notice_date":  "22/12/2025",
		"notice_service.expiry_date":  "14/07/2026",
		"tenancy.monthly_rent_pounds": 1500.0,
		"arrears.total_amount_pounds": 3000.0,
	}
}

// TestNewEngine verifies the engine constructor over an empty store.
func TestNewEngine(t *testing.T) {
	store := NewInMemoryRuleStore()

	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	if engine == nil {
		t.Fatal("NewEngine() should return non-nil engine")
	}
}

// TestNewEngineCompilesExistingRules verifies that all active rules are
// compiled on construction and inactive ones are skipped.
func TestNewEngineCompilesExistingRules(t *testing.T) {
	store := NewInMemoryRuleStore()

	rules := []*Rule{
		{ID: "deposit", Name: "Deposit protected", Expression: `facts["deposit_protected"] == true`, Severity: SeverityError, Active: true},
		{ID: "epc", Name: "EPC provided", Expression: `facts["epc_provided"] == true`, Severity: SeverityError, Active: true},
		{ID: "draft", Name: "Draft check", Expression: `false`, Severity: SeverityWarning, Active: false},
	}

	for _, rule := range rules {
		if err := store.Add(rule); err != nil {
			t.Fatalf("Failed to add rule: %v", err)
		}
	}

	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	result, err := engine.Check("deposit", section21Facts())
	if err != nil {
		t.Fatalf("Check() failed for pre-compiled rule: %v", err)
	}
	if !result.Passed {
		t.Errorf("deposit check should pass for protected deposit, got %+v", result)
	}
}

// TestCompileRuleSuccess verifies compilation of the expression shapes rule
// packs actually use against the flat facts map.
func TestCompileRuleSuccess(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	testCases := []struct {
		name       string
		expression string
	}{
		{"Simple boolean", `true`},
		{"Flat key access", `facts["deposit_protected"] == true`},
		{"Dotted literal key", `facts["notice_service.notice_date"] != ""`},
		{"Presence check", `"epc_provided" in facts`},
		{"Boolean logic", `facts["deposit_protected"] == true && facts["epc_provided"] == true`},
		{"Arithmetic", `double(facts["arrears.total_amount_pounds"]) >= 2.0 * double(facts["tenancy.monthly_rent_pounds"])`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.CompileRule("test-"+tc.name, tc.expression)
			if err != nil {
				t.Errorf("CompileRule(%q) failed: %v", tc.expression, err)
			}
		})
	}
}

// TestCompileRuleError verifies that broken expressions are rejected with a
// descriptive error.
func TestCompileRuleError(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	testCases := []struct {
		name       string
		expression string
	}{
		{"Syntax error", `facts["deposit_protected"] ==`},
		{"Unknown variable", `answers["deposit_protected"] == true`},
		{"Unbalanced bracket", `facts["deposit_protected" == true`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.CompileRule("bad-"+tc.name, tc.expression)
			if err == nil {
				t.Errorf("CompileRule(%q) should fail", tc.expression)
			} else if !strings.Contains(err.Error(), "error") {
				t.Errorf("error should be descriptive, got: %v", err)
			}
		})
	}
}

// TestCheckMissingFactKey verifies that expressions guard key absence with
// `in`, and that an unguarded access to a missing key is captured as a
// result error rather than aborting the pass.
func TestCheckMissingFactKey(t *testing.T) {
	store := NewInMemoryRuleStore()

	guarded := &Rule{
		ID:         "guarded",
		Name:       "How to Rent guide",
		Expression: `"how_to_rent_guide_provided" in facts && facts["how_to_rent_guide_provided"] == true`,
		Severity:   SeverityError,
		Active:     true,
	}
	unguarded := &Rule{
		ID:         "unguarded",
		Name:       "Selective licence",
		Expression: `facts["selective_licence_held"] == true`,
		Severity:   SeverityWarning,
		Active:     true,
	}

	for _, r := range []*Rule{guarded, unguarded} {
		if err := store.Add(r); err != nil {
			t.Fatalf("Failed to add rule: %v", err)
		}
	}

	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	results, err := engine.CheckAll(facts.Record{})
	if err != nil {
		t.Fatalf("CheckAll() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, result := range results {
		switch result.RuleID {
		case "guarded":
			if result.Passed || result.Error != nil {
				t.Errorf("guarded check on empty facts should fail cleanly, got %+v", result)
			}
		case "unguarded":
			if result.Error == nil {
				t.Errorf("unguarded access to a missing key should surface an evaluation error")
			}
			if result.Passed {
				t.Errorf("a check that errored must not count as passed")
			}
		}
	}
}

// TestCheckAllContinuesPastFailures verifies that one failing rule does not
// stop the rest of the pass.
func TestCheckAllContinuesPastFailures(t *testing.T) {
	store := NewInMemoryRuleStore()

	rules := []*Rule{
		{ID: "errors", Name: "Errors", Expression: `facts["missing"] == true`, Severity: SeverityError, Active: true},
		{ID: "passes", Name: "Passes", Expression: `facts["deposit_protected"] == true`, Severity: SeverityError, Active: true},
	}
	for _, r := range rules {
		if err := store.Add(r); err != nil {
			t.Fatalf("Failed to add rule: %v", err)
		}
	}

	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	results, err := engine.CheckAll(section21Facts())
	if err != nil {
		t.Fatalf("CheckAll() failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	if passed != 1 {
		t.Errorf("exactly one rule should pass, got %d", passed)
	}
}

// TestAddRuleRejectsBadExpression verifies that a rule that does not compile
// never reaches the store.
func TestAddRuleRejectsBadExpression(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	err := engine.AddRule(&Rule{
		ID:         "broken",
		Name:       "Broken",
		Expression: `facts[ ==`,
		Active:     true,
	})
	if err == nil {
		t.Fatal("AddRule() with a bad expression should fail")
	}

	if _, err := store.Get("broken"); err == nil {
		t.Error("rejected rule must not be persisted")
	}
}

// TestUpdateRuleRecompiles verifies that updates swap in the new expression.
func TestUpdateRuleRecompiles(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	rule := &Rule{
		ID:         "epc",
		Name:       "EPC provided",
		Expression: `facts["epc_provided"] == true`,
		Severity:   SeverityError,
		Active:     true,
	}
	if err := engine.AddRule(rule); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}

	rule.Expression = `"epc_provided" in facts && facts["epc_provided"] == true`
	if err := engine.UpdateRule(rule); err != nil {
		t.Fatalf("UpdateRule() failed: %v", err)
	}

	result, err := engine.Check("epc", facts.Record{})
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}
	if result.Error != nil {
		t.Errorf("updated guarded expression should not error on empty facts: %v", result.Error)
	}
}

// TestDeleteRuleRemovesProgram verifies delete removes both the stored rule
// and its compiled program.
func TestDeleteRuleRemovesProgram(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	rule := &Rule{ID: "gone", Name: "Gone", Expression: `true`, Active: true}
	if err := engine.AddRule(rule); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}

	if err := engine.DeleteRule("gone"); err != nil {
		t.Fatalf("DeleteRule() failed: %v", err)
	}

	if _, err := engine.Check("gone", facts.Record{}); err == nil {
		t.Error("Check() after delete should fail")
	}
}

// TestConcurrentChecks verifies the engine is safe for concurrent
// evaluation while rules are being mutated.
func TestConcurrentChecks(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	if err := engine.AddRule(&Rule{
		ID: "deposit", Name: "Deposit protected",
		Expression: `facts["deposit_protected"] == true`,
		Severity:   SeverityError, Active: true,
	}); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}

	record := section21Facts()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.CheckAll(record); err != nil {
				t.Errorf("CheckAll() failed: %v", err)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = engine.CompileRule("deposit", `facts["deposit_protected"] == true`)
		}(i)
	}
	wg.Wait()
}
