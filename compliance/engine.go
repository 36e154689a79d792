package compliance

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/woodhall335/landlord-heaven/facts"
)

// Engine compiles and evaluates the compliance checks for one document
// type. Facts are exposed to CEL as a single map variable so expressions can
// address flat, dot-containing keys directly:
//
//	facts["notice_service.notice_date"] != ""
//	"deposit_protected" in facts
//
// Thread-safe for concurrent evaluation; compilation takes the write lock.
type Engine struct {
	env      *cel.Env
	store    RuleStore
	cache    RuleCache
	programs map[string]cel.Program // rule ID -> compiled program
	mu       sync.RWMutex
}

// NewEngine creates an engine over the given rule store and compiles every
// active rule up front, so a bad expression is caught at startup rather than
// on a landlord's request.
func NewEngine(store RuleStore) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("facts", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	en := &Engine{
		env:      env,
		store:    store,
		cache:    NewInMemoryRuleCache(DefaultCacheConfig()),
		programs: make(map[string]cel.Program),
	}

	if err := en.CompileAllRules(); err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	return en, nil
}

// CompileRule compiles a single rule expression to a CEL program and caches
// it. The cost limit keeps a runaway expression from exhausting the server.
func (en *Engine) CompileRule(ruleID, expression string) error {
	ast, issues := en.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile error: %w", issues.Err())
	}

	prog, err := en.env.Program(ast, cel.CostLimit(1000000))
	if err != nil {
		return fmt.Errorf("program creation error: %w", err)
	}

	en.mu.Lock()
	en.programs[ruleID] = prog
	en.mu.Unlock()

	return nil
}

// CompileAllRules compiles all active rules from the store and primes the
// active-rules cache.
func (en *Engine) CompileAllRules() error {
	rules, err := en.store.ListActive()
	if err != nil {
		return err
	}

	for _, rule := range rules {
		if err := en.CompileRule(rule.ID, rule.Expression); err != nil {
			return fmt.Errorf("failed to compile rule %s: %w", rule.ID, err)
		}
	}

	en.cache.Set(rules)

	return nil
}

// Check evaluates a single rule against a facts record. A non-boolean
// result counts as not passed; an evaluation error is captured on the
// result rather than failing the call outright.
func (en *Engine) Check(ruleID string, record facts.Record) (*CheckResult, error) {
	rule, err := en.store.Get(ruleID)
	if err != nil {
		return nil, err
	}

	en.mu.RLock()
	prog, exists := en.programs[ruleID]
	en.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("compliance rule %s is not compiled", ruleID)
	}

	return en.run(rule, prog, record), nil
}

// CheckAll evaluates every active rule against a facts record, continuing
// past individual failures. Uses the cache to avoid a store round trip per
// request.
func (en *Engine) CheckAll(record facts.Record) ([]*CheckResult, error) {
	rules := en.cache.Get()

	if rules == nil {
		var err error
		rules, err = en.store.ListActive()
		if err != nil {
			return nil, err
		}
		en.cache.Set(rules)
	}

	results := make([]*CheckResult, 0, len(rules))
	for _, rule := range rules {
		en.mu.RLock()
		prog, exists := en.programs[rule.ID]
		en.mu.RUnlock()

		if !exists {
			results = append(results, &CheckResult{
				RuleID:   rule.ID,
				RuleName: rule.Name,
				Severity: rule.Severity,
				Message:  rule.Message,
				Passed:   false,
				Error:    fmt.Errorf("compliance rule %s is not compiled", rule.ID),
			})
			continue
		}

		results = append(results, en.run(rule, prog, record))
	}

	return results, nil
}

func (en *Engine) run(rule *Rule, prog cel.Program, record facts.Record) *CheckResult {
	result := &CheckResult{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Severity: rule.Severity,
		Message:  rule.Message,
	}

	out, _, err := prog.Eval(map[string]any{
		"facts": map[string]any(record),
	})
	if err != nil {
		result.Error = err
		return result
	}

	if passed, ok := out.Value().(bool); ok {
		result.Passed = passed
	}
	return result
}

// AddRule validates that the rule compiles, then adds it to the store. The
// compiled program is removed again if the store rejects the rule.
func (en *Engine) AddRule(r *Rule) error {
	if _, err := en.store.Get(r.ID); err == nil {
		return fmt.Errorf("compliance rule with ID %s already exists", r.ID)
	}

	if err := en.CompileRule(r.ID, r.Expression); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := en.store.Add(r); err != nil {
		en.mu.Lock()
		delete(en.programs, r.ID)
		en.mu.Unlock()
		return err
	}

	en.cache.Invalidate()

	return nil
}

// UpdateRule recompiles the rule's expression before updating the store, so
// a broken expression never replaces a working one.
func (en *Engine) UpdateRule(r *Rule) error {
	if err := en.CompileRule(r.ID, r.Expression); err != nil {
		return fmt.Errorf("rule validation failed: %w", err)
	}

	if err := en.store.Update(r); err != nil {
		return err
	}

	en.cache.Invalidate()

	return nil
}

// DeleteRule removes a rule from the store and the compiled program set.
func (en *Engine) DeleteRule(ruleID string) error {
	if err := en.store.Delete(ruleID); err != nil {
		return err
	}

	en.mu.Lock()
	delete(en.programs, ruleID)
	en.mu.Unlock()

	en.cache.Invalidate()

	return nil
}
