package justify

import "github.com/letui/justify/event"

// maxPropertiesKeyword implements "maxProperties".
type maxPropertiesKeyword struct{ max int }

func (k *maxPropertiesKeyword) Name() string        { return "maxProperties" }
func (k *maxPropertiesKeyword) evaluator() Evaluator { return newPropertyCountEvaluator(k.max, -1) }

// minPropertiesKeyword implements "minProperties".
type minPropertiesKeyword struct{ min int }

func (k *minPropertiesKeyword) Name() string        { return "minProperties" }
func (k *minPropertiesKeyword) evaluator() Evaluator { return newPropertyCountEvaluator(-1, k.min) }

// propertyCountEvaluator enforces maxProperties and/or minProperties. Set
// either bound to -1 to disable it; a single evaluator type serves both
// keywords since they share the same depth-1 key-counting logic.
type propertyCountEvaluator struct {
	max, min int
	count    int
	scope    scopeTracker
	verdict  Verdict
}

func newPropertyCountEvaluator(max, min int) *propertyCountEvaluator {
	return &propertyCountEvaluator{max: max, min: min}
}

func (e *propertyCountEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started {
		if ev.Kind != event.StartObject {
			e.scope.observe(ev)
			e.verdict = Ignored
			return e.verdict
		}
	}
	e.scope.observe(ev)
	if ev.Kind == event.KeyName && ev.Depth == 1 {
		e.count++
	}
	if e.scope.Closed() {
		if e.max >= 0 && e.count > e.max {
			e.verdict = False
		} else if e.min >= 0 && e.count < e.min {
			e.verdict = False
		} else {
			e.verdict = True
		}
	}
	return e.verdict
}

func (e *propertyCountEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	if e.max >= 0 && e.count > e.max {
		return []*Problem{NewProblem("maxProperties", "maxProperties.exceeded", map[string]any{"max": e.max})}
	}
	return []*Problem{NewProblem("minProperties", "minProperties.exceeded", map[string]any{"min": e.min})}
}

// requiredKeyword implements "required": a list of property names that
// must all appear as keys of an object instance.
type requiredKeyword struct{ names []string }

func (k *requiredKeyword) Name() string { return "required" }

func (k *requiredKeyword) evaluator() Evaluator {
	missing := make(map[string]bool, len(k.names))
	for _, n := range k.names {
		missing[n] = true
	}
	return &requiredEvaluator{missing: missing, order: k.names}
}

type requiredEvaluator struct {
	missing map[string]bool
	order   []string
	scope   scopeTracker
	verdict Verdict
}

func (e *requiredEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started && ev.Kind != event.StartObject {
		e.scope.observe(ev)
		e.verdict = Ignored
		return e.verdict
	}
	e.scope.observe(ev)
	if ev.Kind == event.KeyName && ev.Depth == 1 {
		delete(e.missing, ev.Key)
	}
	if e.scope.Closed() {
		if len(e.missing) == 0 {
			e.verdict = True
		} else {
			e.verdict = False
		}
	}
	return e.verdict
}

func (e *requiredEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	var remaining []string
	for _, n := range e.order {
		if e.missing[n] {
			remaining = append(remaining, n)
		}
	}
	problems := make([]*Problem, 0, len(remaining))
	for _, n := range remaining {
		problems = append(problems, NewProblem("required", "required.missing", map[string]any{"property": n}))
	}
	return problems
}
