package justify

import "github.com/letui/justify/event"

// containsKeyword implements "contains" plus its count refinements
// "minContains"/"maxContains". Draft-07's baseline "contains" needs at
// least one matching element; min/max narrow that count. Absent either
// bound defaults to min=1, max=unbounded.
type containsKeyword struct {
	schema      *Schema
	minContains int // -1 means unset (defaults to 1)
	maxContains int // -1 means unset (unbounded)
}

func (k *containsKeyword) Name() string { return "contains" }

func (k *containsKeyword) evaluator() Evaluator {
	min := k.minContains
	if min < 0 {
		min = 1
	}
	return &containsEvaluator{schema: k.schema, min: min, max: k.maxContains}
}

type containsEvaluator struct {
	schema   *Schema
	min, max int

	scope   scopeTracker
	span    *childSpan
	matches int
	verdict Verdict
}

func (e *containsEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started && ev.Kind != event.StartArray {
		e.scope.observe(ev)
		e.verdict = Ignored
		return e.verdict
	}
	e.scope.observe(ev)

	if e.span == nil && ev.Depth == 1 && ev.Kind != event.EndArray {
		e.span = newChildSpan(e.schema.evaluator(), 1)
		if e.span.feed(ev) {
			e.finishSpan()
		}
	} else if e.span != nil {
		if e.span.feed(ev) {
			e.finishSpan()
		}
	}

	if e.scope.Closed() {
		e.finishSpan()
		if e.matches < e.min || (e.max >= 0 && e.matches > e.max) {
			e.verdict = False
		} else {
			e.verdict = True
		}
	}
	return e.verdict
}

func (e *containsEvaluator) finishSpan() {
	if e.span == nil {
		return
	}
	if e.span.verdict == True {
		e.matches++
	}
	e.span = nil
}

func (e *containsEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	if e.matches < e.min {
		if e.min == 1 {
			return []*Problem{NewProblem("contains", "contains.none", nil)}
		}
		return []*Problem{NewProblem("contains", "contains.tooFew", map[string]any{"min": e.min})}
	}
	return []*Problem{NewProblem("contains", "contains.tooMany", map[string]any{"max": e.max})}
}
