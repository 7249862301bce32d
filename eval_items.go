package justify

import "github.com/letui/justify/event"

// itemsKeyword implements Draft-07's "items"/"additionalItems" pair. If
// single is set, every array element validates against it. Otherwise
// tuple holds one schema per positional element, and additional governs
// any element beyond len(tuple) (nil means "additionalItems" was absent,
// i.e. unconstrained).
type itemsKeyword struct {
	single     *Schema
	tuple      []*Schema
	additional *Schema
}

func (k *itemsKeyword) Name() string { return "items" }

func (k *itemsKeyword) evaluator() Evaluator { return &itemsEvaluator{def: k} }

type itemsEvaluator struct {
	def      *itemsKeyword
	scope    scopeTracker
	idx      int
	span     *childSpan
	problems []*Problem
	verdict  Verdict
}

func (e *itemsEvaluator) Evaluate(ev event.Event) Verdict {
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
		schema, disallowed := e.schemaFor(e.idx)
		if disallowed {
			e.problems = append(e.problems, NewProblem("additionalItems", "additionalItems.disallowed", map[string]any{"index": e.idx}))
			schema = trueSchema()
		}
		e.span = newChildSpan(schema.evaluator(), 1)
		e.idx++
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
		if len(e.problems) > 0 {
			e.verdict = False
		} else {
			e.verdict = True
		}
	}
	return e.verdict
}

func (e *itemsEvaluator) finishSpan() {
	if e.span == nil {
		return
	}
	if e.span.verdict == False {
		e.problems = append(e.problems, e.span.child.Problems()...)
	}
	e.span = nil
}

func (e *itemsEvaluator) schemaFor(idx int) (schema *Schema, disallowed bool) {
	if e.def.single != nil {
		return e.def.single, false
	}
	if idx < len(e.def.tuple) {
		return e.def.tuple[idx], false
	}
	if e.def.additional != nil {
		if e.def.additional.boolValue != nil && !*e.def.additional.boolValue {
			return nil, true
		}
		return e.def.additional, false
	}
	return trueSchema(), false
}

func (e *itemsEvaluator) Problems() []*Problem { return e.problems }

// maxItemsKeyword implements "maxItems".
type maxItemsKeyword struct{ max int }

func (k *maxItemsKeyword) Name() string        { return "maxItems" }
func (k *maxItemsKeyword) evaluator() Evaluator { return newArrayCountEvaluator(k.max, -1) }

// minItemsKeyword implements "minItems".
type minItemsKeyword struct{ min int }

func (k *minItemsKeyword) Name() string        { return "minItems" }
func (k *minItemsKeyword) evaluator() Evaluator { return newArrayCountEvaluator(-1, k.min) }

type arrayCountEvaluator struct {
	max, min int
	count    int
	scope    scopeTracker
	verdict  Verdict
}

func newArrayCountEvaluator(max, min int) *arrayCountEvaluator {
	return &arrayCountEvaluator{max: max, min: min}
}

func (e *arrayCountEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started && ev.Kind != event.StartArray {
		e.scope.observe(ev)
		e.verdict = Ignored
		return e.verdict
	}
	e.scope.observe(ev)
	if ev.Depth == 1 && ev.Kind != event.EndArray && ev.Kind != event.EndObject {
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

func (e *arrayCountEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	if e.max >= 0 && e.count > e.max {
		return []*Problem{NewProblem("maxItems", "maxItems.exceeded", map[string]any{"max": e.max})}
	}
	return []*Problem{NewProblem("minItems", "minItems.exceeded", map[string]any{"min": e.min})}
}
