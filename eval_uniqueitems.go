package justify

import "github.com/letui/justify/event"

// uniqueItemsKeyword implements "uniqueItems": when true, every element
// of an array instance must be structurally distinct from every other.
type uniqueItemsKeyword struct{ enabled bool }

func (k *uniqueItemsKeyword) Name() string { return "uniqueItems" }

func (k *uniqueItemsKeyword) evaluator() Evaluator {
	if !k.enabled {
		return alwaysTrue{}
	}
	return &uniqueItemsEvaluator{}
}

// uniqueItemsEvaluator is one of the documented bounded-buffering
// exceptions: each array element is reconstructed into a Value so it can
// be compared, structurally, against every element already seen.
type uniqueItemsEvaluator struct {
	scope   scopeTracker
	builder valueBuilder
	seen    []*Value
	dupes   []int
	verdict Verdict
}

func (e *uniqueItemsEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started && ev.Kind != event.StartArray {
		e.scope.observe(ev)
		e.verdict = Ignored
		return e.verdict
	}
	e.scope.observe(ev)

	if ev.Depth >= 1 {
		if v := e.builder.feed(ev); v != nil {
			for _, prior := range e.seen {
				if valuesEqual(prior, v) {
					e.dupes = append(e.dupes, len(e.seen))
					break
				}
			}
			e.seen = append(e.seen, v)
			e.builder = valueBuilder{}
		}
	}

	if e.scope.Closed() {
		if len(e.dupes) > 0 {
			e.verdict = False
		} else {
			e.verdict = True
		}
	}
	return e.verdict
}

func (e *uniqueItemsEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem("uniqueItems", "uniqueItems.duplicate", map[string]any{"indices": e.dupes})}
}
