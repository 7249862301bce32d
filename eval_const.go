package justify

import "github.com/letui/justify/event"

// constKeyword implements "const": the instance must structurally equal
// a fixed value.
type constKeyword struct {
	value *Value
}

func (k *constKeyword) Name() string { return "const" }

func (k *constKeyword) evaluator() Evaluator { return &constEvaluator{want: k.value} }

// constEvaluator crosses the streaming-to-tree boundary: the instance
// subtree at this position is reconstructed (bounded to this position)
// so it can be compared structurally against the fixed value.
type constEvaluator struct {
	want    *Value
	builder valueBuilder
	verdict Verdict
	got     *Value
}

func (e *constEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if v := e.builder.feed(ev); v != nil {
		e.got = v
		if valuesEqual(v, e.want) {
			e.verdict = True
		} else {
			e.verdict = False
		}
	}
	return e.verdict
}

func (e *constEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem("const", "const.mismatch", nil)}
}
