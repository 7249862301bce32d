package justify

import "github.com/letui/justify/event"

// enumKeyword implements "enum": the instance must structurally equal at
// least one member of a fixed value list.
type enumKeyword struct {
	values []*Value
}

func (k *enumKeyword) Name() string { return "enum" }

func (k *enumKeyword) evaluator() Evaluator { return &enumEvaluator{want: k.values} }

type enumEvaluator struct {
	want    []*Value
	builder valueBuilder
	verdict Verdict
}

func (e *enumEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if v := e.builder.feed(ev); v != nil {
		e.verdict = False
		for _, want := range e.want {
			if valuesEqual(v, want) {
				e.verdict = True
				break
			}
		}
	}
	return e.verdict
}

func (e *enumEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem("enum", "enum.mismatch", nil)}
}
