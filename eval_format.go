package justify

import (
	"github.com/letui/justify/event"
	"github.com/letui/justify/format"
)

// formatKeyword implements "format". The validator func is resolved once
// at compile time from the Builder's registry; an unknown format name is
// either ignored (lax, the default) or rejected at compile time
// (strict-format mode), per the Builder's configuration.
type formatKeyword struct {
	name      string
	validator format.Validator
}

func (k *formatKeyword) Name() string { return "format" }

func (k *formatKeyword) evaluator() Evaluator {
	if k.validator == nil {
		return alwaysTrue{}
	}
	return &formatEvaluator{name: k.name, validator: k.validator}
}

// formatEvaluator is shallow: format only ever applies to strings, and
// decides from the single VALUE_STRING event.
type formatEvaluator struct {
	name      string
	validator format.Validator
	verdict   Verdict
}

func (e *formatEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if ev.Kind != event.ValueString {
		e.verdict = Ignored
		return e.verdict
	}
	if e.validator(ev.Str) {
		e.verdict = True
	} else {
		e.verdict = False
	}
	return e.verdict
}

func (e *formatEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem("format", "format.mismatch", map[string]any{"format": e.name})}
}
