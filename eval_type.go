package justify

import "github.com/letui/justify/event"

// typeKeyword implements the "type" assertion: a single type name or a
// list of acceptable type names.
type typeKeyword struct {
	types []string
}

func (k *typeKeyword) Name() string { return "type" }

func (k *typeKeyword) evaluator() Evaluator { return &typeEvaluator{types: k.types} }

// typeEvaluator is shallow: it decides from the single event that opens
// the instance value (START_OBJECT, START_ARRAY, or a scalar) and never
// needs to look deeper, per the shallow-evaluator optimization.
type typeEvaluator struct {
	types   []string
	verdict Verdict
	actual  string
}

func (e *typeEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	e.actual = jsonTypeOf(ev)
	for _, t := range e.types {
		if matchesJSONType(t, ev) {
			e.verdict = True
			return e.verdict
		}
	}
	e.verdict = False
	return e.verdict
}

func (e *typeEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	expected := e.types[0]
	if len(e.types) > 1 {
		expected = joinStrings(e.types, ", ")
	}
	return []*Problem{NewProblem("type", "type.mismatch", map[string]any{
		"expected": expected,
		"actual":   e.actual,
	})}
}

// jsonTypeOf reports the JSON Schema type name of the value that ev
// opens. Integers are reported as "integer" when the underlying number
// has no fractional part, matching Draft-07's numeric type split.
func jsonTypeOf(ev event.Event) string {
	switch ev.Kind {
	case event.StartObject:
		return "object"
	case event.StartArray:
		return "array"
	case event.ValueString:
		return "string"
	case event.ValueTrue, event.ValueFalse:
		return "boolean"
	case event.ValueNull:
		return "null"
	case event.ValueNumber:
		if ev.Num != nil && ev.Num.IsInt() {
			return "integer"
		}
		return "number"
	default:
		return "unknown"
	}
}

func matchesJSONType(t string, ev event.Event) bool {
	if t == "number" && ev.Kind == event.ValueNumber {
		return true // "number" also accepts integers
	}
	return t == jsonTypeOf(ev)
}

func joinStrings(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}
