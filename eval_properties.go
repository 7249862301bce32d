package justify

import (
	"regexp"

	"github.com/letui/justify/event"
)

// patternPropEntry pairs a compiled patternProperties regex with its
// subschema.
type patternPropEntry struct {
	source string
	re     *regexp.Regexp
	schema *Schema
}

// propertiesKeyword bundles "properties", "patternProperties",
// "additionalProperties" and "propertyNames" into a single evaluator
// family: which subschema governs a given property value depends on all
// four keywords cooperating, so they are compiled and evaluated together
// rather than as four independent siblings.
type propertiesKeyword struct {
	properties           map[string]*Schema
	patternProperties     []patternPropEntry
	additional            *Schema // nil means "allowed, no constraint"
	additionalDisallowed  bool    // true when additionalProperties is literally false
	propertyNames         *Schema
}

func (k *propertiesKeyword) Name() string { return "properties" }

func (k *propertiesKeyword) evaluator() Evaluator {
	return &propertiesEvaluator{def: k}
}

type propertiesEvaluator struct {
	def *propertiesKeyword

	scope   scopeTracker
	span    *childSpan // value span currently open for the active property
	verdict Verdict

	problems []*Problem
}

func (e *propertiesEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started && ev.Kind != event.StartObject {
		e.scope.observe(ev)
		e.verdict = Ignored
		return e.verdict
	}
	e.scope.observe(ev)

	if ev.Depth == 1 && ev.Kind == event.KeyName {
		e.closeSpan()
		e.checkPropertyName(ev.Key)
		schema, disallowed := e.schemaFor(ev.Key)
		if disallowed {
			e.problems = append(e.problems, NewProblem("additionalProperties", "additionalProperties.disallowed", map[string]any{"property": ev.Key}))
			schema = trueSchema()
		}
		e.span = newChildSpan(schema.evaluator(), 1)
	} else if e.span != nil && ev.Depth >= 1 {
		if e.span.feed(ev) {
			e.finishSpan()
		}
	}

	if e.scope.Closed() {
		e.closeSpan()
		if len(e.problems) > 0 {
			e.verdict = False
		} else {
			e.verdict = True
		}
	}
	return e.verdict
}

// closeSpan force-finalizes whatever span is open (used when the object
// itself closes right after a property's value, or a key is seen before
// the prior span reported closed — which should not happen for
// well-formed input, but guards against an unexpectedly short value).
func (e *propertiesEvaluator) closeSpan() {
	if e.span == nil {
		return
	}
	e.finishSpan()
}

func (e *propertiesEvaluator) finishSpan() {
	if e.span.verdict == False {
		e.problems = append(e.problems, e.span.child.Problems()...)
	}
	e.span = nil
}

func (e *propertiesEvaluator) checkPropertyName(key string) {
	if e.def.propertyNames == nil {
		return
	}
	ev := e.def.propertyNames.evaluator()
	v := ev.Evaluate(event.Event{Kind: event.ValueString, Str: key, Depth: 0})
	if v == False {
		e.problems = append(e.problems, NewProblem("propertyNames", "propertyNames.mismatch", map[string]any{"property": key}))
	}
}

// schemaFor resolves which subschema governs the value of property key,
// in Draft-07 cooperation order: an exact "properties" match always
// applies (in addition to any matching patternProperties); every
// patternProperties entry whose pattern matches also applies; if neither
// matched, "additionalProperties" applies.
func (e *propertiesEvaluator) schemaFor(key string) (schema *Schema, disallowed bool) {
	var applicable []*Schema
	if s, ok := e.def.properties[key]; ok {
		applicable = append(applicable, s)
	}
	for _, pp := range e.def.patternProperties {
		if pp.re.MatchString(key) {
			applicable = append(applicable, pp.schema)
		}
	}
	if len(applicable) == 0 {
		if e.def.additionalDisallowed {
			return nil, true
		}
		if e.def.additional != nil {
			applicable = append(applicable, e.def.additional)
		} else {
			return trueSchema(), false
		}
	}
	if len(applicable) == 1 {
		return applicable[0], false
	}
	return conjoinSchemas(applicable), false
}

func (e *propertiesEvaluator) Problems() []*Problem {
	return e.problems
}
