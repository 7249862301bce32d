package justify

import "github.com/letui/justify/event"

// dependentRequiredEntry is the array-form of "dependencies": property
// trigger requires every name in requires to also be present.
type dependentRequiredEntry struct {
	trigger  string
	requires []string
}

// dependentSchemaEntry is the schema-form of "dependencies": if property
// trigger is present, the instance must also satisfy schema.
type dependentSchemaEntry struct {
	trigger string
	schema  *Schema
}

// dependenciesKeyword implements Draft-07's unified "dependencies"
// keyword, whose per-property value is either an array of required
// property names or a subschema.
type dependenciesKeyword struct {
	required []dependentRequiredEntry
	schemas  []dependentSchemaEntry
}

func (k *dependenciesKeyword) Name() string { return "dependencies" }

func (k *dependenciesKeyword) evaluator() Evaluator {
	children := make([]Evaluator, 0, len(k.required)+len(k.schemas))
	for _, r := range k.required {
		children = append(children, newDependentRequiredEvaluator(r))
	}
	for _, s := range k.schemas {
		children = append(children, newDependentSchemaEvaluator(s))
	}
	return newConjunctive(children)
}

// dependentRequiredEvaluator tracks appearance of trigger and of every
// name it requires; resolves at END_OBJECT.
type dependentRequiredEvaluator struct {
	trigger      string
	missing      map[string]bool
	order        []string
	triggerSeen  bool
	scope        scopeTracker
	verdict      Verdict
}

func newDependentRequiredEvaluator(e dependentRequiredEntry) *dependentRequiredEvaluator {
	missing := make(map[string]bool, len(e.requires))
	for _, n := range e.requires {
		missing[n] = true
	}
	return &dependentRequiredEvaluator{trigger: e.trigger, missing: missing, order: e.requires}
}

func (e *dependentRequiredEvaluator) Evaluate(ev event.Event) Verdict {
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
		if ev.Key == e.trigger {
			e.triggerSeen = true
		}
		delete(e.missing, ev.Key)
	}
	if e.scope.Closed() {
		if !e.triggerSeen || len(e.missing) == 0 {
			e.verdict = True
		} else {
			e.verdict = False
		}
	}
	return e.verdict
}

func (e *dependentRequiredEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	var missing []string
	for _, n := range e.order {
		if e.missing[n] {
			missing = append(missing, n)
		}
	}
	return []*Problem{NewProblem("dependencies", "dependencies.missing", map[string]any{
		"trigger": e.trigger,
		"missing": missing,
	})}
}

// dependentSchemaEvaluator implements the schema-form dependency with
// retroactive activation: the subschema only needs to hold if trigger is
// present, but its verdict depends on events seen from the start of the
// object, including ones observed before the trigger key itself
// appeared. Those early events are buffered (bounded to one object) and
// replayed into the subschema evaluator once the trigger is spotted.
type dependentSchemaEvaluator struct {
	trigger   string
	subschema *Schema

	scope     scopeTracker
	buf       []event.Event
	activated bool
	child     Evaluator
	childV    Verdict
	verdict   Verdict
}

func newDependentSchemaEvaluator(e dependentSchemaEntry) *dependentSchemaEvaluator {
	return &dependentSchemaEvaluator{trigger: e.trigger, subschema: e.schema}
}

func (e *dependentSchemaEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if !e.scope.started && ev.Kind != event.StartObject {
		e.scope.observe(ev)
		e.verdict = Ignored
		return e.verdict
	}
	e.scope.observe(ev)

	if e.activated {
		if v := e.child.Evaluate(ev); v != Pending {
			e.childV = v
		}
	} else {
		e.buf = append(e.buf, ev)
		if ev.Kind == event.KeyName && ev.Depth == 1 && ev.Key == e.trigger {
			e.activated = true
			e.child = e.subschema.evaluator()
			for _, buffered := range e.buf {
				if v := e.child.Evaluate(buffered); v != Pending {
					e.childV = v
				}
			}
			e.buf = nil
		}
	}

	if e.scope.Closed() {
		switch {
		case !e.activated:
			e.verdict = Ignored
		case e.childV == True:
			e.verdict = True
		default:
			e.verdict = False
		}
	}
	return e.verdict
}

func (e *dependentSchemaEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return append([]*Problem{NewProblem("dependencies", "dependencies.schema", map[string]any{"trigger": e.trigger})}, e.child.Problems()...)
}
