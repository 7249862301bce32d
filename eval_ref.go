package justify

import "github.com/letui/justify/event"

// refEvaluator implements "$ref". Its child evaluator tree is built
// lazily, on the first event it actually receives, rather than eagerly
// when the parent schema's own evaluator tree is constructed. This is
// what keeps a cyclic schema graph (a schema that refers to itself,
// directly or through other schemas) from recursing infinitely at
// evaluator-construction time: the recursion only actually unwinds as
// far as the instance itself nests.
type refEvaluator struct {
	schema  *Schema
	child   Evaluator
	verdict Verdict
}

func newRefEvaluator(s *Schema) *refEvaluator { return &refEvaluator{schema: s} }

func (e *refEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if e.child == nil {
		if e.schema.resolved == nil {
			// Unresolved reference sentinel: per the reference resolver's
			// contract, an unresolved $ref always fails evaluation rather
			// than panicking or silently passing.
			e.verdict = False
			return e.verdict
		}
		e.child = e.schema.resolved.evaluator()
	}
	e.verdict = e.child.Evaluate(ev)
	return e.verdict
}

func (e *refEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	if e.child == nil {
		return []*Problem{NewProblem("$ref", "ref.unresolved", map[string]any{"ref": e.schema.ref})}
	}
	return e.child.Problems()
}
