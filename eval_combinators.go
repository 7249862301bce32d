package justify

// allOfKeyword implements "allOf": every listed subschema must validate.
// Its problem set is exactly the union of each failing subschema's own
// problems (§8's multiset invariant) — conjunctive already reports
// bare children problems, so allOf needs no wrapper evaluator at all.
type allOfKeyword struct{ schemas []*Schema }

func (k *allOfKeyword) Name() string { return "allOf" }
func (k *allOfKeyword) evaluator() Evaluator {
	children := make([]Evaluator, len(k.schemas))
	for i, s := range k.schemas {
		children[i] = s.evaluator()
	}
	return newConjunctive(children)
}

// anyOfKeyword implements "anyOf": at least one listed subschema must
// validate.
type anyOfKeyword struct{ schemas []*Schema }

func (k *anyOfKeyword) Name() string { return "anyOf" }
func (k *anyOfKeyword) evaluator() Evaluator {
	children := make([]Evaluator, len(k.schemas))
	for i, s := range k.schemas {
		children[i] = s.evaluator()
	}
	return newDisjunctive(children, "anyOf.mismatch")
}

// oneOfKeyword implements "oneOf": exactly one listed subschema must
// validate.
type oneOfKeyword struct{ schemas []*Schema }

func (k *oneOfKeyword) Name() string { return "oneOf" }
func (k *oneOfKeyword) evaluator() Evaluator {
	children := make([]Evaluator, len(k.schemas))
	for i, s := range k.schemas {
		children[i] = s.evaluator()
	}
	return newExclusive(children)
}

// notKeyword implements "not": the subschema must not validate.
type notKeyword struct{ schema *Schema }

func (k *notKeyword) Name() string        { return "not" }
func (k *notKeyword) evaluator() Evaluator { return newNegate(k.schema.evaluator()) }
