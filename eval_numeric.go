package justify

import (
	"math/big"

	"github.com/letui/justify/event"
)

// numericEvaluator is the shared shallow base for every numeric
// assertion: it fires on the single VALUE_NUMBER event at depth 0 and is
// Ignored for any other instance type.
type numericEvaluator struct {
	check   func(n *big.Rat) (bool, map[string]any)
	keyword string
	msgKey  string
	verdict Verdict
	params  map[string]any
}

func (e *numericEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if ev.Kind != event.ValueNumber {
		e.verdict = Ignored
		return e.verdict
	}
	ok, params := e.check(ev.Num)
	e.params = params
	if ok {
		e.verdict = True
	} else {
		e.verdict = False
	}
	return e.verdict
}

func (e *numericEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem(e.keyword, e.msgKey, e.params)}
}

// multipleOfKeyword implements "multipleOf".
type multipleOfKeyword struct{ divisor *big.Rat }

func (k *multipleOfKeyword) Name() string { return "multipleOf" }
func (k *multipleOfKeyword) evaluator() Evaluator {
	return &numericEvaluator{
		keyword: "multipleOf",
		msgKey:  "multipleOf.mismatch",
		check: func(n *big.Rat) (bool, map[string]any) {
			q := new(big.Rat).Quo(n, k.divisor)
			ok := q.IsInt()
			return ok, map[string]any{"divisor": formatRat(k.divisor)}
		},
	}
}

// maximumKeyword implements "maximum".
type maximumKeyword struct{ limit *big.Rat }

func (k *maximumKeyword) Name() string { return "maximum" }
func (k *maximumKeyword) evaluator() Evaluator {
	return &numericEvaluator{
		keyword: "maximum",
		msgKey:  "maximum.exceeded",
		check: func(n *big.Rat) (bool, map[string]any) {
			return n.Cmp(k.limit) <= 0, map[string]any{"max": formatRat(k.limit)}
		},
	}
}

// exclusiveMaximumKeyword implements "exclusiveMaximum".
type exclusiveMaximumKeyword struct{ limit *big.Rat }

func (k *exclusiveMaximumKeyword) Name() string { return "exclusiveMaximum" }
func (k *exclusiveMaximumKeyword) evaluator() Evaluator {
	return &numericEvaluator{
		keyword: "exclusiveMaximum",
		msgKey:  "exclusiveMaximum.exceeded",
		check: func(n *big.Rat) (bool, map[string]any) {
			return n.Cmp(k.limit) < 0, map[string]any{"max": formatRat(k.limit)}
		},
	}
}

// minimumKeyword implements "minimum".
type minimumKeyword struct{ limit *big.Rat }

func (k *minimumKeyword) Name() string { return "minimum" }
func (k *minimumKeyword) evaluator() Evaluator {
	return &numericEvaluator{
		keyword: "minimum",
		msgKey:  "minimum.exceeded",
		check: func(n *big.Rat) (bool, map[string]any) {
			return n.Cmp(k.limit) >= 0, map[string]any{"min": formatRat(k.limit)}
		},
	}
}

// exclusiveMinimumKeyword implements "exclusiveMinimum".
type exclusiveMinimumKeyword struct{ limit *big.Rat }

func (k *exclusiveMinimumKeyword) Name() string { return "exclusiveMinimum" }
func (k *exclusiveMinimumKeyword) evaluator() Evaluator {
	return &numericEvaluator{
		keyword: "exclusiveMinimum",
		msgKey:  "exclusiveMinimum.exceeded",
		check: func(n *big.Rat) (bool, map[string]any) {
			return n.Cmp(k.limit) > 0, map[string]any{"min": formatRat(k.limit)}
		},
	}
}
