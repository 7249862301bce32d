package justify

import "github.com/letui/justify/event"

// conditionalKeyword implements "if"/"then"/"else". Per Draft-07, "if"
// with neither "then" nor "else" present has no effect; thenS/elseS may
// be nil independently of one another.
type conditionalKeyword struct {
	ifS, thenS, elseS *Schema
}

func (k *conditionalKeyword) Name() string { return "if" }

func (k *conditionalKeyword) evaluator() Evaluator {
	e := &conditionalEvaluator{}
	if k.ifS != nil {
		e.ifEv = k.ifS.evaluator()
	}
	if k.thenS != nil {
		e.thenEv = k.thenS.evaluator()
	}
	if k.elseS != nil {
		e.elseEv = k.elseS.evaluator()
	}
	return e
}

// conditionalEvaluator broadcasts every event to if/then/else
// concurrently — all three apply to the same instance position, so no
// buffering is needed, only a decision at the end of scope about which
// branch's verdict counts. The "if" branch's own problems never surface,
// only whether it passed or failed.
type conditionalEvaluator struct {
	ifEv, thenEv, elseEv Evaluator
	ifV, thenV, elseV    Verdict
	scope                scopeTracker
	verdict              Verdict
}

func (e *conditionalEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	e.scope.observe(ev)
	if e.ifEv != nil && e.ifV == Pending {
		e.ifV = e.ifEv.Evaluate(ev)
	}
	if e.thenEv != nil && e.thenV == Pending {
		e.thenV = e.thenEv.Evaluate(ev)
	}
	if e.elseEv != nil && e.elseV == Pending {
		e.elseV = e.elseEv.Evaluate(ev)
	}

	if e.scope.Closed() {
		ifResult := e.ifV
		if e.ifEv == nil || ifResult == Ignored {
			ifResult = True
		}
		if ifResult == True {
			if e.thenEv == nil || e.thenV == True || e.thenV == Ignored {
				e.verdict = True
			} else {
				e.verdict = False
			}
		} else {
			if e.elseEv == nil || e.elseV == True || e.elseV == Ignored {
				e.verdict = True
			} else {
				e.verdict = False
			}
		}
	}
	return e.verdict
}

// Problems reports exactly problems(then, I) or problems(else, I),
// whichever branch's verdict decided this evaluator — no header problem
// of its own, and "if"'s problems never surface regardless of branch.
func (e *conditionalEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	ifResult := e.ifV
	if e.ifEv == nil || ifResult == Ignored {
		ifResult = True
	}
	if ifResult == True {
		return e.thenEv.Problems()
	}
	return e.elseEv.Problems()
}
