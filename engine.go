package justify

import "github.com/letui/justify/event"

// Verdict is the tri-state (really four-state) outcome an Evaluator
// reports after consuming an event.
type Verdict int

const (
	// Pending means the evaluator has not yet seen enough of the
	// instance to decide.
	Pending Verdict = iota
	// True means the evaluator's schema is satisfied; this verdict is
	// terminal and never reverts.
	True
	// False means the evaluator's schema is violated; terminal.
	False
	// Ignored means this evaluator does not apply to the instance it
	// was constructed for (e.g. a "properties" evaluator fed a scalar)
	// and contributes neither a pass nor a failure.
	Ignored
)

// Evaluator is the unit of streaming schema evaluation. One Evaluator
// corresponds to one schema applied at one instance position. The engine
// feeds it every event for that position's subtree (including the events
// that open and close the subtree itself); Evaluate returns the verdict
// after each event.
type Evaluator interface {
	Evaluate(ev event.Event) Verdict
	// Problems returns the problems that explain a False verdict. It is
	// only meaningful once Evaluate has returned False, and may be
	// called more than once (results should be idempotent).
	Problems() []*Problem
}

// evaluatorFactory builds a fresh Evaluator instance; every validation
// run gets its own evaluator tree since evaluators carry mutable state.
type evaluatorFactory func() Evaluator

// scopeTracker counts container open/close events so a composite
// evaluator knows when the subtree it owns has structurally closed,
// independent of the verdicts its children report.
type scopeTracker struct {
	started bool
	depth   int
	closed  bool
}

// observe feeds ev to the tracker; Closed reports afterwards whether the
// owned subtree has closed. Events after the close are ignored.
func (s *scopeTracker) observe(ev event.Event) {
	if s.closed {
		return
	}
	if !s.started {
		s.started = true
		switch ev.Kind {
		case event.StartObject, event.StartArray:
			s.depth = 1
		default:
			s.closed = true
		}
		return
	}
	switch ev.Kind {
	case event.StartObject, event.StartArray:
		s.depth++
	case event.EndObject, event.EndArray:
		s.depth--
		if s.depth == 0 {
			s.closed = true
		}
	}
}

// Closed reports whether the tracked subtree has ended; it stays true
// once set.
func (s *scopeTracker) Closed() bool { return s.closed }

// childSpan feeds one nested child position (an array item, a property
// value) its own depth-rebased view of the event stream, so the child's
// evaluator can use the same "0 = top of my scope" contract as any other
// evaluator regardless of how deep it actually sits in the instance.
type childSpan struct {
	child   Evaluator
	base    int
	tracker scopeTracker
	verdict Verdict
}

func newChildSpan(child Evaluator, base int) *childSpan {
	return &childSpan{child: child, base: base}
}

// feed processes ev (at absolute depth) and reports whether the span's
// owned subtree has now structurally closed.
func (s *childSpan) feed(ev event.Event) (closed bool) {
	rebased := ev
	rebased.Depth = ev.Depth - s.base
	s.tracker.observe(rebased)
	if v := s.child.Evaluate(rebased); v != Pending {
		s.verdict = v
	}
	return s.tracker.Closed()
}

// conjunctive combines children such that the verdict is True once every
// child has decided True or Ignored with at least one True, Ignored when
// every child is Ignored, and False as soon as any child is False (the
// remaining children keep receiving events so their own bookkeeping
// — and any problems they'd report — stays consistent, but their verdict
// no longer affects the parent).
type conjunctive struct {
	children []Evaluator
	states   []Verdict
	verdict  Verdict
}

func newConjunctive(children []Evaluator) *conjunctive {
	return &conjunctive{children: children, states: make([]Verdict, len(children))}
}

func (c *conjunctive) Evaluate(ev event.Event) Verdict {
	if c.verdict != Pending {
		for i, ch := range c.children {
			if c.states[i] == Pending {
				c.states[i] = ch.Evaluate(ev)
			}
		}
		return c.verdict
	}

	allDecided := true
	anyFalse := false
	anyTrue := false
	for i, ch := range c.children {
		if c.states[i] == Pending {
			c.states[i] = ch.Evaluate(ev)
		}
		switch c.states[i] {
		case False:
			anyFalse = true
		case True:
			anyTrue = true
		case Ignored:
			// contributes neither a pass nor a failure
		default:
			allDecided = false
		}
	}
	switch {
	case anyFalse:
		c.verdict = False
	case allDecided && anyTrue:
		c.verdict = True
	case allDecided:
		// every child was Ignored: this schema never actually asserted
		// anything about the instance, so it is not a genuine match —
		// matters to callers like exclusive/disjunctive that count True
		// children, even though it is equivalent to True for a plain
		// Problems()-based caller (both report zero problems).
		c.verdict = Ignored
	}
	return c.verdict
}

func (c *conjunctive) Problems() []*Problem {
	var problems []*Problem
	for i, ch := range c.children {
		if c.states[i] == False {
			problems = append(problems, ch.Problems()...)
		}
	}
	return problems
}

// disjunctive combines children such that the verdict is True as soon as
// any child is True, and False only once every child is False.
type disjunctive struct {
	children   []Evaluator
	states     []Verdict
	verdict    Verdict
	messageKey string
	problems   []*Problem
}

func newDisjunctive(children []Evaluator, messageKey string) *disjunctive {
	return &disjunctive{children: children, states: make([]Verdict, len(children)), messageKey: messageKey}
}

func (d *disjunctive) Evaluate(ev event.Event) Verdict {
	if d.verdict != Pending {
		for i, ch := range d.children {
			if d.states[i] == Pending {
				d.states[i] = ch.Evaluate(ev)
			}
		}
		return d.verdict
	}

	allDecided := true
	anyTrue := false
	for i, ch := range d.children {
		if d.states[i] == Pending {
			d.states[i] = ch.Evaluate(ev)
		}
		switch d.states[i] {
		case True:
			anyTrue = true
		case False, Ignored:
			// decided, neither blocks anyTrue nor keeps us waiting
		default:
			allDecided = false
		}
	}
	switch {
	case anyTrue:
		d.verdict = True
	case allDecided:
		d.verdict = False
	}
	return d.verdict
}

func (d *disjunctive) Problems() []*Problem {
	if d.verdict != False {
		return nil
	}
	if d.problems == nil {
		branches := make([][]*Problem, len(d.children))
		for i, ch := range d.children {
			branches[i] = ch.Problems()
		}
		d.problems = []*Problem{{Keyword: "anyOf", MessageKey: d.messageKey, Branches: branches}}
	}
	return d.problems
}

// exclusive implements oneOf: True once exactly one child is (and stays)
// True through the end of scope, False if zero or more than one is True.
type exclusive struct {
	children []Evaluator
	states   []Verdict
	scope    scopeTracker
	verdict  Verdict
	problems []*Problem
}

func newExclusive(children []Evaluator) *exclusive {
	return &exclusive{children: children, states: make([]Verdict, len(children))}
}

func (e *exclusive) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	e.scope.observe(ev)

	trueCount := 0
	for i, ch := range e.children {
		if e.states[i] == Pending {
			e.states[i] = ch.Evaluate(ev)
		}
		if e.states[i] == True {
			trueCount++
		}
	}
	if trueCount > 1 {
		e.verdict = False
		return e.verdict
	}
	if e.scope.Closed() {
		if trueCount == 1 {
			e.verdict = True
		} else {
			e.verdict = False
		}
	}
	return e.verdict
}

func (e *exclusive) trueCount() int {
	n := 0
	for _, s := range e.states {
		if s == True {
			n++
		}
	}
	return n
}

func (e *exclusive) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	if e.problems != nil {
		return e.problems
	}
	n := e.trueCount()
	if n > 1 {
		var branches [][]*Problem
		for i, s := range e.states {
			if s == True {
				branches = append(branches, e.children[i].Problems())
			}
		}
		e.problems = []*Problem{{Keyword: "oneOf", MessageKey: "oneOf.many", Branches: branches}}
		return e.problems
	}
	branches := make([][]*Problem, len(e.children))
	for i, ch := range e.children {
		branches[i] = ch.Problems()
	}
	e.problems = []*Problem{{Keyword: "oneOf", MessageKey: "oneOf.few", Branches: branches}}
	return e.problems
}

// negate implements not: True iff the wrapped evaluator ends up False.
type negate struct {
	child    Evaluator
	verdict  Verdict
	problems []*Problem
}

func newNegate(child Evaluator) *negate { return &negate{child: child} }

func (n *negate) Evaluate(ev event.Event) Verdict {
	cv := n.child.Evaluate(ev)
	if n.verdict != Pending {
		return n.verdict
	}
	switch cv {
	case True, Ignored:
		n.verdict = False
	case False:
		n.verdict = True
	}
	return n.verdict
}

func (n *negate) Problems() []*Problem {
	if n.verdict != False {
		return nil
	}
	if n.problems == nil {
		n.problems = []*Problem{{Keyword: "not", MessageKey: "not.matched"}}
	}
	return n.problems
}

// oneShot wraps an Evaluator so that once it reports a terminal verdict,
// that verdict is cached and the wrapped evaluator is no longer invoked
// (useful for evaluators whose Evaluate is not safe to call after their
// own subtree has logically closed, e.g. shallow evaluators driven by a
// parent scope that outlives them).
type oneShot struct {
	child   Evaluator
	verdict Verdict
	done    bool
}

func newOneShot(child Evaluator) *oneShot { return &oneShot{child: child} }

func (o *oneShot) Evaluate(ev event.Event) Verdict {
	if o.done {
		return o.verdict
	}
	v := o.child.Evaluate(ev)
	if v != Pending {
		o.verdict = v
		o.done = true
	}
	return v
}

func (o *oneShot) Problems() []*Problem { return o.child.Problems() }

// alwaysTrue and alwaysFalse implement the boolean `true`/`false` schemas
// without constructing any child evaluator machinery.
type alwaysTrue struct{}

func (alwaysTrue) Evaluate(event.Event) Verdict { return True }
func (alwaysTrue) Problems() []*Problem         { return nil }

type alwaysFalse struct{}

// alwaysFalseProblems is shared by every alwaysFalse instance: the boolean
// `false` schema always rejects for the same reason, so there is no
// per-instance state to describe and no need to allocate a fresh *Problem
// on every call (Problems() returns the same pointers across repeated
// calls; the dispatch sites in validate.go dedup by Problem.fingerprint).
var alwaysFalseProblems = []*Problem{{Keyword: "false", MessageKey: "type.mismatch", Params: map[string]any{"expected": "nothing", "actual": "any"}}}

func (alwaysFalse) Evaluate(event.Event) Verdict { return False }
func (alwaysFalse) Problems() []*Problem         { return alwaysFalseProblems }
