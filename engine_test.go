package justify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letui/justify/event"
)

type fixedEvaluator struct {
	verdict Verdict
	probs   []*Problem
}

func (f *fixedEvaluator) Evaluate(event.Event) Verdict { return f.verdict }
func (f *fixedEvaluator) Problems() []*Problem         { return f.probs }

func TestConjunctiveAllTrue(t *testing.T) {
	c := newConjunctive([]Evaluator{&fixedEvaluator{verdict: True}, &fixedEvaluator{verdict: True}})
	v := c.Evaluate(event.Event{Kind: event.ValueNull})
	assert.Equal(t, True, v)
	assert.Empty(t, c.Problems())
}

func TestConjunctiveAnyFalse(t *testing.T) {
	p := []*Problem{NewProblem("x", "x.mismatch", nil)}
	c := newConjunctive([]Evaluator{&fixedEvaluator{verdict: True}, &fixedEvaluator{verdict: False, probs: p}})
	v := c.Evaluate(event.Event{Kind: event.ValueNull})
	assert.Equal(t, False, v)
	assert.Equal(t, p, c.Problems())
}

func TestDisjunctiveAnyTrue(t *testing.T) {
	d := newDisjunctive([]Evaluator{&fixedEvaluator{verdict: False}, &fixedEvaluator{verdict: True}}, "anyOf.mismatch")
	v := d.Evaluate(event.Event{Kind: event.ValueNull})
	assert.Equal(t, True, v)
}

func TestDisjunctiveAllFalse(t *testing.T) {
	d := newDisjunctive([]Evaluator{&fixedEvaluator{verdict: False}, &fixedEvaluator{verdict: False}}, "anyOf.mismatch")
	v := d.Evaluate(event.Event{Kind: event.ValueNull})
	assert.Equal(t, False, v)
	require := assert.New(t)
	require.Len(d.Problems(), 1)
	require.Equal("anyOf.mismatch", d.Problems()[0].MessageKey)
}

func TestNegate(t *testing.T) {
	n := newNegate(&fixedEvaluator{verdict: False})
	assert.Equal(t, True, n.Evaluate(event.Event{Kind: event.ValueNull}))

	n2 := newNegate(&fixedEvaluator{verdict: True})
	assert.Equal(t, False, n2.Evaluate(event.Event{Kind: event.ValueNull}))
}

func TestScopeTrackerScalar(t *testing.T) {
	var s scopeTracker
	s.observe(event.Event{Kind: event.ValueNumber})
	assert.True(t, s.Closed())
}

func TestScopeTrackerNestedContainer(t *testing.T) {
	var s scopeTracker
	evs := []event.Event{
		{Kind: event.StartArray},
		{Kind: event.StartObject},
		{Kind: event.EndObject},
		{Kind: event.EndArray},
	}
	for i, ev := range evs {
		s.observe(ev)
		if i < len(evs)-1 {
			assert.False(t, s.Closed())
		}
	}
	assert.True(t, s.Closed())
}

func TestChildSpanRebasesDepth(t *testing.T) {
	var seen []int
	probe := &probeEvaluator{fn: func(ev event.Event) { seen = append(seen, ev.Depth) }}
	span := newChildSpan(probe, 2)
	span.feed(event.Event{Kind: event.ValueNumber, Depth: 2})
	assert.Equal(t, []int{0}, seen)
}

type probeEvaluator struct {
	fn func(event.Event)
}

func (p *probeEvaluator) Evaluate(ev event.Event) Verdict {
	p.fn(ev)
	return True
}
func (p *probeEvaluator) Problems() []*Problem { return nil }
