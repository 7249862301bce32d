package justify

import (
	"errors"
	"io"

	"github.com/letui/justify/event"
)

// ProblemHandler receives each Problem as soon as the engine can prove it
// belongs to the final result, in the order the owning evaluator's own
// Problems() reports it.
type ProblemHandler func(*Problem)

// Validate drives src to exhaustion against schema, invoking handler for
// every problem the instance produces. It returns whatever error src
// itself reported (other than io.EOF, which marks ordinary completion);
// per the error handling design, the engine adds no translation layer
// over tokenizer errors.
func Validate(schema *Schema, src event.Source, handler ProblemHandler) error {
	root := schema.evaluator()
	dispatched := make(map[string]bool)

	dispatch := func() {
		for _, p := range root.Problems() {
			fp := p.fingerprint()
			if !dispatched[fp] {
				dispatched[fp] = true
				handler(p)
			}
		}
	}

	for {
		ev, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		root.Evaluate(ev)
		dispatch()
	}
	dispatch()
	return nil
}

// validatingSource wraps an event.Source, forwarding every event
// unchanged to its caller while feeding the same event into a schema
// evaluator and diverting any problems to sink.
type validatingSource struct {
	src   event.Source
	root  Evaluator
	sink  ProblemHandler
	dispd map[string]bool
}

// NewValidatingSource returns an event.Source that forwards every event
// from src unchanged, at the same position, while validating it against
// schema and reporting problems to sink as soon as they are known.
func NewValidatingSource(schema *Schema, src event.Source, sink ProblemHandler) event.Source {
	return &validatingSource{src: src, root: schema.evaluator(), sink: sink, dispd: make(map[string]bool)}
}

func (v *validatingSource) Next() (event.Event, error) {
	ev, err := v.src.Next()
	if err != nil {
		return ev, err
	}
	v.root.Evaluate(ev)
	for _, p := range v.root.Problems() {
		fp := p.fingerprint()
		if !v.dispd[fp] {
			v.dispd[fp] = true
			v.sink(p)
		}
	}
	return ev, nil
}

// ReadValue drains src fully, validating it against schema and
// reconstructing the whole instance as a Value. It returns the
// reconstructed value together with every problem the instance produced;
// unlike Validate's streaming contract, this is for callers who need the
// materialized tree anyway and are not themselves streaming.
func ReadValue(schema *Schema, src event.Source) (*Value, []*Problem, error) {
	root := schema.evaluator()
	var builder valueBuilder
	var value *Value
	dispatched := make(map[string]bool)
	var problems []*Problem

	collect := func() {
		for _, p := range root.Problems() {
			fp := p.fingerprint()
			if !dispatched[fp] {
				dispatched[fp] = true
				problems = append(problems, p)
			}
		}
	}

	for {
		ev, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, problems, err
		}
		root.Evaluate(ev)
		if v := builder.feed(ev); v != nil {
			value = v
		}
		collect()
	}
	collect()
	return value, problems, nil
}
