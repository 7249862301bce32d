// Package tokenizer adapts a raw JSON byte stream into an event.Source,
// using goccy/go-json's token reader rather than decoding into a tree.
package tokenizer

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	gojson "github.com/goccy/go-json"

	"github.com/letui/justify/event"
)

// ErrUnexpectedToken is returned when the underlying decoder yields a
// token type the tokenizer does not recognize.
var ErrUnexpectedToken = errors.New("tokenizer: unexpected token type")

// frame tracks one open container so the tokenizer can tell a JSON object
// key apart from a JSON string value: goccy's token stream (like
// encoding/json's) reports both as plain strings and leaves the
// key/value alternation to the caller.
type frame struct {
	isObject  bool
	expectKey bool // only meaningful when isObject is true
}

// Tokenizer wraps a goccy/go-json token reader, translating each token
// into an event.Event and tracking absolute nesting depth plus a best
// effort row/column position derived from the bytes consumed so far.
type Tokenizer struct {
	dec   *gojson.Decoder
	cr    *countingReader
	depth int
	stack []frame
	done  bool
}

// New builds a Tokenizer reading JSON tokens from r.
func New(r io.Reader) *Tokenizer {
	cr := &countingReader{r: r}
	dec := gojson.NewDecoder(cr)
	dec.UseNumber()
	return &Tokenizer{dec: dec, cr: cr}
}

// countingReader mirrors bytes read so the tokenizer can translate byte
// offsets into row/column positions without buffering the whole input.
type countingReader struct {
	r         io.Reader
	lineStart []int
	offset    int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == '\n' {
			c.lineStart = append(c.lineStart, c.offset+i+1)
		}
	}
	c.offset += n
	return n, err
}

func (c *countingReader) locate(offset int) event.Location {
	row := 1
	col := offset + 1
	for _, start := range c.lineStart {
		if start > offset {
			break
		}
		row++
		col = offset - start + 1
	}
	return event.Location{Row: row, Col: col, Valid: true}
}

func (t *Tokenizer) currentLocation() event.Location {
	return t.cr.locate(int(t.dec.InputOffset()))
}

func (t *Tokenizer) top() *frame {
	if len(t.stack) == 0 {
		return nil
	}
	return &t.stack[len(t.stack)-1]
}

// afterValue records that a complete value has just been consumed at the
// current depth, flipping the enclosing object's key/value alternation.
func (t *Tokenizer) afterValue() {
	if f := t.top(); f != nil && f.isObject {
		f.expectKey = true
	}
}

// Next returns the next parse event, or io.EOF when the stream is exhausted.
func (t *Tokenizer) Next() (event.Event, error) {
	if t.done {
		return event.Event{}, io.EOF
	}

	tok, err := t.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			t.done = true
		}
		return event.Event{}, err
	}

	loc := t.currentLocation()

	switch v := tok.(type) {
	case gojson.Delim:
		switch v.String() {
		case "{":
			ev := event.Event{Kind: event.StartObject, Depth: t.depth, Location: loc}
			t.depth++
			t.stack = append(t.stack, frame{isObject: true, expectKey: true})
			return ev, nil
		case "}":
			t.depth--
			t.stack = t.stack[:len(t.stack)-1]
			ev := event.Event{Kind: event.EndObject, Depth: t.depth, Location: loc}
			t.afterValue()
			return ev, nil
		case "[":
			ev := event.Event{Kind: event.StartArray, Depth: t.depth, Location: loc}
			t.depth++
			t.stack = append(t.stack, frame{isObject: false})
			return ev, nil
		case "]":
			t.depth--
			t.stack = t.stack[:len(t.stack)-1]
			ev := event.Event{Kind: event.EndArray, Depth: t.depth, Location: loc}
			t.afterValue()
			return ev, nil
		default:
			return event.Event{}, fmt.Errorf("%w: delim %q", ErrUnexpectedToken, v.String())
		}
	case string:
		if f := t.top(); f != nil && f.isObject && f.expectKey {
			f.expectKey = false
			return event.Event{Kind: event.KeyName, Depth: t.depth, Key: v, Location: loc}, nil
		}
		ev := event.Event{Kind: event.ValueString, Depth: t.depth, Str: v, Location: loc}
		t.afterValue()
		return ev, nil
	case gojson.Number:
		r, ok := new(big.Rat).SetString(v.String())
		if !ok {
			return event.Event{}, fmt.Errorf("%w: malformed number %q", ErrUnexpectedToken, v.String())
		}
		ev := event.Event{Kind: event.ValueNumber, Depth: t.depth, Num: r, Location: loc}
		t.afterValue()
		return ev, nil
	case bool:
		k := event.ValueFalse
		if v {
			k = event.ValueTrue
		}
		ev := event.Event{Kind: k, Depth: t.depth, Location: loc}
		t.afterValue()
		return ev, nil
	case nil:
		ev := event.Event{Kind: event.ValueNull, Depth: t.depth, Location: loc}
		t.afterValue()
		return ev, nil
	default:
		return event.Event{}, fmt.Errorf("%w: %T", ErrUnexpectedToken, tok)
	}
}
