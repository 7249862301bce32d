package tokenizer

import (
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letui/justify/event"
)

func drain(t *testing.T, tok *Tokenizer) []event.Event {
	t.Helper()
	var evs []event.Event
	for {
		ev, err := tok.Next()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return evs
		}
		evs = append(evs, ev)
	}
}

func kinds(evs []event.Event) []event.Kind {
	ks := make([]event.Kind, len(evs))
	for i, ev := range evs {
		ks[i] = ev.Kind
	}
	return ks
}

func TestScalarValues(t *testing.T) {
	tok := New(strings.NewReader(`42`))
	evs := drain(t, tok)
	require.Len(t, evs, 1)
	assert.Equal(t, event.ValueNumber, evs[0].Kind)
	assert.Equal(t, 0, evs[0].Num.Cmp(big.NewRat(42, 1)))

	tok = New(strings.NewReader(`"hi"`))
	evs = drain(t, tok)
	require.Len(t, evs, 1)
	assert.Equal(t, event.ValueString, evs[0].Kind)
	assert.Equal(t, "hi", evs[0].Str)

	tok = New(strings.NewReader(`true`))
	assert.Equal(t, []event.Kind{event.ValueTrue}, kinds(drain(t, tok)))

	tok = New(strings.NewReader(`false`))
	assert.Equal(t, []event.Kind{event.ValueFalse}, kinds(drain(t, tok)))

	tok = New(strings.NewReader(`null`))
	assert.Equal(t, []event.Kind{event.ValueNull}, kinds(drain(t, tok)))
}

func TestObjectKeysAndDepth(t *testing.T) {
	tok := New(strings.NewReader(`{"a":1,"b":"x"}`))
	evs := drain(t, tok)

	require.Len(t, evs, 6)
	assert.Equal(t, []event.Kind{
		event.StartObject, event.KeyName, event.ValueNumber,
		event.KeyName, event.ValueString, event.EndObject,
	}, kinds(evs))

	assert.Equal(t, 0, evs[0].Depth) // StartObject
	assert.Equal(t, 1, evs[1].Depth) // key "a"
	assert.Equal(t, "a", evs[1].Key)
	assert.Equal(t, 1, evs[2].Depth)
	assert.Equal(t, "b", evs[3].Key)
	assert.Equal(t, 0, evs[5].Depth) // EndObject back at root depth
}

func TestNestedArrayInObject(t *testing.T) {
	tok := New(strings.NewReader(`{"items":[1,2,3]}`))
	evs := drain(t, tok)

	require.Len(t, evs, 8)
	assert.Equal(t, []event.Kind{
		event.StartObject, event.KeyName, event.StartArray,
		event.ValueNumber, event.ValueNumber, event.ValueNumber, event.EndArray,
		event.EndObject,
	}, kinds(evs))
	assert.Equal(t, 1, evs[2].Depth) // StartArray nested one level in
	assert.Equal(t, 2, evs[3].Depth) // items are nested one level deeper still
}

func TestLocationTracksRowAndColumn(t *testing.T) {
	tok := New(strings.NewReader("{\n  \"a\": 1\n}"))
	evs := drain(t, tok)
	require.Len(t, evs, 4)
	assert.True(t, evs[0].Location.Valid)
	assert.Equal(t, 1, evs[0].Location.Row)
	assert.Equal(t, 2, evs[1].Location.Row)
}

func TestEOFAfterTopLevelValue(t *testing.T) {
	tok := New(strings.NewReader(`1`))
	_, err := tok.Next()
	require.NoError(t, err)
	_, err = tok.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = tok.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestMalformedNumberIsError(t *testing.T) {
	// a bare minus sign is not a well-formed JSON number; the underlying
	// decoder surfaces this before it ever reaches our big.Rat parsing.
	tok := New(strings.NewReader(`-`))
	_, err := tok.Next()
	assert.Error(t, err)
}
