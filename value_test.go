package justify

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letui/justify/event"
)

func feedAll(vb *valueBuilder, evs []event.Event) *Value {
	var v *Value
	for _, ev := range evs {
		if got := vb.feed(ev); got != nil {
			v = got
		}
	}
	return v
}

func TestValueBuilderScalar(t *testing.T) {
	var vb valueBuilder
	r := big.NewRat(42, 1)
	v := feedAll(&vb, []event.Event{{Kind: event.ValueNumber, Num: r}})
	assert.Equal(t, event.ValueNumber, v.Kind)
	assert.Equal(t, 0, v.Num.Cmp(r))
}

func TestValueBuilderObject(t *testing.T) {
	var vb valueBuilder
	v := feedAll(&vb, []event.Event{
		{Kind: event.StartObject},
		{Kind: event.KeyName, Key: "a"},
		{Kind: event.ValueString, Str: "x"},
		{Kind: event.EndObject},
	})
	assert.Equal(t, event.StartObject, v.Kind)
	assert.Equal(t, []string{"a"}, v.Keys)
	assert.Equal(t, "x", v.Object["a"].Str)
}

func TestValuesEqualNumberCanonicalization(t *testing.T) {
	one := &Value{Kind: event.ValueNumber, Num: big.NewRat(1, 1)}
	oneDotZero := &Value{Kind: event.ValueNumber, Num: big.NewRat(10, 10)}
	assert.True(t, valuesEqual(one, oneDotZero))
}

func TestValuesEqualObjectKeyOrderIrrelevant(t *testing.T) {
	a := &Value{Kind: event.StartObject, Keys: []string{"x", "y"}, Object: map[string]*Value{
		"x": {Kind: event.ValueNumber, Num: big.NewRat(1, 1)},
		"y": {Kind: event.ValueNumber, Num: big.NewRat(2, 1)},
	}}
	b := &Value{Kind: event.StartObject, Keys: []string{"y", "x"}, Object: map[string]*Value{
		"y": {Kind: event.ValueNumber, Num: big.NewRat(2, 1)},
		"x": {Kind: event.ValueNumber, Num: big.NewRat(1, 1)},
	}}
	assert.True(t, valuesEqual(a, b))
}

func TestValuesEqualArrayOrderMatters(t *testing.T) {
	a := &Value{Kind: event.StartArray, Array: []*Value{
		{Kind: event.ValueNumber, Num: big.NewRat(1, 1)},
		{Kind: event.ValueNumber, Num: big.NewRat(2, 1)},
	}}
	b := &Value{Kind: event.StartArray, Array: []*Value{
		{Kind: event.ValueNumber, Num: big.NewRat(2, 1)},
		{Kind: event.ValueNumber, Num: big.NewRat(1, 1)},
	}}
	assert.False(t, valuesEqual(a, b))
}
