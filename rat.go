package justify

import (
	"fmt"
	"math/big"
	"strings"
)

// numberFromRaw converts a schema document's raw decoded numeric literal
// (float64, int, or a JSON-number-ish string) into an arbitrary-precision
// big.Rat, so "maximum": 0.1 and "maximum": 1 compare exactly against an
// instance number of any shape.
func numberFromRaw(raw interface{}) (*big.Rat, error) {
	var str string
	switch v := raw.(type) {
	case string:
		str = v
	case fmt.Stringer:
		str = v.String()
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	default:
		return nil, ErrUnsupportedTypeForRat
	}
	r := new(big.Rat)
	if _, ok := r.SetString(str); !ok {
		return nil, ErrFailedToConvertToRat
	}
	return r, nil
}

// formatRat renders r the way problem messages and re-serialized schema
// constants expect: a plain integer when possible, otherwise a trimmed
// decimal with no trailing zeros.
func formatRat(r *big.Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	dec := r.FloatString(10)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" {
		return "0"
	}
	return dec
}
