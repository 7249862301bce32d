package justify

import (
	"encoding/base64"

	gojson "github.com/goccy/go-json"

	"github.com/letui/justify/event"
)

// contentKeyword implements Draft-07's "contentEncoding"/"contentMediaType"
// pair ("contentSchema" does not exist until 2019-09). Both are
// annotation-like assertions applied leniently: an unrecognized encoding
// or media type, or a string that does not decode, is not itself a
// failure; only bytes that a *recognized* media type fails to parse are.
type contentKeyword struct {
	encoding  string
	mediaType string
}

func (k *contentKeyword) Name() string { return "content" }

func (k *contentKeyword) evaluator() Evaluator {
	return &contentEvaluator{encoding: k.encoding, mediaType: k.mediaType}
}

type contentEvaluator struct {
	encoding, mediaType string
	verdict             Verdict
}

func (e *contentEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if ev.Kind != event.ValueString {
		e.verdict = Ignored
		return e.verdict
	}

	decoded := []byte(ev.Str)
	if e.encoding == "base64" {
		d, err := base64.StdEncoding.DecodeString(ev.Str)
		if err != nil {
			// Known encoding, but the string doesn't decode: lax by
			// spec, nothing left to test against contentMediaType.
			e.verdict = True
			return e.verdict
		}
		decoded = d
	}

	if e.mediaType == "application/json" {
		var v interface{}
		if err := gojson.Unmarshal(decoded, &v); err != nil {
			e.verdict = False
			return e.verdict
		}
	}

	e.verdict = True
	return e.verdict
}

// Problems reports a contentMediaType mismatch: the only way this
// evaluator's verdict goes False is a known media type failing to parse
// the (possibly decoded) bytes. An unrecognized or undecodable encoding
// never fails by itself — see the lax handling in Evaluate.
func (e *contentEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem("contentMediaType", "content.mediaType", map[string]any{"mediaType": e.mediaType})}
}
