package justify

import (
	"regexp"
	"unicode/utf8"

	"github.com/letui/justify/event"
)

// stringEvaluator is the shared shallow base for string assertions: it
// fires on the single VALUE_STRING event and is Ignored otherwise.
type stringEvaluator struct {
	check   func(s string) bool
	keyword string
	msgKey  string
	params  map[string]any
	verdict Verdict
}

func (e *stringEvaluator) Evaluate(ev event.Event) Verdict {
	if e.verdict != Pending {
		return e.verdict
	}
	if ev.Kind != event.ValueString {
		e.verdict = Ignored
		return e.verdict
	}
	if e.check(ev.Str) {
		e.verdict = True
	} else {
		e.verdict = False
	}
	return e.verdict
}

func (e *stringEvaluator) Problems() []*Problem {
	if e.verdict != False {
		return nil
	}
	return []*Problem{NewProblem(e.keyword, e.msgKey, e.params)}
}

// maxLengthKeyword implements "maxLength", counted in Unicode code points.
type maxLengthKeyword struct{ max int }

func (k *maxLengthKeyword) Name() string { return "maxLength" }
func (k *maxLengthKeyword) evaluator() Evaluator {
	return &stringEvaluator{
		keyword: "maxLength",
		msgKey:  "maxLength.exceeded",
		params:  map[string]any{"max": k.max},
		check:   func(s string) bool { return utf8.RuneCountInString(s) <= k.max },
	}
}

// minLengthKeyword implements "minLength", counted in Unicode code points.
type minLengthKeyword struct{ min int }

func (k *minLengthKeyword) Name() string { return "minLength" }
func (k *minLengthKeyword) evaluator() Evaluator {
	return &stringEvaluator{
		keyword: "minLength",
		msgKey:  "minLength.exceeded",
		params:  map[string]any{"min": k.min},
		check:   func(s string) bool { return utf8.RuneCountInString(s) >= k.min },
	}
}

// patternKeyword implements "pattern": an unanchored ECMA-262-flavored
// regular expression search (not a full match).
type patternKeyword struct {
	source string
	re     *regexp.Regexp
}

func (k *patternKeyword) Name() string { return "pattern" }
func (k *patternKeyword) evaluator() Evaluator {
	return &stringEvaluator{
		keyword: "pattern",
		msgKey:  "pattern.mismatch",
		params:  map[string]any{"pattern": k.source},
		check:   func(s string) bool { return k.re.MatchString(s) },
	}
}
