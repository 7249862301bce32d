package justify

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kaptinlin/go-i18n"

	"github.com/letui/justify/event"
)

// Problem is a single validation failure, located at the instance position
// and schema keyword that produced it. Problem deliberately carries a
// message key plus parameters rather than a baked string, so the same
// failure can be rendered in any locale the catalog supports.
type Problem struct {
	Keyword      string
	MessageKey   string
	Params       map[string]any
	Location     event.Location
	InstancePath string
	SchemaPath   string

	// Branches holds the per-alternative problem sets for compound
	// failures: for anyOf and oneOf.few, one slice per alternative; for
	// oneOf.many, one slice per alternative that validated.
	Branches [][]*Problem
}

// NewProblem builds a Problem. params may be nil.
func NewProblem(keyword, messageKey string, params map[string]any) *Problem {
	return &Problem{Keyword: keyword, MessageKey: messageKey, Params: params}
}

// Error renders the default English message for this problem.
func (p *Problem) Error() string {
	tmpl, ok := defaultMessages[p.MessageKey]
	if !ok {
		tmpl = p.MessageKey
	}
	msg := replace(tmpl, p.Params)
	if len(p.Branches) > 0 {
		var parts []string
		for i, branch := range p.Branches {
			var sub []string
			for _, bp := range branch {
				sub = append(sub, bp.Error())
			}
			parts = append(parts, fmt.Sprintf("[%d]: %s", i, strings.Join(sub, "; ")))
		}
		msg = msg + " (" + strings.Join(parts, " | ") + ")"
	}
	return msg
}

// Localize renders this problem's message through localizer, falling back
// to the default English rendering when localizer is nil.
func (p *Problem) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return p.Error()
	}
	return localizer.Get(p.MessageKey, i18n.Vars(p.Params))
}

// RenderProblems writes one "<location> <message>" line per problem to w,
// in localizer's language (or the English default if localizer is nil),
// followed by an indented branch group for compound problems (oneOf,
// anyOf) listing each branch's problems in the English default.
func RenderProblems(w io.Writer, problems []*Problem, localizer *i18n.Localizer) {
	for _, p := range problems {
		loc := "[-,-]"
		if p.Location.Valid {
			loc = fmt.Sprintf("[%d,%d]", p.Location.Row, p.Location.Col)
		}
		msg := p.Error()
		if localizer != nil {
			msg = p.Localize(localizer)
		}
		fmt.Fprintf(w, "%s %s\n", loc, msg)
		for i, branch := range p.Branches {
			fmt.Fprintf(w, "  [%d]:\n", i)
			for _, bp := range branch {
				fmt.Fprintf(w, "    %s\n", bp.Error())
			}
		}
	}
}

// fingerprint identifies this Problem by content rather than pointer
// identity. Evaluators are free to allocate a fresh *Problem on every
// Problems() call as long as its content is stable once the verdict
// that produced it goes terminal; callers that dedup repeated
// Problems() calls (e.g. Validate) key off this instead of the pointer.
func (p *Problem) fingerprint() string {
	keys := make([]string, 0, len(p.Params))
	for k := range p.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(p.Keyword)
	b.WriteByte('|')
	b.WriteString(p.MessageKey)
	b.WriteByte('|')
	b.WriteString(p.InstancePath)
	b.WriteByte('|')
	b.WriteString(p.SchemaPath)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, p.Params[k])
	}
	for _, branch := range p.Branches {
		b.WriteByte('{')
		for _, bp := range branch {
			b.WriteString(bp.fingerprint())
			b.WriteByte(';')
		}
		b.WriteByte('}')
	}
	return b.String()
}

// replace substitutes {key} placeholders in template with params, matching
// the substitution scheme used throughout this codebase's message catalog.
func replace(template string, params map[string]interface{}) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}

// defaultMessages is the built-in English catalog, used by Error() and so
// whenever no localizer is supplied; Localize does not consult it. It is
// deliberately kept in sync with locales/en.json; GetI18n loads that file
// for actual localization.
var defaultMessages = map[string]string{
	"type.mismatch":               "value must be of type {expected}, got {actual}",
	"enum.mismatch":                "value must be one of the enumerated values",
	"const.mismatch":               "value must equal the constant value",
	"multipleOf.mismatch":          "value must be a multiple of {divisor}",
	"maximum.exceeded":             "value must be <= {max}",
	"exclusiveMaximum.exceeded":    "value must be < {max}",
	"minimum.exceeded":             "value must be >= {min}",
	"exclusiveMinimum.exceeded":    "value must be > {min}",
	"maxLength.exceeded":           "string length must be <= {max}",
	"minLength.exceeded":           "string length must be >= {min}",
	"pattern.mismatch":             "string does not match pattern {pattern}",
	"maxItems.exceeded":            "array length must be <= {max}",
	"minItems.exceeded":            "array length must be >= {min}",
	"uniqueItems.duplicate":        "array items must be unique",
	"contains.none":                "array must contain at least one matching item",
	"contains.tooFew":              "array must contain at least {min} matching items",
	"contains.tooMany":             "array must contain at most {max} matching items",
	"items.mismatch":               "array item does not match its schema",
	"additionalItems.disallowed":   "additional array items are not allowed",
	"maxProperties.exceeded":       "object must have <= {max} properties",
	"minProperties.exceeded":       "object must have >= {min} properties",
	"required.missing":             "object is missing required property {property}",
	"properties.mismatch":          "property {property} does not match its schema",
	"patternProperties.mismatch":   "property {property} does not match pattern schema {pattern}",
	"additionalProperties.disallowed": "additional property {property} is not allowed",
	"propertyNames.mismatch":       "property name {property} does not match schema",
	"dependencies.missing":         "property {trigger} requires property {missing}",
	"dependencies.schema":          "object does not satisfy the schema required by property {trigger}",
	"anyOf.mismatch":               "value does not match any of the allowed schemas",
	"oneOf.few":                    "value does not match any of the exclusive schemas",
	"oneOf.many":                   "value matches more than one exclusive schema",
	"not.matched":                  "value must not match the given schema",
	"format.mismatch":              "value does not match format {format}",
	"content.mediaType":            "string is not valid {mediaType} content",
	"ref.unresolved":               "schema reference {ref} could not be resolved",
}
