package justify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letui/justify/tokenizer"
)

func compileTest(t *testing.T, schemaJSON string) *Schema {
	t.Helper()
	b := NewBuilder()
	s, err := b.Compile([]byte(schemaJSON))
	require.NoError(t, err)
	return s
}

func validateJSON(t *testing.T, schema *Schema, instanceJSON string) []*Problem {
	t.Helper()
	src := tokenizer.New(strings.NewReader(instanceJSON))
	var problems []*Problem
	err := Validate(schema, src, func(p *Problem) { problems = append(problems, p) })
	require.NoError(t, err)
	return problems
}

func TestScenarioRangeInteger(t *testing.T) {
	schema := compileTest(t, `{"type":"integer","minimum":0,"maximum":100}`)

	assert.Empty(t, validateJSON(t, schema, `42`))

	problems := validateJSON(t, schema, `100.5`)
	require.Len(t, problems, 1)
	assert.Equal(t, "type", problems[0].Keyword)
}

func TestScenarioOneOf(t *testing.T) {
	schema := compileTest(t, `{"oneOf":[{"type":"integer"},{"multipleOf":5}]}`)

	problems := validateJSON(t, schema, `10`)
	require.Len(t, problems, 1)
	assert.Equal(t, "oneOf.many", problems[0].MessageKey)
	assert.Len(t, problems[0].Branches, 2)

	problems = validateJSON(t, schema, `"x"`)
	require.Len(t, problems, 1)
	assert.Equal(t, "oneOf.few", problems[0].MessageKey)
	assert.Len(t, problems[0].Branches, 2)
}

func TestScenarioPropertiesRequiredAdditional(t *testing.T) {
	schema := compileTest(t, `{
		"properties": {"a": {"type": "integer"}},
		"required": ["a"],
		"additionalProperties": false
	}`)

	problems := validateJSON(t, schema, `{"a":1,"b":2}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "additionalProperties", problems[0].Keyword)

	problems = validateJSON(t, schema, `{}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "required", problems[0].Keyword)

	problems = validateJSON(t, schema, `{"a":"x"}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "type", problems[0].Keyword)
}

func TestScenarioDependencies(t *testing.T) {
	schema := compileTest(t, `{"dependencies":{"a":["b"]}}`)

	problems := validateJSON(t, schema, `{"a":1}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "dependencies", problems[0].Keyword)
	assert.Equal(t, "a", problems[0].Params["trigger"])
	assert.Equal(t, []string{"b"}, problems[0].Params["missing"])

	assert.Empty(t, validateJSON(t, schema, `{"a":1,"b":2}`))
	assert.Empty(t, validateJSON(t, schema, `{"b":2}`))
}

func TestScenarioConditional(t *testing.T) {
	schema := compileTest(t, `{
		"if": {"properties": {"t": {"const": "x"}}, "required": ["t"]},
		"then": {"required": ["x"]},
		"else": {"required": ["y"]}
	}`)

	problems := validateJSON(t, schema, `{"t":"x"}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "required", problems[0].Keyword)

	problems = validateJSON(t, schema, `{"t":"z"}`)
	require.Len(t, problems, 1)
	assert.Equal(t, "required", problems[0].Keyword)
}

func TestScenarioFormatStrictAndLax(t *testing.T) {
	strict := NewBuilder()
	strict.SetStrictFormat(true)
	schema, err := strict.Compile([]byte(`{"format":"email"}`))
	require.NoError(t, err)

	assert.Empty(t, validateJSON(t, schema, `"a@b.c"`))
	problems := validateJSON(t, schema, `"not-an-email"`)
	require.Len(t, problems, 1)
	assert.Equal(t, "format", problems[0].Keyword)

	lax := NewBuilder()
	laxSchema, err := lax.Compile([]byte(`{"format":"zzz"}`))
	require.NoError(t, err)
	assert.Empty(t, validateJSON(t, laxSchema, `"anything at all"`))
}

func TestScenarioStrictFormatRejectsUnknownAtCompileTime(t *testing.T) {
	strict := NewBuilder()
	strict.SetStrictFormat(true)
	_, err := strict.Compile([]byte(`{"format":"zzz"}`))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
