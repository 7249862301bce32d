package justify

import "errors"

// Schema compilation errors: raised by Builder.Compile when the schema
// document itself is malformed or internally inconsistent.
var (
	// ErrInvalidSchemaDocument is returned when the raw schema bytes are
	// not valid JSON.
	ErrInvalidSchemaDocument = errors.New("justify: invalid schema document")

	// ErrInvalidSchemaType is returned when a schema position is neither
	// a JSON object nor a JSON boolean.
	ErrInvalidSchemaType = errors.New("justify: schema must be an object or a boolean")

	// ErrEmptyRequiredArray is returned when "required" is present but empty.
	ErrEmptyRequiredArray = errors.New("justify: required must be a non-empty array")

	// ErrInvalidMultipleOf is returned when "multipleOf" is present but
	// not a positive number; zero or negative divisors have no defined
	// meaning and would panic the evaluator's remainder check.
	ErrInvalidMultipleOf = errors.New("justify: multipleOf must be a positive number")

	// ErrEmptyEnumArray is returned when "enum" is present but empty: no
	// instance could ever satisfy it, which is almost certainly a
	// schema-authoring mistake rather than an intentional always-fail.
	ErrEmptyEnumArray = errors.New("justify: enum must be a non-empty array")

	// ErrEmptyCombinatorArray is returned when "allOf"/"anyOf"/"oneOf" is
	// present but empty.
	ErrEmptyCombinatorArray = errors.New("justify: allOf/anyOf/oneOf must be a non-empty array")

	// ErrInvalidPattern is returned when "pattern" or a patternProperties
	// key does not compile as a regular expression.
	ErrInvalidPattern = errors.New("justify: invalid regular expression pattern")

	// ErrUnsupportedTypeForRat is returned when a numeric keyword's raw
	// value cannot be interpreted as a number at all.
	ErrUnsupportedTypeForRat = errors.New("justify: unsupported type for numeric keyword")

	// ErrFailedToConvertToRat is returned when a numeric literal fails to
	// parse as an arbitrary-precision number.
	ErrFailedToConvertToRat = errors.New("justify: failed to parse numeric literal")

	// ErrUnknownFormat is returned in strict-format mode when "format"
	// names an attribute the Builder's registry does not recognize.
	ErrUnknownFormat = errors.New("justify: unknown format attribute")

	// ErrInvalidKeywordValue is returned when a keyword's value has the
	// wrong JSON type (e.g. "enum" that is not an array).
	ErrInvalidKeywordValue = errors.New("justify: invalid value for keyword")
)

// Reference resolution errors: raised while resolving "$id"/"$ref" or
// reported back through ref.unresolved problems at evaluation time.
var (
	// ErrUnresolvedReference names a "$ref" that could not be resolved.
	// Builder.Compile does not return it: an unresolved reference
	// compiles, and evaluation reports a ref.unresolved problem.
	ErrUnresolvedReference = errors.New("justify: unresolved schema reference")

	// ErrCircularID names two schemas declaring the same absolute "$id".
	// Builder.Compile does not check for this and does not return it; a
	// later schema with the same "$id" replaces the earlier registry entry.
	ErrCircularID = errors.New("justify: duplicate schema $id")
)

// Tokenizer / I/O errors: raised while reading the instance stream.
var (
	// ErrMalformedInstance names an instance byte stream that is not
	// well-formed JSON. Validate, NewValidatingSource and ReadValue return
	// the event source's own error unchanged, so they do not return it.
	ErrMalformedInstance = errors.New("justify: malformed instance document")
)
