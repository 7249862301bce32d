package justify

import (
	"fmt"
	"regexp"

	gojson "github.com/goccy/go-json"

	"github.com/letui/justify/format"
)

// Builder compiles raw Draft-07 schema documents into a Schema evaluator
// tree. One Builder can compile many documents; its format registry and
// strict-format setting apply to every schema it compiles, mirroring the
// teacher's Compiler, trimmed to the single-pass, single-draft scope this
// engine needs: no loaders, no media-type registry, no default-value
// functions, since this engine never materializes an instance tree for
// the Builder to act on beyond what a schema document itself carries.
type Builder struct {
	formats      format.Registry
	strictFormat bool

	// registry maps an absolute schema URI (no fragment) to the raw
	// decoded document rooted there, so "$ref" can resolve a JSON
	// Pointer fragment against the right document.
	registry map[string]interface{}

	// anchors maps "<baseURI>#<name>" to the compiled Schema that
	// declared that plain-name fragment via "$id" or "$anchor".
	anchors map[string]*Schema

	// pending collects every compiled Schema carrying an unresolved
	// "$ref", so a second pass can resolve them once the whole document
	// graph has been walked and every $id/$anchor is known.
	pending []*Schema
}

// NewBuilder returns a Builder seeded with every built-in format
// validator and lax format checking (unknown "format" names are ignored,
// not rejected).
func NewBuilder() *Builder {
	return &Builder{
		formats:  format.New(),
		registry: make(map[string]interface{}),
		anchors:  make(map[string]*Schema),
	}
}

// RegisterFormat installs or overrides a format validator.
func (b *Builder) RegisterFormat(name string, v format.Validator) {
	b.formats[name] = v
}

// UnregisterFormat removes a format validator, reverting that name to
// lax no-op behavior (or a compile error, under strict-format mode).
func (b *Builder) UnregisterFormat(name string) {
	delete(b.formats, name)
}

// SetStrictFormat controls whether an unrecognized "format" name fails
// compilation (true) or is silently ignored (false, the default).
func (b *Builder) SetStrictFormat(strict bool) {
	b.strictFormat = strict
}

// Compile parses raw as a JSON Draft-07 schema document and returns its
// compiled root Schema.
func (b *Builder) Compile(raw []byte) (*Schema, error) {
	return b.CompileWithBaseURI(raw, "")
}

// CompileWithBaseURI is Compile, but starts from baseURI as the base for
// relative "$id" and "$ref" values. A root "$id" is resolved against
// baseURI and then becomes the base for the rest of the document.
func (b *Builder) CompileWithBaseURI(raw []byte, baseURI string) (*Schema, error) {
	var doc interface{}
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchemaDocument, err)
	}
	if obj, ok := doc.(map[string]interface{}); ok {
		if id, ok := obj["$id"].(string); ok && id != "" {
			baseURI = resolveURIRef(baseURI, id)
		}
	}
	if baseURI != "" {
		b.registry[baseURI] = doc
	}

	schema, err := b.compileNode(doc, baseURI)
	if err != nil {
		return nil, err
	}

	if err := b.resolvePending(); err != nil {
		return nil, err
	}
	return schema, nil
}

// compileNode compiles one schema node (object or boolean form), tracking
// baseURI so nested "$id" values and sibling "$ref"s resolve correctly.
func (b *Builder) compileNode(raw interface{}, baseURI string) (*Schema, error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return trueSchema(), nil
		}
		return falseSchema(), nil
	case map[string]interface{}:
		return b.compileObject(v, baseURI)
	case nil:
		return trueSchema(), nil
	default:
		return nil, fmt.Errorf("%w: schema node is %T", ErrInvalidSchemaType, raw)
	}
}

// compileObject compiles an object-form schema node, recognizing every
// Draft-07 keyword this engine implements.
func (b *Builder) compileObject(obj map[string]interface{}, baseURI string) (*Schema, error) {
	s := &Schema{builder: b}

	if id, ok := obj["$id"].(string); ok && id != "" {
		resolved := resolveURIRef(baseURI, id)
		s.id = resolved
		base, fragment := splitRef(resolved)
		if fragment != "" {
			b.anchors[base+"#"+fragment] = s
		} else {
			b.registry[base] = obj
		}
		baseURI = base
	}
	if anchor, ok := obj["$anchor"].(string); ok && anchor != "" {
		s.anchor = anchor
		b.anchors[baseURI+"#"+anchor] = s
	}

	if ref, ok := obj["$ref"].(string); ok && ref != "" {
		s.ref = resolveURIRef(baseURI, ref)
		b.pending = append(b.pending, s)
		// Draft-07: sibling keywords next to "$ref" are ignored, so
		// compilation of this node stops here.
		return s, nil
	}

	var kw []Keyword

	if t, ok := obj["type"]; ok {
		types, err := stringOrArray(t)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &typeKeyword{types: types})
	}

	if raw, ok := obj["const"]; ok {
		v, err := valueFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &constKeyword{value: v})
	}

	if raw, ok := obj["enum"]; ok {
		arr, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: enum must be an array", ErrInvalidKeywordValue)
		}
		if len(arr) == 0 {
			return nil, ErrEmptyEnumArray
		}
		values := make([]*Value, len(arr))
		for i, item := range arr {
			v, err := valueFromRaw(item)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		kw = append(kw, &enumKeyword{values: values})
	}

	numKw, err := b.compileNumeric(obj)
	if err != nil {
		return nil, err
	}
	kw = append(kw, numKw...)

	strKw, err := b.compileString(obj)
	if err != nil {
		return nil, err
	}
	kw = append(kw, strKw...)

	objKw, err := b.compileObjectKeywords(obj, baseURI)
	if err != nil {
		return nil, err
	}
	kw = append(kw, objKw...)

	arrKw, err := b.compileArrayKeywords(obj, baseURI)
	if err != nil {
		return nil, err
	}
	kw = append(kw, arrKw...)

	combKw, err := b.compileCombinators(obj, baseURI)
	if err != nil {
		return nil, err
	}
	kw = append(kw, combKw...)

	if cond, err := b.compileConditional(obj, baseURI); err != nil {
		return nil, err
	} else if cond != nil {
		kw = append(kw, cond)
	}

	if fk, err := b.compileFormat(obj); err != nil {
		return nil, err
	} else if fk != nil {
		kw = append(kw, fk)
	}

	if ck := b.compileContent(obj); ck != nil {
		kw = append(kw, ck)
	}

	s.keywords = kw
	return s, nil
}

func (b *Builder) compileNumeric(obj map[string]interface{}) ([]Keyword, error) {
	var kw []Keyword
	if raw, ok := obj["multipleOf"]; ok {
		n, err := numberFromRaw(raw)
		if err != nil {
			return nil, err
		}
		if n.Sign() <= 0 {
			return nil, ErrInvalidMultipleOf
		}
		kw = append(kw, &multipleOfKeyword{divisor: n})
	}
	if raw, ok := obj["maximum"]; ok {
		n, err := numberFromRaw(raw)
		if err != nil {
			return nil, err
		}
		if excl, ok := obj["exclusiveMaximum"].(bool); ok && excl {
			kw = append(kw, &exclusiveMaximumKeyword{limit: n})
		} else {
			kw = append(kw, &maximumKeyword{limit: n})
		}
	}
	if raw, ok := obj["exclusiveMaximum"]; ok {
		if _, isBool := raw.(bool); !isBool {
			n, err := numberFromRaw(raw)
			if err != nil {
				return nil, err
			}
			kw = append(kw, &exclusiveMaximumKeyword{limit: n})
		}
	}
	if raw, ok := obj["minimum"]; ok {
		n, err := numberFromRaw(raw)
		if err != nil {
			return nil, err
		}
		if excl, ok := obj["exclusiveMinimum"].(bool); ok && excl {
			kw = append(kw, &exclusiveMinimumKeyword{limit: n})
		} else {
			kw = append(kw, &minimumKeyword{limit: n})
		}
	}
	if raw, ok := obj["exclusiveMinimum"]; ok {
		if _, isBool := raw.(bool); !isBool {
			n, err := numberFromRaw(raw)
			if err != nil {
				return nil, err
			}
			kw = append(kw, &exclusiveMinimumKeyword{limit: n})
		}
	}
	return kw, nil
}

func (b *Builder) compileString(obj map[string]interface{}) ([]Keyword, error) {
	var kw []Keyword
	if raw, ok := obj["maxLength"]; ok {
		n, err := intFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &maxLengthKeyword{max: n})
	}
	if raw, ok := obj["minLength"]; ok {
		n, err := intFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &minLengthKeyword{min: n})
	}
	if raw, ok := obj["pattern"].(string); ok {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		kw = append(kw, &patternKeyword{source: raw, re: re})
	}
	return kw, nil
}

func (b *Builder) compileObjectKeywords(obj map[string]interface{}, baseURI string) ([]Keyword, error) {
	var kw []Keyword
	if raw, ok := obj["maxProperties"]; ok {
		n, err := intFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &maxPropertiesKeyword{max: n})
	}
	if raw, ok := obj["minProperties"]; ok {
		n, err := intFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &minPropertiesKeyword{min: n})
	}
	if raw, ok := obj["required"]; ok {
		arr, ok := raw.([]interface{})
		if !ok || len(arr) == 0 {
			return nil, ErrEmptyRequiredArray
		}
		names := make([]string, len(arr))
		for i, n := range arr {
			s, ok := n.(string)
			if !ok {
				return nil, fmt.Errorf("%w: required entries must be strings", ErrInvalidKeywordValue)
			}
			names[i] = s
		}
		kw = append(kw, &requiredKeyword{names: names})
	}

	_, hasProps := obj["properties"]
	_, hasPatternProps := obj["patternProperties"]
	_, hasAdditionalProps := obj["additionalProperties"]
	_, hasPropertyNames := obj["propertyNames"]
	if hasProps || hasPatternProps || hasAdditionalProps || hasPropertyNames {
		pk := &propertiesKeyword{}
		if raw, ok := obj["properties"].(map[string]interface{}); ok {
			pk.properties = make(map[string]*Schema, len(raw))
			for name, node := range raw {
				sub, err := b.compileNode(node, baseURI)
				if err != nil {
					return nil, err
				}
				pk.properties[name] = sub
			}
		}
		if raw, ok := obj["patternProperties"].(map[string]interface{}); ok {
			for pattern, node := range raw {
				re, err := regexp.Compile(pattern)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
				}
				sub, err := b.compileNode(node, baseURI)
				if err != nil {
					return nil, err
				}
				pk.patternProperties = append(pk.patternProperties, patternPropEntry{source: pattern, re: re, schema: sub})
			}
		}
		if raw, ok := obj["additionalProperties"]; ok {
			if disallowed, ok := raw.(bool); ok && !disallowed {
				pk.additionalDisallowed = true
			} else {
				sub, err := b.compileNode(raw, baseURI)
				if err != nil {
					return nil, err
				}
				pk.additional = sub
			}
		}
		if raw, ok := obj["propertyNames"]; ok {
			sub, err := b.compileNode(raw, baseURI)
			if err != nil {
				return nil, err
			}
			pk.propertyNames = sub
		}
		kw = append(kw, pk)
	}

	if raw, ok := obj["dependencies"].(map[string]interface{}); ok {
		dk := &dependenciesKeyword{}
		for prop, val := range raw {
			switch v := val.(type) {
			case []interface{}:
				names := make([]string, len(v))
				for i, n := range v {
					s, ok := n.(string)
					if !ok {
						return nil, fmt.Errorf("%w: dependencies array entries must be strings", ErrInvalidKeywordValue)
					}
					names[i] = s
				}
				dk.required = append(dk.required, dependentRequiredEntry{trigger: prop, requires: names})
			default:
				sub, err := b.compileNode(val, baseURI)
				if err != nil {
					return nil, err
				}
				dk.schemas = append(dk.schemas, dependentSchemaEntry{trigger: prop, schema: sub})
			}
		}
		kw = append(kw, dk)
	}

	return kw, nil
}

func (b *Builder) compileArrayKeywords(obj map[string]interface{}, baseURI string) ([]Keyword, error) {
	var kw []Keyword
	if raw, ok := obj["maxItems"]; ok {
		n, err := intFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &maxItemsKeyword{max: n})
	}
	if raw, ok := obj["minItems"]; ok {
		n, err := intFromRaw(raw)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &minItemsKeyword{min: n})
	}
	if raw, ok := obj["uniqueItems"].(bool); ok {
		kw = append(kw, &uniqueItemsKeyword{enabled: raw})
	}

	if _, ok := obj["items"]; ok {
		ik := &itemsKeyword{}
		switch v := obj["items"].(type) {
		case []interface{}:
			tuple := make([]*Schema, len(v))
			for i, node := range v {
				sub, err := b.compileNode(node, baseURI)
				if err != nil {
					return nil, err
				}
				tuple[i] = sub
			}
			ik.tuple = tuple
			if raw, ok := obj["additionalItems"]; ok {
				sub, err := b.compileNode(raw, baseURI)
				if err != nil {
					return nil, err
				}
				ik.additional = sub
			}
		default:
			sub, err := b.compileNode(v, baseURI)
			if err != nil {
				return nil, err
			}
			ik.single = sub
		}
		kw = append(kw, ik)
	}

	if raw, ok := obj["contains"]; ok {
		sub, err := b.compileNode(raw, baseURI)
		if err != nil {
			return nil, err
		}
		ck := &containsKeyword{schema: sub, minContains: -1, maxContains: -1}
		if n, ok := obj["minContains"]; ok {
			v, err := intFromRaw(n)
			if err != nil {
				return nil, err
			}
			ck.minContains = v
		}
		if n, ok := obj["maxContains"]; ok {
			v, err := intFromRaw(n)
			if err != nil {
				return nil, err
			}
			ck.maxContains = v
		}
		kw = append(kw, ck)
	}

	return kw, nil
}

func (b *Builder) compileCombinators(obj map[string]interface{}, baseURI string) ([]Keyword, error) {
	var kw []Keyword
	if raw, ok := obj["allOf"].([]interface{}); ok {
		if len(raw) == 0 {
			return nil, ErrEmptyCombinatorArray
		}
		schemas, err := b.compileNodeList(raw, baseURI)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &allOfKeyword{schemas: schemas})
	}
	if raw, ok := obj["anyOf"].([]interface{}); ok {
		if len(raw) == 0 {
			return nil, ErrEmptyCombinatorArray
		}
		schemas, err := b.compileNodeList(raw, baseURI)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &anyOfKeyword{schemas: schemas})
	}
	if raw, ok := obj["oneOf"].([]interface{}); ok {
		if len(raw) == 0 {
			return nil, ErrEmptyCombinatorArray
		}
		schemas, err := b.compileNodeList(raw, baseURI)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &oneOfKeyword{schemas: schemas})
	}
	if raw, ok := obj["not"]; ok {
		sub, err := b.compileNode(raw, baseURI)
		if err != nil {
			return nil, err
		}
		kw = append(kw, &notKeyword{schema: sub})
	}
	return kw, nil
}

func (b *Builder) compileNodeList(raw []interface{}, baseURI string) ([]*Schema, error) {
	schemas := make([]*Schema, len(raw))
	for i, node := range raw {
		sub, err := b.compileNode(node, baseURI)
		if err != nil {
			return nil, err
		}
		schemas[i] = sub
	}
	return schemas, nil
}

func (b *Builder) compileConditional(obj map[string]interface{}, baseURI string) (Keyword, error) {
	ifRaw, hasIf := obj["if"]
	thenRaw, hasThen := obj["then"]
	elseRaw, hasElse := obj["else"]
	if !hasIf {
		return nil, nil
	}
	ck := &conditionalKeyword{}
	var err error
	if ck.ifS, err = b.compileNode(ifRaw, baseURI); err != nil {
		return nil, err
	}
	if hasThen {
		if ck.thenS, err = b.compileNode(thenRaw, baseURI); err != nil {
			return nil, err
		}
	}
	if hasElse {
		if ck.elseS, err = b.compileNode(elseRaw, baseURI); err != nil {
			return nil, err
		}
	}
	return ck, nil
}

func (b *Builder) compileFormat(obj map[string]interface{}) (Keyword, error) {
	name, ok := obj["format"].(string)
	if !ok || name == "" {
		return nil, nil
	}
	v, found := b.formats[name]
	if !found {
		if b.strictFormat {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		}
		return &formatKeyword{name: name, validator: nil}, nil
	}
	return &formatKeyword{name: name, validator: v}, nil
}

func (b *Builder) compileContent(obj map[string]interface{}) Keyword {
	enc, hasEnc := obj["contentEncoding"].(string)
	media, hasMedia := obj["contentMediaType"].(string)
	if !hasEnc && !hasMedia {
		return nil
	}
	return &contentKeyword{encoding: enc, mediaType: media}
}

// resolvePending resolves every "$ref" gathered during compilation, once
// every "$id"/"$anchor" in the document graph is known. A $ref that
// cannot be resolved is left with a nil Schema.resolved, which
// refEvaluator treats as the unresolved-reference sentinel at evaluation
// time.
func (b *Builder) resolvePending() error {
	for _, s := range b.pending {
		s.resolved = b.lookup(s.ref)
	}
	return nil
}

// lookup resolves an absolute reference URI (base plus optional
// fragment) against the Builder's registry of documents and anchors.
func (b *Builder) lookup(ref string) *Schema {
	base, fragment := splitRef(ref)

	if fragment == "" || fragment[0] != '/' {
		if s, ok := b.anchors[base+"#"+fragment]; ok {
			return s
		}
	}

	doc, ok := b.registry[base]
	if !ok {
		return nil
	}
	node, ok := resolvePointer(doc, fragment)
	if !ok {
		return nil
	}
	sub, err := b.compileNode(node, base)
	if err != nil {
		return nil
	}
	return sub
}

// stringOrArray normalizes "type"'s value, which may be a single string
// or an array of strings.
func stringOrArray(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: type entries must be strings", ErrInvalidKeywordValue)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: type must be a string or array of strings", ErrInvalidKeywordValue)
	}
}

// intFromRaw converts a schema document's raw decoded numeric literal
// into a plain int, for size-bound keywords like "maxLength"/"minItems".
func intFromRaw(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: expected an integer, got %T", ErrInvalidKeywordValue, raw)
	}
}
