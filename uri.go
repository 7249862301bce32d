package justify

import (
	"net/url"
	"path"
	"strings"
)

// splitRef separates a reference URI into its base URI and fragment.
func splitRef(ref string) (base, fragment string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

// resolveURIRef resolves relativeRef against baseURI per RFC 3986 §5,
// the composition rule Draft-07's "$id" and "$ref" both rely on.
func resolveURIRef(baseURI, relativeRef string) string {
	if relativeRef == "" {
		return baseURI
	}
	rel, err := url.Parse(relativeRef)
	if err != nil {
		return relativeRef
	}
	if rel.IsAbs() {
		return relativeRef
	}
	if baseURI == "" {
		return relativeRef
	}
	base, err := url.Parse(baseURI)
	if err != nil {
		return relativeRef
	}
	return base.ResolveReference(rel).String()
}

// resolvePointer walks a JSON Pointer (RFC 6901) through a raw decoded
// schema document (nested map[string]interface{}/[]interface{} values).
func resolvePointer(doc interface{}, pointer string) (interface{}, bool) {
	if pointer == "" {
		return doc, true
	}
	pointer = strings.TrimPrefix(pointer, "/")
	segments := strings.Split(pointer, "/")
	cur := doc
	for _, seg := range segments {
		seg = unescapePointerSegment(seg)
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			idx, err := parsePointerIndex(seg, len(node))
			if err != nil {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func unescapePointerSegment(seg string) string {
	seg = strings.ReplaceAll(seg, "~1", "/")
	seg = strings.ReplaceAll(seg, "~0", "~")
	return seg
}

func parsePointerIndex(seg string, length int) (int, error) {
	n := 0
	if seg == "" {
		return 0, path.ErrBadPattern
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, path.ErrBadPattern
		}
		n = n*10 + int(r-'0')
	}
	if n >= length {
		return 0, path.ErrBadPattern
	}
	return n, nil
}
