package format

import "net/url"

func init() {
	register("uri", isURI)
	register("uri-reference", isURIReference)
	register("iri", isURI)
	register("iri-reference", isURIReference)
	register("uri-template", isURITemplate)
}

func isURI(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && u.IsAbs()
}

func isURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}

// isURITemplate performs a light structural check (balanced braces) since
// full RFC 6570 validation is out of scope for format assertion purposes.
func isURITemplate(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
