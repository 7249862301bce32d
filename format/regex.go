package format

import "regexp"

// compilesAsRegex reports whether s compiles as a Go-flavored regular
// expression, used as a practical stand-in for ECMA-262 syntax checking.
func compilesAsRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}
