package format

import (
	"strings"

	"golang.org/x/net/idna"
)

func init() {
	register("hostname", isHostname)
	register("idn-hostname", isIDNHostname)
}

func isHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	labels := strings.Split(strings.TrimSuffix(s, "."), ".")
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}
	return true
}

func isValidLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		if !(r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// isIDNHostname accepts internationalized hostnames by round-tripping
// through Punycode before applying the same label rules.
func isIDNHostname(s string) bool {
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return false
	}
	return isHostname(ascii)
}
