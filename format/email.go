package format

import (
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
)

func init() {
	register("email", isEmail)
	register("idn-email", isIDNEmail)
}

func isEmail(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func isIDNEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if _, err := idna.Lookup.ToASCII(domain); err != nil {
		return false
	}
	return true
}
