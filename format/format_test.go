package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryIsolatedPerCopy(t *testing.T) {
	r1 := New()
	r2 := New()
	r1["custom"] = func(s string) bool { return true }
	_, ok := r2["custom"]
	assert.False(t, ok)
}

func TestEmail(t *testing.T) {
	assert.True(t, isEmail("a@b.com"))
	assert.False(t, isEmail("not-an-email"))
	assert.False(t, isEmail("a b@c.com"))
}

func TestIDNEmail(t *testing.T) {
	assert.True(t, isIDNEmail("a@xn--nxasmq6b.com"))
	assert.False(t, isIDNEmail("no-at-sign"))
	assert.False(t, isIDNEmail("@missing-local.com"))
}

func TestHostname(t *testing.T) {
	assert.True(t, isHostname("example.com"))
	assert.True(t, isHostname("a.b.c"))
	assert.False(t, isHostname(""))
	assert.False(t, isHostname("-bad.com"))
	assert.False(t, isHostname("bad-.com"))
}

func TestIDNHostname(t *testing.T) {
	assert.True(t, isIDNHostname("example.com"))
	assert.True(t, isIDNHostname("日本語.jp"))
}

func TestIPv4(t *testing.T) {
	assert.True(t, isIPv4("192.168.1.1"))
	assert.False(t, isIPv4("::1"))
	assert.False(t, isIPv4("not-an-ip"))
}

func TestIPv6(t *testing.T) {
	assert.True(t, isIPv6("::1"))
	assert.True(t, isIPv6("2001:db8::1"))
	assert.False(t, isIPv6("192.168.1.1"))
}

func TestURI(t *testing.T) {
	assert.True(t, isURI("https://example.com/path"))
	assert.False(t, isURI("/relative/path"))
	assert.False(t, isURI("not a uri"))
}

func TestURIReference(t *testing.T) {
	assert.True(t, isURIReference("https://example.com/path"))
	assert.True(t, isURIReference("/relative/path"))
}

func TestURITemplate(t *testing.T) {
	assert.True(t, isURITemplate("/users/{id}"))
	assert.True(t, isURITemplate("/plain/path"))
	assert.False(t, isURITemplate("/users/{id"))
	assert.False(t, isURITemplate("/users/id}"))
}

func TestJSONPointer(t *testing.T) {
	assert.True(t, isJSONPointer(""))
	assert.True(t, isJSONPointer("/a/b"))
	assert.True(t, isJSONPointer("/a~0b/c~1d"))
	assert.False(t, isJSONPointer("a/b"))
	assert.False(t, isJSONPointer("/a~2b"))
}

func TestRelativeJSONPointer(t *testing.T) {
	assert.True(t, isRelativeJSONPointer("0"))
	assert.True(t, isRelativeJSONPointer("1/a/b"))
	assert.True(t, isRelativeJSONPointer("2#"))
	assert.False(t, isRelativeJSONPointer("/a/b"))
	assert.False(t, isRelativeJSONPointer(""))
}

func TestRegex(t *testing.T) {
	assert.True(t, isRegex("^[a-z]+$"))
	assert.False(t, isRegex("(unterminated"))
}

func TestDateTime(t *testing.T) {
	assert.True(t, isDateTime("2018-11-13T20:20:39Z"))
	assert.True(t, isDateTime("2018-11-13T20:20:39.123Z"))
	assert.False(t, isDateTime("2018-11-13"))
}

func TestDate(t *testing.T) {
	assert.True(t, isDate("2018-11-13"))
	assert.False(t, isDate("2018-11-13T20:20:39Z"))
}

func TestTime(t *testing.T) {
	assert.True(t, isTime("20:20:39Z"))
	assert.True(t, isTime("20:20:39.123Z"))
	assert.False(t, isTime("2018-11-13"))
}
