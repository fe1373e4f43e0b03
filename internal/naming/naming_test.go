package naming_test

import (
	"strings"
	"testing"

	"github.com/make87/rosrpc/internal/naming"
	"github.com/stretchr/testify/suite"
)

type NamingSuite struct {
	suite.Suite
}

func (suite *NamingSuite) TestSanitize() {
	r := suite.Require()
	r.Equal("", naming.Sanitize(""))
	r.Equal("abc", naming.Sanitize("abc"))
	r.Equal("ABC_123", naming.Sanitize("ABC_123"))
	r.Equal("a_b", naming.Sanitize("a.b"))
	r.Equal("a_b", naming.Sanitize("a-b"))
	r.Equal("my_key_", naming.Sanitize("my key!"))
	r.Equal("camera_left_image_raw", naming.Sanitize("camera/left image_raw"))
	r.Equal("____", naming.Sanitize(" .-/"))

	// Each byte of a multi-byte rune becomes its own underscore so the
	// sanitized text stays the same byte length as the input.
	r.Equal("h__llo", naming.Sanitize("héllo"))
	r.Equal(len("🍺"), len(naming.Sanitize("🍺")))
}

func (suite *NamingSuite) TestChecksum() {
	r := suite.Require()
	r.Equal(uint64(0), naming.Checksum(""))
	r.Equal(uint64(96354), naming.Checksum("abc"))
	r.Equal(uint64(2029351), naming.Checksum("A_1z"))
	r.Equal(uint64(234868954), naming.Checksum("my key!"))
	r.Equal(uint64(162660204), naming.Checksum("héllo"))

	// The hash covers the original bytes, so keys that sanitize to the same
	// string still hash apart.
	r.Equal(uint64(94741), naming.Checksum("a.b"))
	r.Equal(uint64(94710), naming.Checksum("a-b"))
	r.NotEqual(naming.Checksum("a.b"), naming.Checksum("a-b"))
}

func (suite *NamingSuite) TestServiceToken() {
	r := suite.Require()
	r.Equal("ros2_0", naming.ServiceToken(""))
	r.Equal("ros2_abc96354", naming.ServiceToken("abc"))
	r.Equal("ros2_my_key_234868954", naming.ServiceToken("my key!"))
	r.Equal("ros2_a_b94741", naming.ServiceToken("a.b"))
	r.Equal("ros2_a_b94710", naming.ServiceToken("a-b"))
	r.NotEqual(naming.ServiceToken("a.b"), naming.ServiceToken("a-b"))
}

// Tokens are a pure function of the input. Two calls, same answer.
func (suite *NamingSuite) TestServiceToken_deterministic() {
	r := suite.Require()
	for _, input := range []string{"", "abc", "my key!", "héllo", strings.Repeat("z", 1000)} {
		r.Equal(naming.ServiceToken(input), naming.ServiceToken(input))
	}
}

// Everything between the prefix and the trailing digits must stay inside
// [A-Za-z0-9_], no matter what garbage comes in.
func (suite *NamingSuite) TestServiceToken_characterSet() {
	r := suite.Require()
	inputs := []string{"", "abc", "my key!", "a/b.c-d e", "héllo wörld", "\x00\x01\xff", "🍺🍺🍺"}
	for _, input := range inputs {
		token := naming.ServiceToken(input)
		r.True(strings.HasPrefix(token, "ros2_"), "token %q missing prefix", token)
		for _, c := range token[len("ros2_"):] {
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
			r.True(valid, "token %q contains invalid character %q", token, c)
		}
	}
}

func (suite *NamingSuite) TestServiceToken_lengthBound() {
	r := suite.Require()

	// Short inputs come through whole.
	r.LessOrEqual(len(naming.ServiceToken("short")), 256)

	// Long inputs get their middle truncated, never the prefix or checksum.
	long := strings.Repeat("x", 300)
	token := naming.ServiceToken(long)
	r.Equal(256, len(token))
	r.True(strings.HasPrefix(token, "ros2_xxx"))
	r.True(strings.HasSuffix(token, "631856739"), "checksum must survive truncation, got %q", token)

	// Exactly at the boundary: prefix(5) + sanitized + checksum fills 256.
	nearLimit := strings.Repeat("y", 256-len("ros2_")-len("631856739"))
	r.LessOrEqual(len(naming.ServiceToken(nearLimit)), 256)

	// Absurdly long input still lands exactly on the cap.
	r.Equal(256, len(naming.ServiceToken(strings.Repeat("q", 100000))))
}

func (suite *NamingSuite) TestLeadingSlash() {
	r := suite.Require()
	r.Equal("/", naming.LeadingSlash(""))
	r.Equal("/", naming.LeadingSlash("/"))
	r.Equal("/foo", naming.LeadingSlash("foo"))
	r.Equal("/foo/bar", naming.LeadingSlash("foo/bar"))
	r.Equal("//foo", naming.LeadingSlash("//foo"))
}

func (suite *NamingSuite) TestJoinPath() {
	r := suite.Require()
	r.Equal("/", naming.JoinPath("", ""))
	r.Equal("/foo", naming.JoinPath("", "foo"))
	r.Equal("/foo", naming.JoinPath("", "/foo"))
	r.Equal("/v2/foo", naming.JoinPath("v2", "foo"))
	r.Equal("/v2/foo", naming.JoinPath("/v2/", "/foo/"))
	r.Equal("/v2/foo.Bar", naming.JoinPath("v2", "foo.Bar"))
}

func TestNamingSuite(t *testing.T) {
	suite.Run(t, new(NamingSuite))
}
