// Package naming generates the sanitized service identifiers we feed to the RPC
// layer. ROS-style service names only tolerate a narrow character set, so
// arbitrary endpoint keys (which can contain spaces, dots, unicode, whatever)
// need to be scrubbed before they're usable. Since scrubbing is lossy ("a.b" and
// "a-b" both scrub to "a_b"), every token also carries a checksum of the
// original bytes so distinct keys still map to distinct services.
package naming

import (
	"strconv"
	"strings"
)

// TokenPrefix is the fixed tag at the front of every service token so that
// resolved services are recognizable in service listings.
const TokenPrefix = "ros2_"

// MaxTokenLength is the longest service token we will ever produce. Tokens over
// this length have their sanitized middle truncated; the prefix and checksum
// always survive intact.
const MaxTokenLength = 256

// checksumModulus keeps the rolling checksum inside 31 bits so the running
// uint64 product never overflows.
const checksumModulus = 1000000007

// ServiceToken converts an arbitrary endpoint key into a deterministic service
// identifier: TokenPrefix + sanitized key + decimal checksum of the raw bytes,
// capped at MaxTokenLength. It is a total function; any string goes in, a
// valid token comes out.
func ServiceToken(input string) string {
	sanitized := Sanitize(input)
	checksum := strconv.FormatUint(Checksum(input), 10)

	budget := MaxTokenLength - len(TokenPrefix) - len(checksum)
	if budget < 0 {
		budget = 0
	}
	if len(sanitized) > budget {
		sanitized = sanitized[:budget]
	}
	return TokenPrefix + sanitized + checksum
}

// Sanitize maps every byte outside [A-Za-z0-9_] to an underscore. The result
// is always the same length as the input; multi-byte runes become one
// underscore per byte so the sanitized text lines up with the raw byte stream
// that the checksum covers.
func Sanitize(value string) string {
	if value == "" {
		return ""
	}
	result := strings.Builder{}
	result.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z':
			result.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			result.WriteByte(c)
		case c >= '0' && c <= '9':
			result.WriteByte(c)
		case c == '_':
			result.WriteByte(c)
		default:
			result.WriteByte('_')
		}
	}
	return result.String()
}

// Checksum computes a polynomial rolling hash over the raw bytes of the input:
// sum = (sum*31 + byte) mod 1e9+7, starting from zero. The empty string hashes
// to 0. It runs over the ORIGINAL bytes, not the sanitized ones, so inputs
// that sanitize identically still checksum differently.
func Checksum(value string) uint64 {
	var sum uint64
	for i := 0; i < len(value); i++ {
		sum = (sum*31 + uint64(value[i])) % checksumModulus
	}
	return sum
}

// LeadingSlash adds... a leading slash to the given string.
func LeadingSlash(value string) string {
	if strings.HasPrefix(value, "/") {
		return value
	}
	return "/" + value
}

// JoinPath glues an optional prefix (e.g. "v2") onto an endpoint path, making
// sure there's exactly one slash at each seam and one at the front.
func JoinPath(prefix string, path string) string {
	prefix = strings.Trim(prefix, "/")
	path = strings.Trim(path, "/")
	if prefix == "" {
		return LeadingSlash(path)
	}
	return "/" + prefix + "/" + path
}
