// Package endpoints resolves logical endpoint names to concrete service
// identifiers. Deployments describe their wiring in the ENDPOINTS environment
// variable as a JSON directory; this package parses that directory, finds the
// entry for a logical name, and runs its key through the naming layer to get
// the actual service token to dial.
package endpoints

import (
	"encoding/json"

	"github.com/make87/rosrpc/internal/naming"
)

// Directory is the parsed form of an ENDPOINTS document: an ordered list of
// endpoint entries. It only lives for the duration of a resolution; nothing
// here is cached or persisted.
type Directory struct {
	// Endpoints lists the entries in document order. Order matters: when two
	// entries share a name, the earlier one wins.
	Endpoints []Endpoint `json:"endpoints"`
}

// Endpoint maps a single logical endpoint name to the raw key that becomes the
// service token.
type Endpoint struct {
	// Name is the logical name that callers resolve by.
	Name StringValue `json:"endpoint_name"`
	// Key is the raw key fed through naming.ServiceToken when this entry wins.
	Key StringValue `json:"endpoint_key"`
}

// UnmarshalJSON decodes a single directory entry, absorbing array elements
// that aren't objects at all (a stray number or string in the endpoints list
// becomes an entry that can never match, and the scan moves on).
func (e *Endpoint) UnmarshalJSON(data []byte) error {
	type endpointFields Endpoint
	fields := endpointFields{}
	if err := json.Unmarshal(data, &fields); err != nil {
		*e = Endpoint{}
		return nil
	}
	*e = Endpoint(fields)
	return nil
}

// ParseDirectory decodes an ENDPOINTS JSON document. Unknown fields anywhere
// in the document are ignored; wrong-typed endpoint_name/endpoint_key values
// and non-object array elements spoil only their own entry, not the parse.
func ParseDirectory(text string) (Directory, error) {
	directory := Directory{}
	err := json.Unmarshal([]byte(text), &directory)
	return directory, err
}

// Resolve scans the directory in order for the first entry whose name equals
// searchName exactly (case matters) and whose key is an actual string. The
// winner's key comes back as a sanitized service token. The boolean reports
// whether any entry qualified.
func (dir Directory) Resolve(searchName string) (string, bool) {
	for _, endpoint := range dir.Endpoints {
		if !endpoint.Name.Equals(searchName) {
			continue
		}
		if !endpoint.Key.Valid {
			continue
		}
		return naming.ServiceToken(endpoint.Key.Value), true
	}
	return "", false
}

// StringValue is a JSON string field that shrugs off wrong-typed values.
// A directory entry whose endpoint_key is, say, a number shouldn't torpedo
// the whole document; it just can't win a resolution.
type StringValue struct {
	// Value is the decoded string when Valid is true.
	Value string
	// Valid reports whether the JSON value was really a string.
	Valid bool
}

// String builds a valid StringValue. Mostly useful for assembling directories
// in code rather than from JSON.
func String(value string) StringValue {
	return StringValue{Value: value, Valid: true}
}

// Equals reports whether this is a valid string equal to 'other'. Wrong-typed
// and missing values never equal anything, not even "".
func (v StringValue) Equals(other string) bool {
	return v.Valid && v.Value == other
}

// UnmarshalJSON decodes a string value, marking the field invalid (without
// failing) when the JSON holds any other type.
func (v *StringValue) UnmarshalJSON(data []byte) error {
	value := ""
	if err := json.Unmarshal(data, &value); err != nil {
		*v = StringValue{}
		return nil
	}
	*v = StringValue{Value: value, Valid: true}
	return nil
}

// MarshalJSON encodes valid values as JSON strings and invalid ones as null.
func (v StringValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}
