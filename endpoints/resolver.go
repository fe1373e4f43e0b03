package endpoints

import (
	"fmt"
	"io"
	"os"
)

// DefaultVariable is the environment variable that carries the endpoint
// directory in a standard deployment.
const DefaultVariable = "ENDPOINTS"

// NewResolver constructs an endpoint resolver. The zero-option resolver reads
// the ENDPOINTS variable from the process environment and writes diagnostics
// to stderr; tests typically swap both out via WithEnvironment/WithErrorStream
// so resolution runs without touching process state.
func NewResolver(options ...ResolverOption) Resolver {
	resolver := Resolver{
		Variable:    DefaultVariable,
		Environment: os.LookupEnv,
		Errors:      os.Stderr,
	}
	for _, option := range options {
		option(&resolver)
	}
	return resolver
}

// ResolverOption is a single configurable setting applied when building a
// resolver via NewResolver().
type ResolverOption func(*Resolver)

// WithVariable overrides which environment variable holds the directory JSON.
func WithVariable(name string) ResolverOption {
	return func(r *Resolver) {
		r.Variable = name
	}
}

// WithEnvironment overrides where the resolver reads its configuration from.
// The lookup has os.LookupEnv's shape: value plus a "was it set at all" flag.
func WithEnvironment(lookup func(name string) (string, bool)) ResolverOption {
	return func(r *Resolver) {
		r.Environment = lookup
	}
}

// WithErrorStream redirects the resolver's diagnostic lines.
func WithErrorStream(w io.Writer) ResolverOption {
	return func(r *Resolver) {
		r.Errors = w
	}
}

// Resolver turns logical endpoint names into service tokens using a directory
// read from the environment. Every failure mode collapses into "use the
// caller's default": a missing variable, unparseable JSON, or a directory with
// no qualifying entry all produce a diagnostic line and the fallback value,
// never an error. Resolver has no mutable state and is safe for concurrent use.
type Resolver struct {
	// Variable is the name of the environment variable holding the directory.
	Variable string
	// Environment looks configuration values up; os.LookupEnv in production.
	Environment func(name string) (string, bool)
	// Errors receives one human-readable line per failed resolution. The text
	// is for operators, not programs; don't parse it.
	Errors io.Writer
}

// Resolve maps searchName to a sanitized service token, or hands back
// defaultValue when it can't. It always returns a usable string.
func (r Resolver) Resolve(searchName string, defaultValue string) string {
	value, ok := r.Environment(r.Variable)
	if !ok {
		r.diagnose("environment variable %s not set, using default value", r.Variable)
		return defaultValue
	}

	directory, err := ParseDirectory(value)
	if err != nil {
		r.diagnose("error parsing %s: %v, using default value", r.Variable, err)
		return defaultValue
	}

	resolved, ok := directory.Resolve(searchName)
	if !ok {
		r.diagnose("endpoint %s not found or missing endpoint_key, using default value", searchName)
		return defaultValue
	}
	return resolved
}

func (r Resolver) diagnose(format string, args ...interface{}) {
	fmt.Fprintf(r.Errors, "[rosrpc] "+format+"\n", args...)
}

// Resolve looks searchName up using the process environment and stderr
// diagnostics. Shorthand for NewResolver().Resolve(...).
func Resolve(searchName string, defaultValue string) string {
	return NewResolver().Resolve(searchName, defaultValue)
}
