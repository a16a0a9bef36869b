// Package trace provides lazily-evaluated debug formatting for the
// connection pipeline's frame send and receive logging.
//
// Tracing is off by default; enabling it costs an extra branch per call site
// and nothing else, since the actual formatting is deferred to a Formatter
// that is only invoked if something downstream asks for its string form.
package trace

import "fmt"

// Enabled turns on verbose tracing across the module. It is a package
// variable rather than a build tag so that tests can flip it on for a single
// case without a separate build.
var Enabled = false

// Formatter is a fmt.Formatter that defers its work to a closure, so that
// Fprintf-style calls on hot paths don't pay for formatting unless something
// actually consumes the result.
type Formatter func(s fmt.State)

// Format implements fmt.Formatter.
func (f Formatter) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprintf(s, "%%%c(trace.Formatter)", verb)
		return
	}
	f(s)
}

func (f Formatter) String() string { return fmt.Sprint(f) }

// Lazy delays evaluation of a Printf-style call until it is formatted.
func Lazy(format string, args ...any) Formatter {
	return Formatter(func(s fmt.State) { fmt.Fprintf(s, format, args...) })
}

// Dict pretty-prints key/value pairs, skipping nil values. Used to render
// sent and received frames in trace logs.
func Dict(prefix any, kv ...any) Formatter {
	return Formatter(func(s fmt.State) {
		if len(kv)%2 != 0 {
			panic("trace: length must be divisible by 2")
		}
		if prefix == nil {
			prefix = ""
		}
		fmt.Fprintf(s, "%v{", prefix)
		first := true
		for i := range len(kv) / 2 {
			k, v := kv[2*i], kv[2*i+1]
			if v == nil {
				continue
			}
			if !first {
				fmt.Fprint(s, ", ")
			}
			first = false
			fmt.Fprintf(s, "%v: %v", k, v)
		}
		fmt.Fprint(s, "}")
	})
}
