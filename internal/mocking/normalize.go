package mocking

import perr "ghappkit/internal/platform/errors"

// Args is a call's arguments regrouped into the declared shape: the fixed parameters,
// then the elements of the trailing variadic parameter, if any
type Args struct {
	Fixed []any
	Rest  []any
}

// Expand flattens a variadic call into the argument list proxies pass to Invoke
func Expand[T any](fixed []any, rest []T) []any {
	out := make([]any, 0, len(fixed)+len(rest))
	out = append(out, fixed...)
	for _, r := range rest {
		out = append(out, r)
	}
	return out
}

// Normalize reverses Expand for m: positions at or past the variadic parameter are packed
// back into Rest; fixed-arity methods pass through untouched
func Normalize(m Method, flat []any) (Args, error) {
	if !m.Variadic {
		if len(flat) != m.Params {
			return Args{}, perr.InvalidArgf("%s takes %d argument(s), got %d", m.Name, m.Params, len(flat))
		}
		return Args{Fixed: flat}, nil
	}
	n := m.Params - 1
	if n < 0 || len(flat) < n {
		return Args{}, perr.InvalidArgf("%s takes at least %d argument(s), got %d", m.Name, max(n, 0), len(flat))
	}
	rest := make([]any, len(flat)-n)
	copy(rest, flat[n:])
	return Args{Fixed: flat[:n:n], Rest: rest}, nil
}

// Arg returns fixed argument i as a T, the zero value when absent or of another type
func Arg[T any](a Args, i int) T {
	if i >= len(a.Fixed) {
		var zero T
		return zero
	}
	v, _ := a.Fixed[i].(T)
	return v
}

// Seq converts the variadic elements to a []T of the same length
func Seq[T any](rest []any) []T {
	out := make([]T, len(rest))
	for i, v := range rest {
		out[i], _ = v.(T)
	}
	return out
}
