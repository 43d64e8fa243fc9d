package mocking

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/assert"
)

// Matcher decides whether one argument matches a stub or verification pattern
type Matcher interface {
	Matches(arg any) bool
	String() string
}

type eqMatcher struct{ want any }

func (m eqMatcher) Matches(arg any) bool { return assert.ObjectsAreEqual(m.want, arg) }
func (m eqMatcher) String() string       { return renderArg(m.want) }

// Eq matches arguments equal to v; plain values passed to On or Called are wrapped in Eq
func Eq(v any) Matcher { return eqMatcher{want: v} }

type anyMatcher struct{}

func (anyMatcher) Matches(any) bool { return true }
func (anyMatcher) String() string   { return "<any>" }

// Any matches every argument, nil included
func Any() Matcher { return anyMatcher{} }

type typeMatcher struct{ t reflect.Type }

func (m typeMatcher) Matches(arg any) bool {
	return arg != nil && reflect.TypeOf(arg).AssignableTo(m.t)
}
func (m typeMatcher) String() string { return fmt.Sprintf("<any %s>", m.t) }

// AnyOf matches any non-nil argument assignable to T
func AnyOf[T any]() Matcher { return typeMatcher{t: reflect.TypeFor[T]()} }

type funcMatcher[T any] struct {
	desc string
	fn   func(T) bool
}

func (m funcMatcher[T]) Matches(arg any) bool {
	v, ok := arg.(T)
	return ok && m.fn(v)
}
func (m funcMatcher[T]) String() string { return "<" + m.desc + ">" }

// MatchedBy matches arguments of type T accepted by fn; desc names it in failure messages
func MatchedBy[T any](desc string, fn func(T) bool) Matcher {
	return funcMatcher[T]{desc: desc, fn: fn}
}

func toMatchers(args []any) []Matcher {
	out := make([]Matcher, len(args))
	for i, a := range args {
		if m, ok := a.(Matcher); ok {
			out[i] = m
			continue
		}
		out[i] = Eq(a)
	}
	return out
}

func matchAll(ms []Matcher, args []any) bool {
	if len(ms) != len(args) {
		return false
	}
	for i, m := range ms {
		if !m.Matches(args[i]) {
			return false
		}
	}
	return true
}
