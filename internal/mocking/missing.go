package mocking

import (
	"errors"
	"strings"

	perr "ghappkit/internal/platform/errors"
)

// ErrMissingBehavior matches every *MissingBehaviorError with errors.Is
var ErrMissingBehavior = errors.New("mocked behavior is missing")

// MissingBehaviorError is raised while executing when a call has no stub and no fallback
type MissingBehaviorError struct {
	Target Identity
	Method string
	Args   []any

	transport bool
	cause     error
}

// Call renders the offending call, e.g. GHIssue#750705278.Comments();
func (e *MissingBehaviorError) Call() string {
	return renderCall(e.Target.String(), e.Method, e.Args, false)
}

func (e *MissingBehaviorError) Error() string {
	on := strings.Join(append([]string{`"` + e.Method + `"`}, renderArgs(e.Args)...), ", ")
	var b strings.Builder
	b.WriteString("Mocked behavior is missing for ")
	b.WriteString(e.Call())
	b.WriteString(". Use the following syntax to mock the behavior of GitHub objects:\n")
	b.WriteString("    Given().\n")
	b.WriteString("        GitHub(func(mocks *apptest.Mocks) {\n")
	b.WriteString("            mocks.GHObject(\"" + e.Target.Type + "\", <the ID of the GHObject>).On(" + on + ").\n")
	b.WriteString("                Return([...])\n")
	b.WriteString("        }).\n")
	b.WriteString("        When(). [...]")
	return b.String()
}

// Unwrap returns the nested missing behavior this one was attributed from, if any
func (e *MissingBehaviorError) Unwrap() error { return e.cause }

// Is reports ErrMissingBehavior
func (e *MissingBehaviorError) Is(target error) bool { return target == ErrMissingBehavior }

// Code implements perr.Coded
func (e *MissingBehaviorError) Code() perr.ErrorCode { return perr.ErrorCodeMissingBehavior }
