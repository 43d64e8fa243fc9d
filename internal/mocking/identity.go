package mocking

import "fmt"

// Identity keys one domain object within a session
type Identity struct {
	Type string
	ID   int64
}

// String renders the mock name, e.g. GHIssue#750705278
func (i Identity) String() string { return fmt.Sprintf("%s#%d", i.Type, i.ID) }

// Method describes one interceptable method
// Params counts declared parameters excluding context.Context; when Variadic is set the
// last of them is the variable-length one
type Method struct {
	Name     string
	Params   int
	Variadic bool
}

// Catalog adapts the mocking engine to a closed set of domain types
type Catalog interface {
	// Identify reports the identity of a real domain value; ok is false for plain values
	Identify(v any) (Identity, bool)
	// View returns the typed proxy for h, satisfying the same interface as h's real object
	View(h *Handle) any
	// Methods lists the interceptable methods of a type, nil when the type is unknown
	Methods(typ string) []Method
}

// Proxy is implemented by every typed proxy (and by *Handle itself)
type Proxy interface {
	MockHandle() *Handle
}
