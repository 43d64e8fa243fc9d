// Package modkit provides building blocks for modular Go applications
package modkit

import (
	"testing"

	phttp "ghappkit/internal/platform/net/http"
)

// stub module that satisfies Module and records calls
type stub struct {
	name    string
	mounted *[]string
}

func (s *stub) MountRoutes(_ phttp.Router) { *s.mounted = append(*s.mounted, s.name) }
func (s *stub) Name() string               { return s.name }

// compile-time assertion: stub implements Module
var _ Module = (*stub)(nil)

func TestMountAll_InOrder(t *testing.T) {
	t.Parallel()

	var mounted []string
	a := &stub{name: "meta", mounted: &mounted}
	b := &stub{name: "webhook", mounted: &mounted}

	// typed nil router is fine; just validate call flow
	MountAll(nil, a, b)

	if len(mounted) != 2 || mounted[0] != "meta" || mounted[1] != "webhook" {
		t.Fatalf("unexpected mount order: %v", mounted)
	}
}

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var mounted []string
	// A minimal Builder that ignores deps/options and returns a stub
	var b Builder = func(_ Deps, _ ...Option) Module {
		return &stub{name: "ok", mounted: &mounted}
	}

	m := b(Deps{})
	if m == nil {
		t.Fatal("builder returned nil module")
	}
	if m.Name() != "ok" {
		t.Fatalf("unexpected Name from built module: got=%v want=ok", m.Name())
	}
}
