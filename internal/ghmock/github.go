package ghmock

import (
	"context"

	"ghappkit/internal/gh"
	"ghappkit/internal/mocking"
)

// GitHub is the proxy for the API transport every real object talks through. Without a
// bound client and without stubs, any request is missing behavior, which the engine
// attributes to the domain call that issued it
type GitHub struct{ *mocking.Handle }

var _ gh.Requester = GitHub{}

// Request intercepts one REST call
func (p GitHub) Request(ctx context.Context, method, path string, body any) ([]byte, error) {
	return mocking.Result[[]byte](p.Invoke(mRequest, []any{method, path, body}, func(a mocking.Args) (any, error) {
		rq, ok := p.Real().(gh.Requester)
		if !ok {
			return nil, nil
		}
		return rq.Request(ctx, mocking.Arg[string](a, 0), mocking.Arg[string](a, 1), a.Fixed[2])
	}))
}

// Transport resolves the transport proxy of an installation
func Transport(s *mocking.Session, installationID int64) GitHub {
	return GitHub{s.Transport(gh.TypeGitHub, installationID)}
}

// Object resolves the registered proxy for (typ, id), typed as T
// It panics when T does not match typ, which is a test wiring mistake
func Object[T any](s *mocking.Session, typ string, id int64) T {
	v, ok := s.View(s.Resolve(typ, id)).(T)
	if !ok {
		panic("ghmock: " + typ + " proxy does not implement the requested type")
	}
	return v
}
