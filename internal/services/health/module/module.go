// Package module wires the health endpoints into the server using a tiny module
package module

import (
	"time"

	"ghappkit/internal/core/version"
	modkit "ghappkit/internal/modkit"
	phttp "ghappkit/internal/platform/net/http"
	str "ghappkit/internal/platform/strings"

	healthhttp "ghappkit/internal/services/health/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	startedAt time.Time
}

// New constructs a health module; probe may be nil
func New(deps modkit.Deps, probe healthhttp.Prober, opts ...modkit.Option) modkit.Module {
	m := &Module{startedAt: time.Now()}

	opts = append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)
	b := modkit.Build(opts...)
	external := b.Register
	b.Register = func(r phttp.Router) {
		healthhttp.Register(r, healthhttp.Deps{
			ServiceName:  version.Service,
			StartedAt:    m.startedAt,
			Probe:        probe,
			ProbeTimeout: deps.Cfg.MayDuration("PROBE_TIMEOUT", 2*time.Second),
		})
		external(r)
	}
	m.b = b
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) { modkit.Mount(r, m.b) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }
