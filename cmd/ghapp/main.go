// Command ghapp serves the triage GitHub app: webhook deliveries on /webhook,
// liveness, readiness and version on /meta, and optionally Swagger UI on /docs
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ghappkit/internal/adapters/github"
	"ghappkit/internal/app"
	"ghappkit/internal/core/version"
	modkit "ghappkit/internal/modkit"
	"ghappkit/internal/modkit/swaggerkit"
	"ghappkit/internal/platform/config"
	"ghappkit/internal/platform/logger"
	phttp "ghappkit/internal/platform/net/http"
	"ghappkit/internal/platform/net/middleware"

	healthmod "ghappkit/internal/services/health/module"
	triage "ghappkit/internal/services/triage/service"
	webhookmod "ghappkit/internal/services/webhook/module"

	"github.com/go-chi/chi/v5"
)

func main() {
	// service-scoped config (GHAPP_*)
	cfg := config.New().Prefix("GHAPP_")

	// bring up logging early
	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = version.Service
	}
	opt.StaticFields = map[string]string{"version": version.Info().Version}
	logger.Init(opt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := github.NewClient(github.Options{
		BaseURL:    cfg.MayURL("GITHUB_BASE_URL", ""),
		UserAgent:  "ghapp/" + version.Info().Version,
		Timeout:    cfg.MayDuration("GITHUB_TIMEOUT", 10*time.Second),
		TokensCSV:  strings.Join(cfg.MayCSV("GITHUB_TOKENS", nil), ","),
		MaxRetries: cfg.MayInt("GITHUB_MAX_RETRIES", 0),
	})
	if client.Tokens() == 0 {
		l.Warn().Msg("no GitHub tokens configured, API quota is very low")
	}

	apps := []*app.App{
		triage.New(triage.Config{ConfigFile: cfg.MayString("CONFIG_FILE", "triage.yml")}),
	}

	deps := modkit.Deps{Log: l, Cfg: cfg}
	srv := phttp.NewServer(cfg.MayPort("PORT", 4000), func(m *chi.Mux) {
		m.Use(middleware.Defaults()...)
	})
	swaggerkit.Mount(srv.Router(), cfg.MayBool("DOCS_ENABLED", false))
	modkit.MountAll(srv.Router(),
		healthmod.New(deps, github.NewProbe(client)),
		webhookmod.New(deps, cfg.MayString("WEBHOOK_SECRET", ""), client, apps),
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
