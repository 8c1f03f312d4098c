package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	adapthttp "weightgoal/internal/adapter/http"
	"weightgoal/internal/adapter/memory"
	"weightgoal/internal/adapter/postgres"
	"weightgoal/internal/app"
	"weightgoal/internal/config"
	"weightgoal/internal/domain"
	"weightgoal/internal/metrics"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type stores struct {
	weights  domain.WeightRepository
	goals    domain.GoalRepository
	users    domain.UserRepository
	sessions domain.SessionRepository
	close    func() error
}

func main() {
	configPath := flag.String("config", env("WEIGHTGOAL_CONFIG", "weightgoal.toml"), "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	setupLogging(cfg)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st, err := openStores(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = st.close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mm := metrics.NewManager("weightgoal", "server", reg)

	weightSvc := app.NewWeightService(st.weights, st.goals)
	dashSvc, err := app.NewDashboardService(st.weights, st.goals, nil)
	if err != nil {
		log.Fatalf("dashboard: %v", err)
	}
	authSvc := app.NewAuthService(st.users, st.sessions).WithSessionTTL(cfg.SessionTTL.Duration)

	srv := adapthttp.New(weightSvc, dashSvc, authSvc, cfg.WebDir).
		WithLocation(loc).
		WithMetrics(mm, reg)
	if cfg.DisableAuth {
		log.Warn("authentication disabled")
		srv.WithoutAuth()
	}
	if cfg.TrustForwardAuth {
		srv.WithForwardAuth()
	}
	if cfg.OIDC.Enabled() {
		oc, err := setupOIDC(cfg.OIDC)
		if err != nil {
			log.Fatalf("oidc: %v", err)
		}
		srv.WithOIDC(oc)
		log.WithField("issuer", cfg.OIDC.Issuer).Info("sso enabled")
	}

	go purgeSessions(authSvc, time.Hour)

	log.WithFields(log.Fields{"addr": cfg.Addr, "timezone": loc.String()}).Info("listening")
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStores(connStr string) (*stores, error) {
	if connStr == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		db := memory.New()
		return &stores{weights: db, goals: db, users: db, sessions: db.NewSessionRepo(), close: func() error { return nil }}, nil
	}
	db, err := postgres.Open(connStr)
	if err != nil {
		return nil, err
	}
	return &stores{weights: db, goals: db, users: db, sessions: postgres.NewSessionRepo(db), close: db.Close}, nil
}

func setupLogging(cfg config.Config) {
	if cfg.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.LogLevel)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func setupOIDC(c config.OIDCConfig) (adapthttp.OIDCConfig, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	provider, err := oidc.NewProvider(ctx, c.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func purgeSessions(auth *app.AuthService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		if err := auth.PurgeExpired(context.Background()); err != nil {
			log.WithError(err).Warn("purge expired sessions")
		}
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
