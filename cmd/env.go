package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/assist"
	"github.com/abhisek/prism/internal/config"
	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/llm"
	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/metrics"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/session"
	"github.com/abhisek/prism/internal/store"
	"github.com/abhisek/prism/internal/taxonomy"
)

// env is what every command builds from configuration: settings, logger,
// local store and metrics, plus lazily created API clients.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	store   *store.Store
	metrics *metrics.Metrics
	gw      *gateway.Client
	closers []func()
}

// setup loads configuration and opens the store. Interactive runs log to a
// file because the TUI owns the terminal.
func setup(cmd *cobra.Command, interactive bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logger(interactive))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st, metrics: metrics.New()}
	e.closers = append(e.closers, func() { st.Close() }, func() { logger.Sync(log) })
	return e, nil
}

// Close releases everything setup and the client builders opened, in
// reverse order.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key, then PRISM_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func (e *env) auth(ctx context.Context) (*session.Auth, error) {
	a := session.NewAuth(e.store.SessionRepo())
	if err := a.Init(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// gateway returns the shared PRISM API client.
func (e *env) gateway() (*gateway.Client, error) {
	if e.gw != nil {
		return e.gw, nil
	}
	gw, err := gateway.New(e.cfg.Gateway(),
		gateway.WithLogger(e.log),
		gateway.WithMetrics(e.metrics),
		gateway.WithEventRepo(e.store.EventRepo()),
	)
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}
	e.gw = gw
	return gw, nil
}

// taxonomy wraps the gateway in the caching client. A configured and
// reachable Redis becomes the shared cache; otherwise the cache is in-process.
func (e *env) taxonomy(ctx context.Context) (*taxonomy.Client, error) {
	gw, err := e.gateway()
	if err != nil {
		return nil, err
	}
	tc := e.cfg.TaxonomyClient()
	var cache taxonomy.Cache
	if rc := e.cfg.Taxonomy.Redis; rc.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			e.log.Warn("redis unavailable, using in-process taxonomy cache", map[string]any{
				"addr":  rc.Addr,
				"error": err.Error(),
			})
			client.Close()
		} else {
			cache = taxonomy.NewRedisCache(client, rc.Prefix, tc.TTL, e.log)
			e.closers = append(e.closers, func() { client.Close() })
		}
	}
	return taxonomy.NewClient(gw, cache, tc, e.log).WithMetrics(e.metrics), nil
}

// generators picks the objective and list generators: the local assist
// service when assist.mode is local or forced, otherwise the API.
func (e *env) generators(ctx context.Context, forceLocal bool) (objectives.Generator, lists.Generator, error) {
	if forceLocal || e.cfg.Assist.Mode == config.AssistLocal {
		svc := assist.NewService(e.provider(ctx), assist.DefaultConfig(), e.log)
		return svc, svc, nil
	}
	gw, err := e.gateway()
	if err != nil {
		return nil, nil, err
	}
	return gw, gw, nil
}

// provider builds the LLM provider from the environment. Without one the
// assist service serves its deterministic defaults.
func (e *env) provider(ctx context.Context) llm.Provider {
	p, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), llm.Deps{
		Events:  e.store.EventRepo(),
		Log:     e.log,
		Metrics: e.metrics,
	})
	if err != nil {
		e.log.Warn("LLM provider not configured, local assist will use defaults", map[string]any{"error": err.Error()})
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		return nil
	}
	return p
}
