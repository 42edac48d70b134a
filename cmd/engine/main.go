package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"marches-engine/internal/config"
	"marches-engine/internal/events"
	"marches-engine/internal/feed"
	"marches-engine/internal/httpapi"
	"marches-engine/internal/refresh"
	"marches-engine/internal/scheduler"
	"marches-engine/internal/secrets"
	"marches-engine/internal/store"
	"marches-engine/internal/viewed"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one),
	// else local folder.
	dataDir := os.Getenv("MARCHES_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would race the kv store.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance already runs against %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config invalid (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "marches.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	kv := store.KV{DB: db.Pool}
	vset := viewed.New(kv)
	vset.Load(context.Background())
	log.Printf("level=info msg=\"viewed set loaded\" ids=%d", vset.Len())

	hub := events.NewHub()

	var feedVal atomic.Value // stores feed.Snapshot
	var refreshStatus atomic.Value
	refreshStatus.Store(refresh.Status{})

	// Initial load. A fetch or decode fault is logged once and exposed via
	// /meta; the engine stays up with an empty collection so the filter
	// controls keep working.
	token, err := secrets.GetFeedToken(cfg.Feed.KeyringAccount)
	if err != nil {
		log.Printf("level=warn msg=\"feed token lookup failed, fetching without auth\" err=%v", err)
		token = ""
	}
	loadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	f, err := feed.Load(loadCtx, cfg.Feed.Location, token)
	cancel()
	if err != nil {
		log.Printf("level=error msg=\"initial feed load failed\" err=%v", err)
		feedVal.Store(feed.Snapshot{LoadedAt: time.Now(), Err: err.Error()})
	} else {
		log.Printf("level=info msg=\"feed loaded\" notices=%d generated_at=%s", len(f.Notices), f.GeneratedAt)
		feedVal.Store(feed.Snapshot{Feed: f, LoadedAt: time.Now()})
	}

	ref := &refresh.Refresher{
		CfgVal:  &cfgVal,
		FeedVal: &feedVal,
		Status:  &refreshStatus,
		Hub:     hub,
	}

	mux := httpapi.NewMux(httpapi.Deps{
		KV:            kv,
		Hub:           hub,
		Viewed:        vset,
		CfgVal:        &cfgVal,
		FeedVal:       &feedVal,
		RefreshStatus: &refreshStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		RunRefresh:    ref.Run,
		RefreshLimit:  rate.NewLimiter(rate.Every(30*time.Second), 1),
	})

	shutdownToken, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&shutdownToken, srv))

	// The UI shell reads the token to stop the engine cleanly on exit.
	tokenPath := filepath.Join(dataDir, "shutdown.token")
	if err := os.WriteFile(tokenPath, []byte(shutdownToken), 0o600); err != nil {
		log.Printf("level=warn msg=\"shutdown token write failed\" err=%v", err)
	}

	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s", addr, dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.Feed.RefreshSeconds > 0 {
		interval := time.Duration(cfg.Feed.RefreshSeconds) * time.Second
		g.Go(func() error {
			scheduler.Every(ctx, interval, "feed_refresh", ref.Run)
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
