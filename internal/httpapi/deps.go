package httpapi

import (
	"context"
	"sync/atomic"

	"golang.org/x/time/rate"

	"marches-engine/internal/config"
	"marches-engine/internal/events"
	"marches-engine/internal/theme"
	"marches-engine/internal/viewed"
)

type Deps struct {
	KV theme.KV

	Hub    *events.Hub
	Viewed *viewed.Store

	// Atomic stores
	CfgVal        *atomic.Value // stores config.Config
	FeedVal       *atomic.Value // stores feed.Snapshot
	RefreshStatus *atomic.Value // stores refresh.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Manual refresh entrypoint (inject for testability)
	RunRefresh   func(ctx context.Context) error
	RefreshLimit *rate.Limiter
}
