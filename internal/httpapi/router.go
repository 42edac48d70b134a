package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Notices
	nh := NoticesHandler{FeedVal: d.FeedVal, Viewed: d.Viewed, Hub: d.Hub}
	mux.HandleFunc("/notices", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: nh.List,
	}))
	mux.HandleFunc("/notices/viewed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: nh.MarkViewed,
	}))
	mux.HandleFunc("/filters", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: nh.Filters,
	}))
	mux.HandleFunc("/meta", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: nh.Meta,
	}))

	// Theme
	th := ThemeHandler{KV: d.KV}
	mux.HandleFunc("/theme", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.Get,
		http.MethodPut: th.Put,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/feed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetFeedToken,
	}))

	// Refresh
	rh := RefreshHandler{Status: d.RefreshStatus, Run: d.RunRefresh, Limiter: d.RefreshLimit}
	mux.HandleFunc("/refresh/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.GetStatus,
	}))
	mux.HandleFunc("/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Trigger,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
