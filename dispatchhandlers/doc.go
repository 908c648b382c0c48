// Package dispatchhandlers provides the collaborators the dispatch core
// expects around it: an outer error boundary, request identification,
// CORS and auth middleware, rate limiting, metrics, static file serving,
// and the network-listener layer.
//
// Two shapes are used, matching where each collaborator sits:
//
// Wrappers run outside the dispatcher and wrap it as an http.Handler.
// Recovery is the outer error boundary that converts panics escaping the
// pipeline into 500 responses; Metrics observes every request including
// 404s:
//
//	d := dispatch.New()
//	h := dispatchhandlers.Chain(d,
//	    dispatchhandlers.Recovery(dispatchhandlers.RecoveryConfig{}),
//	    dispatchhandlers.Metrics(dispatchhandlers.MetricsConfig{}),
//	)
//	http.ListenAndServe(":8080", h)
//
// Pipeline middleware runs inside the dispatcher and uses its
// continuation contract: returning false aborts the pipeline after
// writing a complete response (a CORS preflight reply, a 401, a 429):
//
//	cors, err := dispatchhandlers.CORS(dispatchhandlers.CORSConfig{
//	    AllowedOrigins: []string{"https://example.com"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d.Use(cors)
//
// # Rate Limiting
//
// Rate-limit state is an injected, explicitly-owned store rather than
// process-wide globals. The sweep task that evicts idle clients is
// bounded by a context:
//
//	store := dispatchhandlers.NewLimiterStore(rate.Limit(10), 20, time.Minute)
//	go store.Sweep(ctx, time.Minute)
//	d.Use(dispatchhandlers.RateLimit(store, nil))
//
// # Static Files
//
// StaticFiles returns a regular dispatch handler serving an fs.FS, so
// file serving participates in routing like any other handler:
//
//	files, err := dispatchhandlers.StaticFiles(dispatchhandlers.StaticFilesConfig{
//	    FS:     os.DirFS("public"),
//	    Prefix: "/static",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d.Get("/static/*", files)
//
// # Server
//
// Server owns the connection lifecycle: listening, optional concurrent
// connection caps, I/O timeouts, and graceful shutdown. The dispatcher
// itself carries no timeout or cancellation; they live here.
package dispatchhandlers
