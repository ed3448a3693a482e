// Package http serves the sales dashboard: the rendered report page,
// workbook upload, the report JSON API and share-link minting.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"maechul/internal/cache"
	"maechul/internal/config"
	"maechul/internal/ingest"
	"maechul/internal/middleware/ratelimit"
	"maechul/internal/middleware/security"
	"maechul/internal/middleware/trace"
	"maechul/internal/report"
	"maechul/internal/store"
	appweb "maechul/web"
)

type Server struct {
	http.Server
	cfg       *config.Config
	templates *template.Template

	store  *store.Store
	parser *ingest.Parser
	engine *report.Engine

	// Aggregated summaries keyed by "year-month". Purged wholesale on
	// upload or link load since adjacent-month totals cross keys.
	reportCache  *cache.LRUCache[report.Summary]
	cacheManager *cache.Manager

	limiter  *ratelimit.Limiter
	detector *security.Detector
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server.
func NewServer(cfg *config.Config, st *store.Store, parser *ingest.Parser, engine *report.Engine) *Server {
	detector := security.NewDetector()

	s := &Server{
		cfg:    cfg,
		store:  st,
		parser: parser,
		engine: engine,
		reportCache: cache.NewLRUCache[report.Summary](
			cfg.CacheSize, cfg.CacheTTL),
		cacheManager: cache.NewManager(),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		}),
		detector: detector,
		headers:  security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:   trace.NewMiddleware(detector.ExtractClientIP),
	}
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	t, err := template.New("").Funcs(template.FuncMap{
		"won": formatWon,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/", s.protected(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("/upload", s.protected(http.HandlerFunc(s.handleUpload)))
	mux.Handle("/api/report", s.protected(http.HandlerFunc(s.handleReport)))
	mux.Handle("/api/share", s.protected(http.HandlerFunc(s.handleShare)))

	s.Server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}
	return s
}

// protected chains the standard middleware: security headers, request
// tracing, suspicion logging and rate limiting on mutating methods.
func (s *Server) protected(next http.Handler) http.Handler {
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"method", r.Method,
				"path", r.URL.Path,
				"client_ip", s.detector.ExtractClientIP(r))
		}
		if r.Method == http.MethodPost && !s.limiter.Allow(s.detector.ExtractClientIP(r)) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", s.detector.ExtractClientIP(r),
				"path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
	return s.headers.Middleware(s.tracer.Middleware(limited))
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("templates not loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) cacheKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// summary returns the aggregated month view, cached per (year, month).
func (s *Server) summary(ctx context.Context, year, month int) report.Summary {
	key := s.cacheKey(year, month)
	if data, found := s.reportCache.Get(key); found {
		slog.DebugContext(ctx, "Report cache hit", "year", year, "month", month)
		return data
	}

	data := s.engine.Aggregate(s.store.All(), year, month)
	s.reportCache.Set(key, data)
	slog.DebugContext(ctx, "Report cached",
		"year", year, "month", month, "total", data.Total)
	return data
}

// invalidateReports drops every cached summary. Any dataset change can
// shift adjacent-month totals, so per-key invalidation is not enough.
func (s *Server) invalidateReports() {
	s.reportCache.Purge()
}
