package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Await-d/maple-blog-sub003/internal/api/handlers"
	"github.com/Await-d/maple-blog-sub003/internal/api/middleware"
	"github.com/Await-d/maple-blog-sub003/internal/audit"
	"github.com/Await-d/maple-blog-sub003/internal/auth"
	"github.com/Await-d/maple-blog-sub003/internal/cache"
	"github.com/Await-d/maple-blog-sub003/internal/config"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
	"github.com/Await-d/maple-blog-sub003/internal/queue"
	"github.com/Await-d/maple-blog-sub003/internal/words"
)

type Router struct {
	mux    *chi.Mux
	db     *pgxpool.Pool
	redis  *redis.Client
	cfg    *config.Config
	filter *filter.Filter
	words  *words.Service
	jwt    *auth.JWTMiddleware
	apikey *auth.APIKeyMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, f *filter.Filter, wordsSvc *words.Service) *Router {
	return &Router{
		mux:    chi.NewRouter(),
		db:     db,
		redis:  rdb,
		cfg:    cfg,
		filter: f,
		words:  wordsSvc,
		jwt:    auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		apikey: auth.NewAPIKeyMiddleware(db, cfg.Auth.APIKeyHeader),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ClientIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}, rt.cfg.Auth.APIKeyHeader))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	auditSvc := audit.NewService(rt.db)

	var queueClient *queue.Client
	if rt.redis != nil {
		queueClient = queue.NewClient(rt.cfg.Redis)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth: try API key first, then JWT
		r.Use(rt.apikey.Authenticate)
		r.Use(rt.jwt.Authenticate)

		// Filtering routes
		filterH := handlers.NewFilterHandler(rt.filter, cache.NewCache(rt.redis))
		r.Route("/filter", func(r chi.Router) {
			r.Post("/check", filterH.Check)
			r.Post("/check/batch", filterH.CheckBatch)
		})

		// Dictionary administration routes
		wordH := handlers.NewWordHandler(rt.words, queueClient)
		r.Route("/words", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleModerator))
			r.Post("/", wordH.Add)
			r.Delete("/", wordH.Remove)
			r.Post("/reload", wordH.Reload)
			r.Get("/stats", wordH.Stats)
		})

		// Admin routes
		adminH := handlers.NewAdminHandler(auditSvc)
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))
			r.Get("/audit", adminH.AuditLogs)
		})
	})

	return r
}
