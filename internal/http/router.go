package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/TARUN062005/MERNNETFLIX/internal/auth"
	"github.com/TARUN062005/MERNNETFLIX/internal/cache"
	"github.com/TARUN062005/MERNNETFLIX/internal/config"
	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	"github.com/TARUN062005/MERNNETFLIX/internal/http/handlers"
	"github.com/TARUN062005/MERNNETFLIX/internal/http/middlewares"
	"github.com/TARUN062005/MERNNETFLIX/internal/observability"
	"github.com/TARUN062005/MERNNETFLIX/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// NewRouter wires the full HTTP surface. redisClient may be nil, which
// disables the catalog cache.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, redisClient *cache.Client, cfg config.Config, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	prom := observability.NewProm(reg)

	// middleware
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware("netflix-api"))
	r.Use(prom.GinHandleMiddleware())

	// health + metrics
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// auth plumbing
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AdminTokenTTL(), cfg.UserTokenTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	// repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	moviesRepo := postgres.NewMoviesRepo(pool, prom)
	genresRepo := postgres.NewGenresRepo(pool, prom)

	var catalog *cache.Catalog

	if redisClient != nil {
		catalog = cache.NewCatalog(redisClient, 30*time.Second)
	}

	// handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, prom)
	adminUsersHandler := handlers.NewAdminUsersHandler(usersRepo)
	moviesHandler := handlers.NewMoviesHandler(moviesRepo, catalog)
	genresHandler := handlers.NewGenresHandler(genresRepo, moviesRepo)
	paymentsHandler := handlers.NewPaymentsHandler()

	// credential endpoints get a per-IP rate limit; authenticated writes a
	// per-actor one
	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)
	limited := loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP)

	actorLimiter := middlewares.NewRateLimiter(30, time.Minute)
	actorLimited := actorLimiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP)

	// admin surface
	admin := r.Group("/admin")
	admin.POST("/register", limited, authHandler.RegisterAdmin)
	admin.POST("/login", limited, authHandler.LoginAdmin)

	adminOnly := admin.Group("", authMW.RequireAuth(), authMW.RequireRole(user.RoleAdmin))
	adminOnly.PUT("/changePass/:id", authHandler.ChangePassword)
	adminOnly.PUT("/resetUserPass/:userId", authHandler.ResetUserPassword)
	adminOnly.GET("/allUsers", adminUsersHandler.ListUsers)
	adminOnly.DELETE("/userDel/:id", adminUsersHandler.DeleteUser)

	adminOnly.POST("/genre", genresHandler.CreateGenre)
	adminOnly.GET("/genreGet", genresHandler.ListGenres)
	adminOnly.GET("/genre/:name", genresHandler.GetGenreByName)
	adminOnly.PUT("/genreEdit/:name", genresHandler.UpdateGenre)
	adminOnly.DELETE("/genreDel/:name", genresHandler.DeleteGenre)

	adminOnly.POST("/addMovie", moviesHandler.CreateMovie)
	adminOnly.GET("/viewMovies", moviesHandler.ListMovies)
	adminOnly.GET("/viewMovie/:title", moviesHandler.GetMovieByTitle)
	adminOnly.PUT("/editMovie/:title", moviesHandler.UpdateMovie)
	adminOnly.DELETE("/deleteMovie/:title", moviesHandler.DeleteMovie)
	adminOnly.POST("/rateMovie/:title", moviesHandler.RateMovie)

	// user surface
	usr := r.Group("/user")
	usr.POST("/register", limited, authHandler.RegisterUser)
	usr.POST("/login", limited, authHandler.LoginUser)

	userOnly := usr.Group("", authMW.RequireAuth(), authMW.RequireRole(user.RoleUser))
	userOnly.GET("/movies", moviesHandler.ListMovies)
	userOnly.GET("/movie/:title", moviesHandler.GetMovieByTitle)
	userOnly.POST("/rateMovie/:title", actorLimited, moviesHandler.RateMovie)
	userOnly.POST("/searchMovie", actorLimited, moviesHandler.SearchMovies)
	userOnly.GET("/genres", genresHandler.ListGenres)
	userOnly.GET("/genre/:name", genresHandler.GetGenreByName)
	userOnly.GET("/movies/genre/:genreName", moviesHandler.ListMoviesByGenre)

	// payment stub
	payment := r.Group("/payment")
	payment.GET("/", paymentsHandler.GetPayment)
	payment.POST("/make-payment", paymentsHandler.MakePayment)

	return r
}
