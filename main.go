package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"worklane/applications"
	"worklane/auth"
	"worklane/config"
	"worklane/db"
	"worklane/jobs"
	"worklane/middleware"
	"worklane/mq"
	"worklane/notifications"
	"worklane/projects"
	"worklane/proposals"
	"worklane/ratelim"
	"worklane/routes"
	"worklane/users"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(
	database *db.DB,
	tokens *auth.TokenService,
	events *mq.Emitter,
	hub *notifications.Hub,
	rateLimiter *ratelim.RateLimiter,
) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	mw := middleware.NewAuth(tokens)

	routes.AddAuthRoutes(router, auth.NewHandler(database, tokens), mw, rateLimiter)
	routes.AddUserRoutes(router, users.NewHandler(database), mw)
	routes.AddJobRoutes(router, jobs.NewHandler(database), mw)
	routes.AddProjectRoutes(router, projects.NewHandler(database), mw)
	routes.AddApplicationRoutes(router, applications.NewHandler(database, events), mw, rateLimiter)
	routes.AddProposalRoutes(router, proposals.NewHandler(database, events), mw, rateLimiter)
	routes.AddNotificationRoutes(router, notifications.NewHandler(database), hub, mw)

	return router
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	database, err := db.Connect(connectCtx, cfg)
	connectCancel()
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatalf("❌ Failed to create indexes: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	events := mq.NewEmitter(rdb)
	rateLimiter := ratelim.NewRateLimiter()

	hub := notifications.NewHub()
	go hub.Run()
	go notifications.NewSubscriber(rdb, database, hub).Run(ctx)

	router := setupRouter(database, tokens, events, hub, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down notification hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	cancel()
	if err := rdb.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if err := database.Close(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
