// Entry point of the fStopandGo API. Wires configuration, the database
// pool, migrations, services, and the HTTP router, then runs the server
// with graceful shutdown.
//
// @title fStopandGo API
// @version 1.0
// @description API for planning photography shoots: user accounts, token auth, and owner-scoped shoot records.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
	"github.com/AlexWarnes/fStopandGo-api/config"
	"github.com/AlexWarnes/fStopandGo-api/db"
	_ "github.com/AlexWarnes/fStopandGo-api/docs" // swagger spec registration
	"github.com/AlexWarnes/fStopandGo-api/shoots"
	"github.com/AlexWarnes/fStopandGo-api/users"
)

func main() {
	// .env is a development convenience; production sets the environment
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: stores on the shared pool, services on
	// the stores, handlers on the services.
	userStore := auth.NewUserStore(pool)
	authHandlers := auth.NewHandlers(auth.NewAuthService(userStore, *cfg.Auth))
	userHandlers := users.NewUserHandlers(users.NewUserService(userStore))
	shootHandlers := shoots.NewShootHandlers(shoots.NewShootService(shoots.NewShootStore(pool)))

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that speaks the API's error envelope instead of chi's
	// bare 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					auth.WriteError(ww, req, apperror.NewInternalError("Internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, req)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.HandleLogin())
	})

	r.Route("/api/users", func(r chi.Router) {
		// Registration is the only route reachable without a token.
		r.Post("/", userHandlers.HandleCreateUser())

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			r.Get("/", userHandlers.HandleListUsers())
			r.Get("/{id}", userHandlers.HandleGetUser())
			r.Put("/{id}", userHandlers.HandleUpdateUser())
			r.Delete("/{id}", userHandlers.HandleDeleteUser())
		})
	})

	r.Route("/api/shoots", func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))
		r.Get("/", shootHandlers.HandleListShoots())
		r.Post("/", shootHandlers.HandleCreateShoot())
		r.Get("/{id}", shootHandlers.HandleGetShoot())
		r.Put("/{id}", shootHandlers.HandleUpdateShoot())
		r.Delete("/{id}", shootHandlers.HandleDeleteShoot())
	})

	// Unknown routes get the same envelope as every other error.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		auth.WriteError(w, req, apperror.NewNotFoundError("Not Found", nil))
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
