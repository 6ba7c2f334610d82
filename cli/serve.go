package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XTHN9RF/Foodify-API/cache"
	"github.com/XTHN9RF/Foodify-API/config"
	authControllers "github.com/XTHN9RF/Foodify-API/controllers/auth"
	"github.com/XTHN9RF/Foodify-API/database"
	"github.com/XTHN9RF/Foodify-API/feed"
	"github.com/XTHN9RF/Foodify-API/routes"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/XTHN9RF/Foodify-API/store"
	"github.com/XTHN9RF/Foodify-API/uploads"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	log.Println("✅ Starting application...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	tokens, err := cfg.TokenService()
	if err != nil {
		return err
	}

	categories := categoryCache(ctx, cfg)
	s := store.New(db)
	hub := feed.NewHub()
	storage := uploads.NewStorage(cfg.UploadsDir)
	if err := os.MkdirAll(storage.Root(), 0755); err != nil {
		return err
	}

	engine := routes.NewEngine(routes.Deps{
		Auth:         services.NewAuth(s, tokens),
		Profile:      services.NewProfile(s),
		Catalog:      services.NewCatalog(s, categories),
		Cart:         services.NewCart(s),
		Orders:       services.NewOrders(s, hub),
		Feed:         hub,
		Storage:      storage,
		AdminAPIKey:  cfg.AdminAPIKey,
		Cookies:      authControllers.CookieConfig{Secure: cfg.CookieSecure, Domain: cfg.CookieDomain},
		AllowOrigins: cfg.AllowOrigins,
	})

	if cfg.BackupDir != "" {
		go uploads.StartDailyBackup(ctx, storage.Root(), cfg.BackupDir, cfg.BackupRetention, cfg.BackupHour, 0)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ HTTP server shutdown: %v", err)
		return err
	}
	log.Println("✅ Server stopped")
	return nil
}

// categoryCache connects to redis when configured, otherwise caches in process.
// An unreachable redis falls back to the in-process cache.
func categoryCache(ctx context.Context, cfg *config.Config) cache.Catalog {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}
	client, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, caching categories in memory: %v", err)
		return cache.NewMemory()
	}
	return cache.NewRedis(client)
}
