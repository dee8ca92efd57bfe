package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigahouse/internal/device"
	"gigahouse/internal/handlers"
	"gigahouse/internal/logger"
	"gigahouse/internal/server"
	"gigahouse/internal/service"
	"gigahouse/internal/store"

	"github.com/spf13/viper"

	_ "gigahouse/docs"
)

// @title        GigaHouse Hub API
// @version      1.0
// @description  Device-state synchronization hub for home-automation endpoints.
// @BasePath     /
func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open the state store
	st, err := openStore(log)
	if err != nil {
		log.Fatalw("failed to init store", "err", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()

	// wire dependencies
	services := service.NewService(service.Deps{
		Store:  st,
		Device: newDeviceClient(),
		Mode:   viper.GetString("mode"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// establish observer + history subscriptions; disposed on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := services.Start(ctx); err != nil {
		log.Fatalw("failed to start subscriptions", "err", err)
	}
	defer services.Close()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("mode", service.ModeCloud)
	return viper.ReadInConfig()
}

// openStore picks the store backing for the configured mode: durable SQLite in
// cloud mode, ephemeral memory in direct mode (schedules/history only).
func openStore(log *logger.Logger) (store.Store, error) {
	if viper.GetString("mode") == service.ModeDirect {
		return store.NewMemory(), nil
	}
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "gigahouse.db")
		dbPath = "gigahouse.db"
	}
	return store.OpenSQLite(dbPath)
}

// newDeviceClient builds the direct-device HTTP client from config. Unused in
// cloud mode.
func newDeviceClient() *device.Client {
	return device.NewClient(
		viper.GetString("device.base_url"),
		viper.GetDuration("device.timeout"),
	)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
