package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ogero/ghibli-films/internal"
	"github.com/ogero/ghibli-films/internal/common"
	"github.com/ogero/ghibli-films/internal/config"
	"github.com/ogero/ghibli-films/pkg/ghibli"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to config.Load: ", err)
	}

	shutdownLogger, err := common.InitLogger(cfg.ServiceName, cfg.ServiceVersion, cfg.ServiceEnvironment, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("Failed to common.InitLogger: ", err)
	}

	shutdownInstrumentation, err := common.InitInstrumentation(cfg.ServiceName, cfg.ServiceVersion, cfg.ServiceEnvironment, cfg.OTLPEndpoint)
	if err != nil {
		common.Log.Error("Failed to common.InitInstrumentation", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	filmsService := internal.NewFilmsService(ghibli.NewGhibli(cfg.FilmsEndpoint), cfg.PageSize)

	app, err := internal.NewApp(filmsService, cfg.PublicHost)
	if err != nil {
		common.Log.Error("Failed to internal.NewApp", "err", err)
		os.Exit(1)
	}

	// The single fetch; handlers render the loading state until it settles.
	go filmsService.Load(ctx)

	srv := &http.Server{
		Addr:              cfg.ServerListenAddr,
		Handler:           otelhttp.NewHandler(app.Routes(common.Log), "ghibli-films"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		common.Log.Info("Listening", "addr", cfg.ServerListenAddr, "url", cfg.PublicHost)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.Log.Error("Failed to http.Server.ListenAndServe", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.Log.Error("Failed to http.Server.Shutdown", "err", err)
	}

	shutdownInstrumentation(shutdownCtx)
	common.Log.Info("Bye!")
	if err := shutdownLogger(shutdownCtx); err != nil {
		log.Println("Failed to shutdown logger:", err)
	}
}
