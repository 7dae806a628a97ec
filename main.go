package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "transportes-backend/internal/config"
	router "transportes-backend/internal/http"
	"transportes-backend/internal/http/handlers"
	"transportes-backend/internal/services"
	"transportes-backend/pkg/logger"
	"transportes-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	lg := logger.NewLogger()
	m := metrics.NewMetrics("transportes")

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	ctx := context.Background()

	// Canales de notificacion: nil cuando faltan credenciales.
	correo, err := services.NewGmailEnviador(ctx, env, lg)
	if err != nil {
		lg.Warn("gmail deshabilitado", "error", err)
	}
	calendario, err := services.NewCalendarioGoogle(ctx, env, lg)
	if err != nil {
		lg.Warn("calendario deshabilitado", "error", err)
	}

	deps := handlers.Deps{
		Env:     env,
		Log:     lg,
		Metrics: m,
	}
	if correo != nil {
		deps.Correo = correo
	}
	if calendario != nil {
		deps.Calendario = calendario
	}
	if procesador := services.NewProcesadorHTTP(env); procesador != nil {
		deps.Procesador = procesador
	}
	handlers.SetDeps(deps)

	r := router.NewRouter(env, lg)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("servidor iniciado", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("no se pudo iniciar el servidor", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	lg.Info("apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Fatal("fallo el apagado del servidor", "error", err)
	}

	lg.Info("servidor detenido")
}
