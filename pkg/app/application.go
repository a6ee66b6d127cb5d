package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"coursebook/pkg/config"
	"coursebook/pkg/contracts"
	"coursebook/pkg/middleware"
)

// Application owns the HTTP server lifecycle: route registration, the
// middleware stack, startup and graceful shutdown.
type Application struct {
	cfg     *config.Config
	server  *http.Server
	onClose []func() error
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetHandlers registers every domain handler and builds the server.
func (a *Application) SetHandlers(handlers ...contracts.Handler) {
	router := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	var handler http.Handler = router
	handler = middleware.RequestTimeout(a.cfg.RequestTimeout)(handler)
	handler = middleware.ContentTypeValidation(a.cfg.Log)(handler)
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)

	a.server = &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Host, a.cfg.Port),
		Handler:      handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "addr", a.server.Addr)
}

// OnClose registers cleanup run during graceful shutdown, in reverse
// registration order.
func (a *Application) OnClose(fn func() error) {
	a.onClose = append(a.onClose, fn)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)
	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig.String())
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Graceful shutdown failed, forcing close", "error", err)
		_ = a.server.Close()
	}

	for i := len(a.onClose) - 1; i >= 0; i-- {
		if err := a.onClose[i](); err != nil {
			a.cfg.Log.Warn("Cleanup failed during shutdown", "error", err)
		}
	}

	a.cfg.Log.Info("Shutdown complete")
}
