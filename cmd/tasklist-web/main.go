package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elpatron68/tasklist-web/internal/config"
	"github.com/elpatron68/tasklist-web/internal/controller"
	applog "github.com/elpatron68/tasklist-web/internal/log"
	"github.com/elpatron68/tasklist-web/internal/remote"
	"github.com/elpatron68/tasklist-web/internal/server"
	"github.com/elpatron68/tasklist-web/internal/ui"
)

func main() {
	configFlag := flag.String("config", "", "path to config.yaml")
	listenFlag := flag.String("listen", "", "listen address (overrides TASKWEB_LISTEN and config)")
	flag.Parse()

	// Config laden (optional config.yaml)
	cfg, err := config.Load(resolveConfigPath(*configFlag))
	if err != nil {
		stdlog.Fatalf("config error: %v", err)
	}
	listenAddr := resolveListenAddress(cfg, *listenFlag)

	// Init logging
	applog.InitFromEnvFallback(cfg.Logging.Level)

	reqLog := ui.NewRequestLogStore(cfg.UI.RequestLogMax)
	client, err := remote.New(cfg.Remote.URL,
		remote.WithTimeout(cfg.Remote.Timeout),
		remote.WithRecorder(reqLog),
	)
	if err != nil {
		stdlog.Fatalf("remote store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Startup-Check: Store erreichbar? Nur Warnung, kein Abbruch.
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	_ = remote.Probe(probeCtx, client)
	cancel()

	ctrl := controller.New(client, controller.WithSerializedActions(cfg.UI.SerializeActions))
	srv := server.NewServerWithConfig(ctrl, reqLog, cfg)

	httpSrv := &http.Server{Addr: listenAddr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	applog.Infof("task list web UI listening on %s (store %s)", listenAddr, client.Endpoint())
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stdlog.Fatalf("server error: %v", err)
	}
}

// resolveConfigPath: flag > ./config.yaml > ../../config.yaml
func resolveConfigPath(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	for _, p := range []string{"config.yaml", "../../config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Listen address: flag > ENV > config.yaml > default
func resolveListenAddress(cfg *config.Config, flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv("TASKWEB_LISTEN"); v != "" {
		return v
	}
	if cfg != nil && cfg.Listen != "" {
		return cfg.Listen
	}
	return ":8080"
}
