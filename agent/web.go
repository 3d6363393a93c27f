// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/netdata/netdata/go/ts3exporter/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

const landingPage = `<html>
<head><title>TeamSpeak 3 Exporter</title></head>
<body>
<h1>TeamSpeak 3 Exporter</h1>
<p><a href="` + metricsPath + `">Metrics</a></p>
</body>
</html>
`

// WebServer serves the scrape endpoint.
type WebServer struct {
	*logger.Logger

	srv *http.Server
	ln  net.Listener
}

// NewWebServer returns a server exposing the metrics gathered by g on the given port.
func NewWebServer(port int, g prometheus.Gatherer) *WebServer {
	log := logger.New().With(slog.String("component", "web"))

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(g, promhttp.HandlerOpts{
		ErrorLog:      promErrorLog{log},
		ErrorHandling: promhttp.ContinueOnError,
	}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(landingPage))
	})

	return &WebServer{
		Logger: log,
		srv: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(port)),
			Handler:           mux,
			ReadHeaderTimeout: time.Second * 10,
		},
	}
}

// Start binds the listening socket and serves in the background.
// A bind failure is returned, errors after that are logged.
func (w *WebServer) Start() error {
	ln, err := net.Listen("tcp", w.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on '%s': %w", w.srv.Addr, err)
	}
	w.ln = ln

	w.Infof("serving metrics on http://%s%s", ln.Addr(), metricsPath)

	go func() {
		if err := w.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.Errorf("metrics server: %v", err)
		}
	}()

	return nil
}

// Addr is the bound address, valid after Start.
func (w *WebServer) Addr() string {
	if w.ln == nil {
		return ""
	}
	return w.ln.Addr().String()
}

func (w *WebServer) Shutdown(ctx context.Context) error {
	return w.srv.Shutdown(ctx)
}

type promErrorLog struct {
	log *logger.Logger
}

func (l promErrorLog) Println(v ...any) { l.log.Error(v...) }
