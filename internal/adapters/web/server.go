package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/wsurvey/internal/adapters/reporting"
	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
)

// Server exposes the survey state over HTTP and WebSocket.
type Server struct {
	Addr        string
	Survey      ports.SurveyService
	PDFExporter *reporting.PDFExporter

	ws  *WSManager
	srv *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, survey ports.SurveyService) *Server {
	return &Server{
		Addr:        addr,
		Survey:      survey,
		PDFExporter: reporting.NewPDFExporter(),
		ws:          NewWSManager(survey),
	}
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/networks", s.handleNetworks).Methods(http.MethodGet)
	r.HandleFunc("/api/networks/{bssid}/elements", s.handleNetworkElements).Methods(http.MethodGet)
	r.HandleFunc("/api/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/scan", s.handleScan).Methods(http.MethodPost)
	r.HandleFunc("/api/export", s.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/api/report", s.handleReport).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.ws.HandleWebSocket)

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run starts the server and the snapshot broadcaster, blocking until ctx is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.ws.Start(ctx)

	// "wsurvey-server" is the name of the operation (span)
	instrumented := otelhttp.NewHandler(s.Routes(), "wsurvey-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumented,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		slog.Info("Web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Web server shutdown error", "error", err)
		}
	}()

	slog.Info("Web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
