package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/lcalzada-xor/wsurvey/internal/core/services/export"
)

// handleNetworks returns the networks of the latest snapshot.
func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	snap := s.Survey.Snapshot()
	writeJSON(w, snap.Networks)
}

// handleSnapshot returns the full latest snapshot including cycle metadata.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Survey.Snapshot())
}

// handleNetworkElements returns the decoded elements of one network.
func (s *Server) handleNetworkElements(w http.ResponseWriter, r *http.Request) {
	bssid := strings.ToLower(mux.Vars(r)["bssid"])

	snap := s.Survey.Snapshot()
	for _, n := range snap.Networks {
		if strings.ToLower(n.BSSID) == bssid {
			writeJSON(w, n.Elements)
			return
		}
	}
	http.Error(w, "Network not found", http.StatusNotFound)
}

// handleScan requests an immediate scan cycle.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	s.Survey.TriggerScan()
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "triggered"})
}

// handleExport streams the latest snapshot as CSV or JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	snap := s.Survey.Snapshot()
	stamp := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="survey_%s.csv"`, stamp))
		if err := export.ExportCSV(w, snap); err != nil {
			slog.Error("CSV export failed", "error", err)
		}
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="survey_%s.json"`, stamp))
		if err := export.ExportJSON(w, snap); err != nil {
			slog.Error("JSON export failed", "error", err)
		}
	default:
		http.Error(w, "Unsupported format: "+format, http.StatusBadRequest)
	}
}

// handleReport renders the latest snapshot as a PDF.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap := s.Survey.Snapshot()

	data, err := s.PDFExporter.ExportSnapshot(snap)
	if err != nil {
		http.Error(w, "Failed to generate report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="survey_%s.pdf"`, time.Now().Format("20060102_150405")))
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode error", "error", err)
	}
}
