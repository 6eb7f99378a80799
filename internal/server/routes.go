package server

import (
	"log/slog"
	"net/http"
	"time"
)

// SetupRoutes wires every dashboard endpoint onto a fresh mux.
func SetupRoutes(s *DashboardService) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.Index)
	mux.HandleFunc("/api/summary", s.GetSummary)
	mux.HandleFunc("/api/claims", s.GetClaims)
	mux.HandleFunc("/charts/timeline.png", s.ChartTimeline)
	mux.HandleFunc("/charts/regions.png", s.ChartRegions)
	mux.HandleFunc("/charts/policies.png", s.ChartPolicies)
	mux.HandleFunc("/charts/status.png", s.ChartStatus)
	mux.HandleFunc("/export/claims.csv", s.ExportCSV)
	mux.HandleFunc("/export/report.pdf", s.ExportPDF)

	return mux
}

// WithRequestLog logs method, path and duration for each request.
func WithRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
