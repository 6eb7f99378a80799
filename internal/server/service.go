// Package server exposes the claims dashboard over HTTP: an HTML page,
// a JSON API, PNG chart endpoints, and CSV/PDF downloads. Every request
// recomputes the filter pipeline from the immutable dataset, so there is
// no shared mutable state between requests.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/claimloom/claimloom/internal/charts"
	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/export"
	"github.com/claimloom/claimloom/internal/filter"
	"github.com/claimloom/claimloom/internal/report"
	"github.com/claimloom/claimloom/internal/stats"
)

// Options carries the presentation knobs the dashboard needs.
type Options struct {
	ChartWidth       int
	ChartHeight      int
	TableRowLimit    int
	OutlierThreshold float64
}

// DashboardService serves all dashboard routes over one loaded dataset.
type DashboardService struct {
	DS   *claims.Dataset
	Opts Options
}

func NewDashboardService(ds *claims.Dataset, opts Options) *DashboardService {
	return &DashboardService{DS: ds, Opts: opts}
}

// criteriaFromQuery builds filter criteria from request query parameters.
// Repeatable params select categorical values; from/to bound the claim
// date. A malformed date is the caller's error.
func criteriaFromQuery(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.Criteria{
		Regions:      q["region"],
		PolicyTypes:  q["policy"],
		VehicleTypes: q["vehicle"],
		Genders:      q["gender"],
		Statuses:     q["status"],
	}
	if s := q.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c, fmt.Errorf("invalid 'from' date %q, use YYYY-MM-DD", s)
		}
		c.From = &t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c, fmt.Errorf("invalid 'to' date %q, use YYYY-MM-DD", s)
		}
		c.To = &t
	}
	return c, nil
}

func (s *DashboardService) view(w http.ResponseWriter, r *http.Request) (filter.View, bool) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return filter.View{}, false
	}
	return filter.Apply(s.DS, c), true
}

// GetSummary serves the JSON summary for the current filters.
func (s *DashboardService) GetSummary(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, stats.BuildReport(v, s.Opts.OutlierThreshold))
}

// GetClaims serves the filtered records as JSON.
func (s *DashboardService) GetClaims(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	records := v.Records()
	if records == nil {
		records = []claims.Record{}
	}
	writeJSON(w, map[string]any{"count": v.Len(), "claims": records})
}

// ExportCSV streams the filtered view as a CSV download.
func (s *DashboardService) ExportCSV(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_claims.csv"`)
	if err := export.WriteCSV(w, v); err != nil {
		slog.Error("csv export failed", "error", err)
	}
}

// ExportPDF builds and streams the PDF report for the filtered view,
// charts included.
func (s *DashboardService) ExportPDF(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	opts := charts.Options{Width: s.Opts.ChartWidth, Height: s.Opts.ChartHeight}
	var pngs [][]byte
	if png, err := charts.Timeline(stats.AmountByPeriod(v, stats.ByPolicyType), opts); err == nil {
		pngs = append(pngs, png)
	}
	if png, err := charts.CategoryBars("Claims by Region", stats.ByCategory(v, stats.ByRegion), opts); err == nil {
		pngs = append(pngs, png)
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="insurance_claims_report.pdf"`)
	err := report.Build(w, report.Params{
		View:     v,
		Summary:  stats.Summarize(v),
		Describe: stats.DescribeAmount(v),
		Charts:   pngs,
		RowLimit: s.Opts.TableRowLimit,
	})
	if err != nil {
		slog.Error("pdf export failed", "error", err)
	}
}

func (s *DashboardService) chart(w http.ResponseWriter, r *http.Request, build func(filter.View, charts.Options) ([]byte, error)) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	png, err := build(v, charts.Options{Width: s.Opts.ChartWidth, Height: s.Opts.ChartHeight})
	if err != nil {
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		slog.Error("chart render failed", "path", r.URL.Path, "error", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ChartTimeline renders the amount-over-time line chart.
func (s *DashboardService) ChartTimeline(w http.ResponseWriter, r *http.Request) {
	s.chart(w, r, func(v filter.View, o charts.Options) ([]byte, error) {
		return charts.Timeline(stats.AmountByPeriod(v, stats.ByPolicyType), o)
	})
}

// ChartRegions renders claim totals by region.
func (s *DashboardService) ChartRegions(w http.ResponseWriter, r *http.Request) {
	s.chart(w, r, func(v filter.View, o charts.Options) ([]byte, error) {
		return charts.CategoryBars("Claims by Region", stats.ByCategory(v, stats.ByRegion), o)
	})
}

// ChartPolicies renders claim totals by policy type.
func (s *DashboardService) ChartPolicies(w http.ResponseWriter, r *http.Request) {
	s.chart(w, r, func(v filter.View, o charts.Options) ([]byte, error) {
		return charts.CategoryBars("Claims by Policy Type", stats.ByCategory(v, stats.ByPolicyType), o)
	})
}

// ChartStatus renders the claim count by status.
func (s *DashboardService) ChartStatus(w http.ResponseWriter, r *http.Request) {
	s.chart(w, r, func(v filter.View, o charts.Options) ([]byte, error) {
		return charts.StatusCounts(stats.ByCategory(v, stats.ByStatus), o)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
