package server

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/claimloom/claimloom/internal/filter"
	"github.com/claimloom/claimloom/internal/report"
	"github.com/claimloom/claimloom/internal/stats"
)

// facet is one categorical filter group rendered as checkboxes.
type facet struct {
	Param  string
	Label  string
	Values []facetValue
}

type facetValue struct {
	Value    string
	Selected bool
}

type pageData struct {
	Title    string
	Total    int
	Filtered int
	Query    template.URL
	From     string
	To       string
	MinDate  string
	MaxDate  string
	Facets   []facet
	Payload  stats.Report
	Issues   []string
	Empty    bool
}

var pageTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"usd":   func(d decimal.Decimal) string { return report.USD(d) },
	"money": func(f float64) string { return report.USD(decimal.NewFromFloat(f)) },
	"corr":  func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
}).Parse(dashboardHTML))

// Index renders the HTML dashboard for the current filters.
func (s *DashboardService) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	c, err := criteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := filter.Apply(s.DS, c)

	minDate, maxDate := s.DS.DateRange()
	data := pageData{
		Title:    "Insurance Claims Analytics Dashboard",
		Total:    s.DS.Len(),
		Filtered: v.Len(),
		Query:    template.URL(r.URL.RawQuery),
		From:     formatDatePtr(c.From),
		To:       formatDatePtr(c.To),
		MinDate:  minDate.Format("2006-01-02"),
		MaxDate:  maxDate.Format("2006-01-02"),
		Facets: []facet{
			buildFacet("region", "Region", s.DS.Regions(), c.Regions),
			buildFacet("policy", "Policy Type", s.DS.PolicyTypes(), c.PolicyTypes),
			buildFacet("vehicle", "Vehicle Type", s.DS.VehicleTypes(), c.VehicleTypes),
			buildFacet("gender", "Gender", s.DS.Genders(), c.Genders),
			buildFacet("status", "Claim Status", s.DS.Statuses(), c.Statuses),
		},
		Payload: stats.BuildReport(v, s.Opts.OutlierThreshold),
		Issues:  c.Validate(s.DS),
		Empty:   v.Len() == 0,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("render dashboard failed", "error", err)
	}
}

func buildFacet(param, label string, domain, selected []string) facet {
	f := facet{Param: param, Label: label}
	sel := map[string]bool{}
	for _, s := range selected {
		sel[s] = true
	}
	for _, val := range domain {
		f.Values = append(f.Values, facetValue{Value: val, Selected: sel[val]})
	}
	return f
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 240px; padding: 16px; background: #f4f4f4; min-height: 100vh; }
main { flex: 1; padding: 16px 24px; }
fieldset { border: 1px solid #ddd; margin-bottom: 12px; }
.kpis { display: flex; gap: 16px; margin-bottom: 16px; }
.kpi { background: #f8f8f8; border: 1px solid #e0e0e0; padding: 12px 20px; }
.kpi .value { font-size: 1.4em; font-weight: bold; }
table { border-collapse: collapse; margin-bottom: 16px; }
th, td { border: 1px solid #ddd; padding: 4px 10px; text-align: left; }
th { background: #f0f0f0; }
img { max-width: 100%; margin-bottom: 16px; }
.empty { color: #888; font-style: italic; }
.issues { color: #a00; }
</style>
</head>
<body>
<aside>
<h3>Filter Claims</h3>
<form method="get" action="/">
{{range .Facets}}
<fieldset>
<legend>{{.Label}}</legend>
{{$param := .Param}}
{{range .Values}}
<label><input type="checkbox" name="{{$param}}" value="{{.Value}}"{{if .Selected}} checked{{end}}> {{.Value}}</label><br>
{{end}}
</fieldset>
{{end}}
<fieldset>
<legend>Date Range ({{.MinDate}} to {{.MaxDate}})</legend>
<label>From <input type="date" name="from" value="{{.From}}"></label><br>
<label>To <input type="date" name="to" value="{{.To}}"></label>
</fieldset>
<button type="submit">Apply</button> <a href="/">Reset</a>
</form>
</aside>
<main>
<h1>{{.Title}}</h1>
{{if .Issues}}<p class="issues">{{range .Issues}}{{.}}<br>{{end}}</p>{{end}}
<p>Showing {{.Filtered}} of {{.Total}} claims.</p>

<div class="kpis">
<div class="kpi"><div>Total Claims</div><div class="value">{{usd .Payload.Summary.Total}}</div></div>
<div class="kpi"><div>Average Claim</div><div class="value">{{usd .Payload.Summary.Mean}}</div></div>
<div class="kpi"><div>Approved Claims</div><div class="value">{{usd .Payload.Summary.ApprovedTotal}}</div></div>
</div>

{{if .Empty}}
<p class="empty">No claims match the current filters.</p>
{{else}}
<h2>Summary Statistics</h2>
<table>
<tr><th>count</th><th>mean</th><th>std</th><th>min</th><th>25%</th><th>50%</th><th>75%</th><th>max</th></tr>
<tr>
<td>{{.Payload.Describe.Count}}</td>
<td>{{money .Payload.Describe.Mean}}</td>
<td>{{money .Payload.Describe.Std}}</td>
<td>{{money .Payload.Describe.Min}}</td>
<td>{{money .Payload.Describe.Q25}}</td>
<td>{{money .Payload.Describe.Median}}</td>
<td>{{money .Payload.Describe.Q75}}</td>
<td>{{money .Payload.Describe.Max}}</td>
</tr>
</table>

<h2>Claims by Status</h2>
<table>
<tr><th>Status</th><th>Count</th><th>Total</th><th>Mean</th></tr>
{{range .Payload.ByStatus}}
<tr><td>{{.Value}}</td><td>{{.Count}}</td><td>{{usd .Total}}</td><td>{{usd .Mean}}</td></tr>
{{end}}
</table>

<h2>Correlations</h2>
<table>
<tr><th></th>{{range .Payload.Correlations.Columns}}<th>{{.}}</th>{{end}}</tr>
{{$cols := .Payload.Correlations.Columns}}
{{range $i, $row := .Payload.Correlations.Values}}
<tr><th>{{index $cols $i}}</th>{{range $row}}<td>{{corr .}}</td>{{end}}</tr>
{{end}}
</table>

<h2>Visual Analytics</h2>
<img src="/charts/timeline.png?{{.Query}}" alt="Claim amount over time">
<img src="/charts/regions.png?{{.Query}}" alt="Claims by region">
<img src="/charts/policies.png?{{.Query}}" alt="Claims by policy type">
<img src="/charts/status.png?{{.Query}}" alt="Claims count by status">
{{end}}

<p>
<a href="/export/claims.csv?{{.Query}}">Download Filtered Data (CSV)</a> |
<a href="/export/report.pdf?{{.Query}}">Download PDF Report</a> |
<a href="/api/summary?{{.Query}}">JSON Summary</a>
</p>
</main>
</body>
</html>
`
