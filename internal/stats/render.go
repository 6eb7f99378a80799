package stats

import (
	"fmt"
	"strings"

	"github.com/claimloom/claimloom/internal/filter"
)

// Report bundles every statistic the dashboard and CLI surfaces need for
// one filtered view. Building it is deterministic for a given view.
type Report struct {
	Summary       Summary           `json:"summary"`
	Describe      Describe          `json:"describe"`
	ByRegion      []CategorySummary `json:"by_region"`
	ByPolicyType  []CategorySummary `json:"by_policy_type"`
	ByVehicleType []CategorySummary `json:"by_vehicle_type"`
	ByStatus      []CategorySummary `json:"by_status"`
	Outliers      OutlierReport     `json:"outliers"`
	Correlations  CorrMatrix        `json:"correlations"`
}

// BuildReport computes the full statistics bundle for a view.
func BuildReport(v filter.View, outlierThreshold float64) Report {
	return Report{
		Summary:       Summarize(v),
		Describe:      DescribeAmount(v),
		ByRegion:      ByCategory(v, ByRegion),
		ByPolicyType:  ByCategory(v, ByPolicyType),
		ByVehicleType: ByCategory(v, ByVehicleType),
		ByStatus:      ByCategory(v, ByStatus),
		Outliers:      Outliers(v, outlierThreshold),
		Correlations:  Correlations(v),
	}
}

// Markdown renders a compact report suitable for terminals or standalone
// docs.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[CLAIMS SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Claims: %d\n", r.Summary.Count))
	b.WriteString(fmt.Sprintf("Total: $%s\n", r.Summary.Total.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Average: $%s\n", r.Summary.Mean.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Approved: $%s\n", r.Summary.ApprovedTotal.StringFixed(2)))
	if r.Summary.WithAmount < r.Summary.Count {
		b.WriteString(fmt.Sprintf("(%d claims lack an amount and are excluded from totals)\n", r.Summary.Count-r.Summary.WithAmount))
	}

	if r.Describe.Count > 0 {
		b.WriteString("\n[CLAIM AMOUNT]\n")
		d := r.Describe
		b.WriteString(fmt.Sprintf("- count %d, mean %.2f, std %.2f\n", d.Count, d.Mean, d.Std))
		b.WriteString(fmt.Sprintf("- min %.2f, 25%% %.2f, 50%% %.2f, 75%% %.2f, max %.2f\n", d.Min, d.Q25, d.Median, d.Q75, d.Max))
		if r.Outliers.Count > 0 {
			b.WriteString(fmt.Sprintf("- outliers: %d above |z|>%.1f (max |z|=%.2f)\n", r.Outliers.Count, r.Outliers.Threshold, r.Outliers.MaxAbsZ))
		}
	}

	sections := []struct {
		title string
		cats  []CategorySummary
	}{
		{"BY STATUS", r.ByStatus},
		{"BY REGION", r.ByRegion},
		{"BY POLICY TYPE", r.ByPolicyType},
		{"BY VEHICLE TYPE", r.ByVehicleType},
	}
	for _, sec := range sections {
		if len(sec.cats) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n[%s]\n", sec.title))
		for _, c := range sec.cats {
			b.WriteString(fmt.Sprintf("- %s: %d claims, total $%s, mean $%s\n",
				c.Value, c.Count, c.Total.StringFixed(2), c.Mean.StringFixed(2)))
		}
	}

	if len(r.Correlations.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		cols := r.Correlations.Columns
		for i := 0; i < len(cols); i++ {
			for j := i + 1; j < len(cols); j++ {
				b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", cols[i], cols[j], r.Correlations.Values[i][j]))
			}
		}
	}
	return b.String()
}
