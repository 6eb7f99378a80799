// Package stats computes summary statistics over a filtered claims view.
// Every function here is a pure function of its input view: no hidden
// state, so identical views always produce identical results. Records
// missing a field are excluded from aggregates touching that field only.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/filter"
	"github.com/shopspring/decimal"
)

// StatusApproved is the claim status counted into the approved-total KPI.
const StatusApproved = "Approved"

// Summary is the KPI block: claim count, total and mean claim amount, and
// the total over approved claims. Amounts are exact decimals.
type Summary struct {
	Count         int             `json:"count"`
	WithAmount    int             `json:"with_amount"`
	Total         decimal.Decimal `json:"total"`
	Mean          decimal.Decimal `json:"mean"`
	ApprovedTotal decimal.Decimal `json:"approved_total"`
}

// Summarize computes the KPI block for a view. Records without a claim
// amount count toward Count but not toward Total, Mean or ApprovedTotal.
func Summarize(v filter.View) Summary {
	s := Summary{Count: v.Len()}
	for _, r := range v.Records() {
		if !r.HasAmount {
			continue
		}
		s.WithAmount++
		s.Total = s.Total.Add(r.Amount)
		if strings.EqualFold(r.Status, StatusApproved) {
			s.ApprovedTotal = s.ApprovedTotal.Add(r.Amount)
		}
	}
	if s.WithAmount > 0 {
		s.Mean = s.Total.Div(decimal.NewFromInt(int64(s.WithAmount))).Round(2)
	}
	return s
}

// Attribute selects a categorical column for breakdowns.
type Attribute string

const (
	ByRegion      Attribute = "region"
	ByPolicyType  Attribute = "policy_type"
	ByVehicleType Attribute = "vehicle_type"
	ByGender      Attribute = "gender"
	ByStatus      Attribute = "status"
)

func (a Attribute) value(r claims.Record) string {
	switch a {
	case ByRegion:
		return r.Region
	case ByPolicyType:
		return r.PolicyType
	case ByVehicleType:
		return r.VehicleType
	case ByGender:
		return r.Gender
	case ByStatus:
		return r.Status
	}
	return ""
}

// CategorySummary aggregates one category value within a breakdown.
type CategorySummary struct {
	Value string          `json:"value"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Mean  decimal.Decimal `json:"mean"`
}

// ByCategory groups the view by one categorical attribute and aggregates
// count, total and mean claim amount per value. Order is deterministic:
// descending count, then value.
func ByCategory(v filter.View, attr Attribute) []CategorySummary {
	type acc struct {
		count     int
		amountCnt int
		total     decimal.Decimal
	}
	groups := map[string]*acc{}
	for _, r := range v.Records() {
		key := attr.value(r)
		a := groups[key]
		if a == nil {
			a = &acc{}
			groups[key] = a
		}
		a.count++
		if r.HasAmount {
			a.amountCnt++
			a.total = a.total.Add(r.Amount)
		}
	}
	out := make([]CategorySummary, 0, len(groups))
	for k, a := range groups {
		cs := CategorySummary{Value: k, Count: a.count, Total: a.total}
		if a.amountCnt > 0 {
			cs.Mean = a.total.Div(decimal.NewFromInt(int64(a.amountCnt))).Round(2)
		}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// TimePoint is one day's claim-amount total within a series.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// Series is a named, date-ordered sequence of daily totals.
type Series struct {
	Name   string      `json:"name"`
	Points []TimePoint `json:"points"`
}

// AmountByPeriod buckets claim amounts into daily totals, one series per
// value of the split attribute. Series are ordered by name, points by date.
func AmountByPeriod(v filter.View, split Attribute) []Series {
	daily := map[string]map[time.Time]float64{}
	for _, r := range v.Records() {
		if !r.HasAmount {
			continue
		}
		key := split.value(r)
		day := r.Date.Truncate(24 * time.Hour)
		if daily[key] == nil {
			daily[key] = map[time.Time]float64{}
		}
		daily[key][day] += r.AmountFloat()
	}
	names := make([]string, 0, len(daily))
	for k := range daily {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]Series, 0, len(names))
	for _, name := range names {
		pts := make([]TimePoint, 0, len(daily[name]))
		for day, total := range daily[name] {
			pts = append(pts, TimePoint{Date: day, Total: total})
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })
		out = append(out, Series{Name: name, Points: pts})
	}
	return out
}
