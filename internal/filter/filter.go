// Package filter narrows a claims dataset to the rows matching a set of
// user-selected criteria. Criteria are transient: a fresh set is built for
// every interaction and applied in one synchronous pass.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/claimloom/claimloom/internal/claims"
)

// Criteria holds the optional predicates for one interaction. An empty
// slice means "no filter" for that attribute; From/To are nil-able bounds
// on the claim date, inclusive at both ends.
type Criteria struct {
	Regions      []string
	PolicyTypes  []string
	VehicleTypes []string
	Genders      []string
	Statuses     []string
	From         *time.Time
	To           *time.Time
}

// Active reports whether any predicate is set.
func (c Criteria) Active() bool {
	return len(c.Regions) > 0 || len(c.PolicyTypes) > 0 || len(c.VehicleTypes) > 0 ||
		len(c.Genders) > 0 || len(c.Statuses) > 0 || c.From != nil || c.To != nil
}

// EmptyRange reports whether a date range is set with start after end.
// Such a range matches nothing rather than being an error.
func (c Criteria) EmptyRange() bool {
	return c.From != nil && c.To != nil && c.From.After(*c.To)
}

// Validate checks categorical criteria values against the dataset domain.
// Unknown values are legal (they simply match nothing) but usually indicate
// a typo, so they are reported for the CLI to surface.
func (c Criteria) Validate(ds *claims.Dataset) []string {
	var issues []string
	check := func(attr string, sel, domain []string) {
		known := map[string]bool{}
		for _, v := range domain {
			known[strings.ToLower(v)] = true
		}
		for _, v := range sel {
			if !known[strings.ToLower(v)] {
				issues = append(issues, fmt.Sprintf("%s %q not present in dataset", attr, v))
			}
		}
	}
	check("region", c.Regions, ds.Regions())
	check("policy type", c.PolicyTypes, ds.PolicyTypes())
	check("vehicle type", c.VehicleTypes, ds.VehicleTypes())
	check("gender", c.Genders, ds.Genders())
	check("status", c.Statuses, ds.Statuses())
	return issues
}

// View is the read-only subset of a dataset satisfying a Criteria set.
// It is recomputed on every interaction and never cached.
type View struct {
	records  []claims.Record
	criteria Criteria
}

// Records returns the matching rows in dataset order. Read-only.
func (v View) Records() []claims.Record { return v.records }

// Len reports the number of matching rows.
func (v View) Len() int { return len(v.records) }

// Criteria returns the criteria this view was computed from.
func (v View) Criteria() Criteria { return v.criteria }

// Apply computes the maximal subset of ds satisfying every active predicate
// in c (logical AND). Dataset order is preserved, so the result is
// deterministic for a given dataset and criteria.
func Apply(ds *claims.Dataset, c Criteria) View {
	if c.EmptyRange() {
		return View{criteria: c}
	}
	var out []claims.Record
	for _, r := range ds.Records() {
		if !matches(r, c) {
			continue
		}
		out = append(out, r)
	}
	return View{records: out, criteria: c}
}

func matches(r claims.Record, c Criteria) bool {
	if !matchSet(r.Region, c.Regions) {
		return false
	}
	if !matchSet(r.PolicyType, c.PolicyTypes) {
		return false
	}
	if !matchSet(r.VehicleType, c.VehicleTypes) {
		return false
	}
	if !matchSet(r.Gender, c.Genders) {
		return false
	}
	if !matchSet(r.Status, c.Statuses) {
		return false
	}
	if c.From != nil && r.Date.Before(*c.From) {
		return false
	}
	if c.To != nil && r.Date.After(*c.To) {
		return false
	}
	return true
}

func matchSet(val string, sel []string) bool {
	if len(sel) == 0 {
		return true
	}
	for _, s := range sel {
		if strings.EqualFold(val, s) {
			return true
		}
	}
	return false
}
