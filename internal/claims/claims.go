package claims

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single insurance claim row. Numeric fields carry a presence
// flag so that malformed or empty source values can be excluded from
// aggregates without dropping the whole row.
type Record struct {
	ClaimID        int             `json:"claim_id"`
	Date           time.Time       `json:"date"`
	Region         string          `json:"region"`
	PolicyType     string          `json:"policy_type"`
	VehicleType    string          `json:"vehicle_type"`
	Gender         string          `json:"gender"`
	Status         string          `json:"status"`
	Amount         decimal.Decimal `json:"amount"`
	HasAmount      bool            `json:"has_amount"`
	CustomerAge    int             `json:"customer_age"`
	HasAge         bool            `json:"has_age"`
	PreviousClaims int             `json:"previous_claims"`
	HasPrevious    bool            `json:"has_previous"`
}

// AmountFloat returns the claim amount as a float64 for statistical math.
// Only meaningful when HasAmount is true.
func (r Record) AmountFloat() float64 {
	f, _ := r.Amount.Float64()
	return f
}

// Dataset is an immutable handle over the loaded claims. It is built once
// by LoadCSV and passed explicitly to every downstream consumer; nothing
// mutates it after construction.
type Dataset struct {
	records  []Record
	regions  []string
	policies []string
	vehicles []string
	genders  []string
	statuses []string
	minDate  time.Time
	maxDate  time.Time
	warnings []string
}

func newDataset(records []Record, warnings []string) *Dataset {
	ds := &Dataset{records: records, warnings: warnings}
	regions := map[string]bool{}
	policies := map[string]bool{}
	vehicles := map[string]bool{}
	genders := map[string]bool{}
	statuses := map[string]bool{}
	for i, r := range records {
		regions[r.Region] = true
		policies[r.PolicyType] = true
		vehicles[r.VehicleType] = true
		genders[r.Gender] = true
		statuses[r.Status] = true
		if i == 0 || r.Date.Before(ds.minDate) {
			ds.minDate = r.Date
		}
		if i == 0 || r.Date.After(ds.maxDate) {
			ds.maxDate = r.Date
		}
	}
	ds.regions = sortedKeys(regions)
	ds.policies = sortedKeys(policies)
	ds.vehicles = sortedKeys(vehicles)
	ds.genders = sortedKeys(genders)
	ds.statuses = sortedKeys(statuses)
	return ds
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Records returns the loaded rows in file order. Callers must treat the
// returned slice as read-only.
func (ds *Dataset) Records() []Record { return ds.records }

// Len reports the number of loaded claims.
func (ds *Dataset) Len() int { return len(ds.records) }

// Regions returns the sorted domain of the region column.
func (ds *Dataset) Regions() []string { return ds.regions }

// PolicyTypes returns the sorted domain of the policy type column.
func (ds *Dataset) PolicyTypes() []string { return ds.policies }

// VehicleTypes returns the sorted domain of the vehicle type column.
func (ds *Dataset) VehicleTypes() []string { return ds.vehicles }

// Genders returns the sorted domain of the gender column.
func (ds *Dataset) Genders() []string { return ds.genders }

// Statuses returns the sorted domain of the claim status column.
func (ds *Dataset) Statuses() []string { return ds.statuses }

// DateRange returns the earliest and latest claim dates in the dataset.
func (ds *Dataset) DateRange() (time.Time, time.Time) { return ds.minDate, ds.maxDate }

// Warnings returns row-level issues recorded during load (malformed
// amounts, unparseable dates). The dataset itself is still usable.
func (ds *Dataset) Warnings() []string { return ds.warnings }
