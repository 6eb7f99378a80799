// Package export writes a filtered claims view to CSV. The column set and
// order are fixed so an export re-parses into the same row set.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/filter"
)

// Header is the exported column order.
var Header = []string{
	"Claim ID", "Date", "Region", "Policy Type", "Vehicle Type",
	"Gender", "Claim Status", "Claim Amount", "Customer Age", "Previous Claims",
}

// WriteCSV streams the view to w. Missing numeric fields render as empty
// cells so they stay missing after a round-trip.
func WriteCSV(w io.Writer, v filter.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range v.Records() {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write claim %d: %w", r.ClaimID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func row(r claims.Record) []string {
	amount, age, prev := "", "", ""
	if r.HasAmount {
		amount = r.Amount.String()
	}
	if r.HasAge {
		age = strconv.Itoa(r.CustomerAge)
	}
	if r.HasPrevious {
		prev = strconv.Itoa(r.PreviousClaims)
	}
	return []string{
		strconv.Itoa(r.ClaimID),
		r.Date.Format("2006-01-02"),
		r.Region,
		r.PolicyType,
		r.VehicleType,
		r.Gender,
		r.Status,
		amount,
		age,
		prev,
	}
}
