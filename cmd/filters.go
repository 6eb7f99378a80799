package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/filter"
)

// Filter flags shared by summary, export, report and the dashboard.
var (
	fltRegions  []string
	fltPolicies []string
	fltVehicles []string
	fltGenders  []string
	fltStatuses []string
	fltFrom     string
	fltTo       string
)

func registerFilterFlags(c *cobra.Command) {
	c.Flags().StringSliceVar(&fltRegions, "region", nil, "filter by region (repeatable)")
	c.Flags().StringSliceVar(&fltPolicies, "policy-type", nil, "filter by policy type (repeatable)")
	c.Flags().StringSliceVar(&fltVehicles, "vehicle-type", nil, "filter by vehicle type (repeatable)")
	c.Flags().StringSliceVar(&fltGenders, "gender", nil, "filter by policyholder gender (repeatable)")
	c.Flags().StringSliceVar(&fltStatuses, "status", nil, "filter by claim status (repeatable)")
	c.Flags().StringVar(&fltFrom, "from", "", "start of date range (YYYY-MM-DD)")
	c.Flags().StringVar(&fltTo, "to", "", "end of date range (YYYY-MM-DD)")
}

// buildCriteria turns the filter flags into criteria. Bad date formats are
// errors; a reversed range is not (it yields an empty view downstream).
func buildCriteria() (filter.Criteria, error) {
	c := filter.Criteria{
		Regions:      fltRegions,
		PolicyTypes:  fltPolicies,
		VehicleTypes: fltVehicles,
		Genders:      fltGenders,
		Statuses:     fltStatuses,
	}
	if fltFrom != "" {
		t, err := time.Parse("2006-01-02", fltFrom)
		if err != nil {
			return c, fmt.Errorf("invalid --from %q, use YYYY-MM-DD", fltFrom)
		}
		c.From = &t
	}
	if fltTo != "" {
		t, err := time.Parse("2006-01-02", fltTo)
		if err != nil {
			return c, fmt.Errorf("invalid --to %q, use YYYY-MM-DD", fltTo)
		}
		c.To = &t
	}
	return c, nil
}

// loadFilteredView loads the dataset and applies the flag criteria,
// surfacing domain warnings the way the dashboard does.
func loadFilteredView() (*claims.Dataset, filter.View, error) {
	conf := effectiveConfig()
	if conf.DataPath == "" {
		return nil, filter.View{}, fmt.Errorf("no dataset configured; pass --data or set data_path")
	}
	ds, err := claims.LoadCSV(conf.DataPath)
	if err != nil {
		return nil, filter.View{}, err
	}
	c, err := buildCriteria()
	if err != nil {
		return nil, filter.View{}, err
	}
	for _, issue := range c.Validate(ds) {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", issue)
	}
	return ds, filter.Apply(ds, c), nil
}
