package stats

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/filter"
)

const testCSV = `Date,Region,Policy Type,Vehicle Type,Gender,Claim Status,Claim Amount,Customer Age,Previous Claims
2024-01-05,North,Comprehensive,SUV,Female,Approved,100,30,0
2024-01-10,South,Third Party,Sedan,Male,Pending,200,40,1
2024-02-01,North,Third Party,Truck,Male,Approved,300,50,2
2024-02-20,East,Comprehensive,SUV,Female,Rejected,,60,3
`

func testView(t *testing.T, c filter.Criteria) filter.View {
	t.Helper()
	ds, err := claims.Read(strings.NewReader(testCSV), ',')
	if err != nil {
		t.Fatalf("load test data: %v", err)
	}
	return filter.Apply(ds, c)
}

func TestSummarize(t *testing.T) {
	s := Summarize(testView(t, filter.Criteria{}))
	if s.Count != 4 {
		t.Errorf("count: expected 4, got %d", s.Count)
	}
	if s.WithAmount != 3 {
		t.Errorf("with_amount: expected 3, got %d", s.WithAmount)
	}
	if s.Total.String() != "600" {
		t.Errorf("total: expected 600, got %s", s.Total)
	}
	if s.Mean.String() != "200" {
		t.Errorf("mean over present amounts: expected 200, got %s", s.Mean)
	}
	if s.ApprovedTotal.String() != "400" {
		t.Errorf("approved total: expected 400, got %s", s.ApprovedTotal)
	}
}

func TestSummarizeFilteredExample(t *testing.T) {
	s := Summarize(testView(t, filter.Criteria{Regions: []string{"North"}}))
	if s.Count != 2 || s.Total.String() != "400" {
		t.Errorf("North filter: expected count=2 total=400, got count=%d total=%s", s.Count, s.Total)
	}
}

func TestSummarizeEmptyView(t *testing.T) {
	s := Summarize(testView(t, filter.Criteria{Regions: []string{"Nowhere"}}))
	if s.Count != 0 || !s.Total.IsZero() || !s.Mean.IsZero() {
		t.Errorf("empty view should be all-zero, got %+v", s)
	}
}

func TestDescribeAmount(t *testing.T) {
	d := DescribeAmount(testView(t, filter.Criteria{}))
	if d.Count != 3 {
		t.Fatalf("describe count: expected 3, got %d", d.Count)
	}
	if d.Mean != 200 {
		t.Errorf("mean: expected 200, got %f", d.Mean)
	}
	if d.Min != 100 || d.Max != 300 {
		t.Errorf("min/max: expected 100/300, got %f/%f", d.Min, d.Max)
	}
	if d.Median != 200 {
		t.Errorf("median: expected 200, got %f", d.Median)
	}
	if d.Q25 != 150 || d.Q75 != 250 {
		t.Errorf("quartiles: expected 150/250, got %f/%f", d.Q25, d.Q75)
	}
	if math.Abs(d.Std-100) > 1e-9 {
		t.Errorf("std: expected 100, got %f", d.Std)
	}
}

func TestDescribeEmpty(t *testing.T) {
	d := DescribeAmount(testView(t, filter.Criteria{Regions: []string{"Nowhere"}}))
	if d.Count != 0 || d.Mean != 0 || d.Max != 0 {
		t.Errorf("empty describe should be zero, got %+v", d)
	}
}

func TestByCategoryOrdering(t *testing.T) {
	cats := ByCategory(testView(t, filter.Criteria{}), ByRegion)
	if len(cats) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(cats))
	}
	if cats[0].Value != "North" || cats[0].Count != 2 {
		t.Errorf("first category: expected North(2), got %s(%d)", cats[0].Value, cats[0].Count)
	}
	// Equal counts fall back to name order.
	if cats[1].Value != "East" || cats[2].Value != "South" {
		t.Errorf("tie break: expected East then South, got %s then %s", cats[1].Value, cats[2].Value)
	}
}

func TestByCategoryExcludesMissingAmounts(t *testing.T) {
	cats := ByCategory(testView(t, filter.Criteria{}), ByRegion)
	for _, c := range cats {
		if c.Value == "East" {
			if c.Count != 1 {
				t.Errorf("East count: expected 1, got %d", c.Count)
			}
			if !c.Total.IsZero() || !c.Mean.IsZero() {
				t.Errorf("East has only a missing amount; total/mean should be zero, got %s/%s", c.Total, c.Mean)
			}
		}
	}
}

func TestBuildReportDeterminism(t *testing.T) {
	v := testView(t, filter.Criteria{Statuses: []string{"Approved"}})
	a := BuildReport(v, 0)
	b := BuildReport(v, 0)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical views must produce identical reports")
	}
}

func TestAmountByPeriod(t *testing.T) {
	series := AmountByPeriod(testView(t, filter.Criteria{}), ByPolicyType)
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	if series[0].Name != "Comprehensive" || series[1].Name != "Third Party" {
		t.Errorf("series order: got %s, %s", series[0].Name, series[1].Name)
	}
	tp := series[1]
	if len(tp.Points) != 2 {
		t.Fatalf("Third Party points: expected 2, got %d", len(tp.Points))
	}
	if !tp.Points[0].Date.Before(tp.Points[1].Date) {
		t.Error("points must be date ordered")
	}
	if tp.Points[0].Total != 200 || tp.Points[1].Total != 300 {
		t.Errorf("daily totals: got %f, %f", tp.Points[0].Total, tp.Points[1].Total)
	}
}

func TestCorrelationsPerfectlyCorrelated(t *testing.T) {
	// Amount, age and previous claims all increase together in the fixture.
	m := Correlations(testView(t, filter.Criteria{}))
	if len(m.Columns) != 3 {
		t.Fatalf("expected 3 numeric columns, got %v", m.Columns)
	}
	for i := range m.Values {
		if m.Values[i][i] != 1 {
			t.Errorf("diagonal must be 1, got %f", m.Values[i][i])
		}
	}
	// amount ~ customer_age over the three rows with amounts is exactly linear.
	if math.Abs(m.Values[0][1]-1) > 1e-9 {
		t.Errorf("amount~age: expected r=1, got %f", m.Values[0][1])
	}
	if m.Values[0][1] != m.Values[1][0] {
		t.Error("matrix must be symmetric")
	}
}

func TestOutliersSmallSample(t *testing.T) {
	rep := Outliers(testView(t, filter.Criteria{}), 0)
	if rep.Count != 0 {
		t.Errorf("fewer than 8 amounts should report no outliers, got %d", rep.Count)
	}
	if rep.Threshold != 3.5 {
		t.Errorf("default threshold: expected 3.5, got %f", rep.Threshold)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	vals := []float64{1, 2, 3, 4}
	if q := quantile(vals, 0.5); q != 2.5 {
		t.Errorf("median of 1..4: expected 2.5, got %f", q)
	}
	if q := quantile(vals, 0); q != 1 {
		t.Errorf("q0: expected 1, got %f", q)
	}
	if q := quantile(vals, 1); q != 4 {
		t.Errorf("q1: expected 4, got %f", q)
	}
}

func TestReportMarkdown(t *testing.T) {
	rep := BuildReport(testView(t, filter.Criteria{}), 0)
	md := rep.Markdown()
	for _, want := range []string{"[CLAIMS SUMMARY]", "Total: $600.00", "[BY REGION]", "North: 2 claims"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
