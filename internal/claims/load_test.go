package claims

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Date,Region,Policy Type,Vehicle Type,Gender,Claim Status,Claim Amount,Customer Age,Previous Claims
2024-01-05,North,Comprehensive,SUV,Female,Approved,1200.50,34,1
2024-01-07,South,Third Party,Sedan,Male,Pending,830,45,0
2024-02-01,North,Comprehensive,Truck,Male,Rejected,,29,2
2024-02-14,East,Third Party,SUV,Female,Approved,2100.75,51,
`

func TestReadAssignsClaimIDs(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ds.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", ds.Len())
	}
	for i, r := range ds.Records() {
		if r.ClaimID != i+1 {
			t.Errorf("record %d: expected ClaimID %d, got %d", i, i+1, r.ClaimID)
		}
	}
}

func TestReadKeepsExplicitClaimIDs(t *testing.T) {
	csv := "Claim ID,Date,Region,Policy Type,Vehicle Type,Gender,Claim Status,Claim Amount\n" +
		"42,2024-01-05,North,Comprehensive,SUV,Female,Approved,1200.50\n"
	ds, err := Read(strings.NewReader(csv), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := ds.Records()[0].ClaimID; got != 42 {
		t.Errorf("expected ClaimID 42, got %d", got)
	}
}

func TestReadMissingAmountIsNotFatal(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	r := ds.Records()[2]
	if r.HasAmount {
		t.Error("expected record with empty amount to have HasAmount=false")
	}
	if r.Region != "North" || r.Status != "Rejected" {
		t.Errorf("record fields lost: %+v", r)
	}
	last := ds.Records()[3]
	if last.HasPrevious {
		t.Error("expected empty previous claims to have HasPrevious=false")
	}
}

func TestReadSkipsUnparseableDates(t *testing.T) {
	csv := "Date,Region,Policy Type,Vehicle Type,Gender,Claim Status,Claim Amount\n" +
		"not-a-date,North,Comprehensive,SUV,Female,Approved,100\n" +
		"2024-01-05,South,Third Party,Sedan,Male,Pending,200\n"
	ds, err := Read(strings.NewReader(csv), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 usable record, got %d", ds.Len())
	}
	if len(ds.Warnings()) != 1 || !strings.Contains(ds.Warnings()[0], "unparseable date") {
		t.Errorf("expected a date warning, got %v", ds.Warnings())
	}
}

func TestReadMissingRequiredColumn(t *testing.T) {
	csv := "Date,Region,Policy Type,Vehicle Type,Gender,Claim Status\n" +
		"2024-01-05,North,Comprehensive,SUV,Female,Approved\n"
	if _, err := Read(strings.NewReader(csv), ','); err == nil {
		t.Fatal("expected error for missing amount column")
	} else if !strings.Contains(err.Error(), "amount") {
		t.Errorf("expected amount in error, got %v", err)
	}
}

func TestReadEmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader(""), ','); err == nil {
		t.Fatal("expected error for empty dataset")
	}
}

func TestDatasetDomains(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	wantRegions := []string{"East", "North", "South"}
	got := ds.Regions()
	if len(got) != len(wantRegions) {
		t.Fatalf("regions: expected %v, got %v", wantRegions, got)
	}
	for i := range wantRegions {
		if got[i] != wantRegions[i] {
			t.Errorf("regions[%d]: expected %s, got %s", i, wantRegions[i], got[i])
		}
	}

	min, max := ds.DateRange()
	if min != date(2024, 1, 5) || max != date(2024, 2, 14) {
		t.Errorf("date range: got %v .. %v", min, max)
	}
}

func TestParseAmountFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1200.50", "1200.5", true},
		{"$1,200.50", "1200.5", true},
		{" 830 ", "830", true},
		{"", "", false},
		{"n/a", "", false},
	}
	for _, c := range cases {
		d, ok := parseAmount(c.in)
		if ok != c.ok {
			t.Errorf("parseAmount(%q): ok=%v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && d.String() != c.want {
			t.Errorf("parseAmount(%q) = %s, want %s", c.in, d.String(), c.want)
		}
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
