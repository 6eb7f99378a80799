package claims

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column names recognized in the input header, after normalization.
// "claim amount" and "amount" map to the same column, as do the other
// aliases, so exports of a filtered view load back cleanly.
var headerAliases = map[string]string{
	"claimid":        "claim_id",
	"id":             "claim_id",
	"date":           "date",
	"claimdate":      "date",
	"region":         "region",
	"policytype":     "policy_type",
	"policy":         "policy_type",
	"vehicletype":    "vehicle_type",
	"vehicle":        "vehicle_type",
	"gender":         "gender",
	"claimstatus":    "status",
	"status":         "status",
	"claimamount":    "amount",
	"amount":         "amount",
	"customerage":    "customer_age",
	"age":            "customer_age",
	"previousclaims": "previous_claims",
}

var requiredColumns = []string{"date", "region", "policy_type", "vehicle_type", "gender", "status", "amount"}

var dateLayouts = []string{
	"2006-01-02", time.RFC3339, "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04:05", "2006-01-02 15:04",
}

// LoadCSV reads a claims dataset from path. Missing required columns or an
// unreadable file are fatal; malformed values in individual rows are
// recorded as dataset warnings instead.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	ds, err := Read(f, sniffDelimiter(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, w := range ds.Warnings() {
		slog.Warn("dataset row skipped", "file", path, "reason", w)
	}
	return ds, nil
}

// Read parses claims CSV from r. Exported separately from LoadCSV so the
// CSV exporter's round-trip can be tested without touching disk.
func Read(r io.Reader, delim rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if delim != 0 {
		cr.Comma = delim
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty dataset")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := map[string]int{}
	for i, h := range header {
		key := normalizeHeader(h)
		if name, ok := headerAliases[key]; ok {
			if _, dup := colIdx[name]; !dup {
				colIdx[name] = i
			}
		}
	}
	for _, name := range requiredColumns {
		if _, ok := colIdx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	_, hasID := colIdx["claim_id"]

	var records []Record
	var warnings []string
	row := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++

		field := func(name string) string {
			idx, ok := colIdx[name]
			if !ok || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		date, ok := parseDate(field("date"))
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: unparseable date %q", row, field("date")))
			continue
		}
		r := Record{
			Date:        date,
			Region:      field("region"),
			PolicyType:  field("policy_type"),
			VehicleType: field("vehicle_type"),
			Gender:      field("gender"),
			Status:      field("status"),
		}
		if amt, ok := parseAmount(field("amount")); ok {
			r.Amount = amt
			r.HasAmount = true
		} else if field("amount") != "" {
			warnings = append(warnings, fmt.Sprintf("row %d: unparseable amount %q", row, field("amount")))
		}
		if age, err := strconv.Atoi(field("customer_age")); err == nil {
			r.CustomerAge = age
			r.HasAge = true
		}
		if prev, err := strconv.Atoi(field("previous_claims")); err == nil {
			r.PreviousClaims = prev
			r.HasPrevious = true
		}
		if hasID {
			if id, err := strconv.Atoi(field("claim_id")); err == nil {
				r.ClaimID = id
			}
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, errors.New("dataset contains no usable rows")
	}
	if !hasID {
		// Assign 1-based IDs in file order when the column is absent.
		for i := range records {
			records[i].ClaimID = i + 1
		}
	}
	return newDataset(records, warnings), nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
	return h
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseAmount(s string) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
