package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/filter"
	"github.com/claimloom/claimloom/internal/stats"
)

const testCSV = `Date,Region,Policy Type,Vehicle Type,Gender,Claim Status,Claim Amount
2024-01-05,North,Comprehensive,SUV,Female,Approved,100
2024-01-10,South,Third Party,Sedan,Male,Pending,200
`

func testView(t *testing.T) filter.View {
	t.Helper()
	ds, err := claims.Read(strings.NewReader(testCSV), ',')
	if err != nil {
		t.Fatalf("load test data: %v", err)
	}
	return filter.Apply(ds, filter.Criteria{})
}

func TestBuildProducesPDF(t *testing.T) {
	v := testView(t)
	var buf bytes.Buffer
	err := Build(&buf, Params{
		View:     v,
		Summary:  stats.Summarize(v),
		Describe: stats.DescribeAmount(v),
		Now:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output must start with a PDF header")
	assert.Greater(t, buf.Len(), 500)
}

func TestBuildEmptyView(t *testing.T) {
	var buf bytes.Buffer
	err := Build(&buf, Params{})
	assert.NoError(t, err, "an empty view still yields a valid report")
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestUSDFormatting(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"100":        "$100.00",
		"1200.5":     "$1,200.50",
		"1234567.89": "$1,234,567.89",
		"-9999.99":   "$-9,999.99",
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		assert.NoError(t, err)
		assert.Equal(t, want, USD(d), "input %s", in)
	}
}
