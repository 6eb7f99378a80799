package stats

import (
	"math"
	"sort"

	"github.com/claimloom/claimloom/internal/claims"
	"github.com/claimloom/claimloom/internal/filter"
)

// Describe mirrors a dataframe describe() block over the claim amount:
// count, mean, std (sample), min, quartiles, max. Records without an
// amount are excluded.
type Describe struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// DescribeAmount computes the describe block for a view's claim amounts.
func DescribeAmount(v filter.View) Describe {
	var d Describe
	var vals []float64
	mean, m2 := 0.0, 0.0
	for _, r := range v.Records() {
		if !r.HasAmount {
			continue
		}
		x := r.AmountFloat()
		vals = append(vals, x)
		d.Count++
		// Welford update
		delta := x - mean
		mean += delta / float64(d.Count)
		m2 += delta * (x - mean)
	}
	if d.Count == 0 {
		return d
	}
	d.Mean = mean
	if d.Count > 1 {
		d.Std = math.Sqrt(m2 / float64(d.Count-1))
	}
	sort.Float64s(vals)
	d.Min = vals[0]
	d.Max = vals[len(vals)-1]
	d.Q25 = quantile(vals, 0.25)
	d.Median = quantile(vals, 0.5)
	d.Q75 = quantile(vals, 0.75)
	return d
}

// quantile interpolates linearly between the two nearest ranks of a
// sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// CorrMatrix is a symmetric Pearson correlation matrix over the numeric
// claim columns.
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

var numericColumns = []struct {
	name  string
	value func(claims.Record) (float64, bool)
}{
	{"amount", func(r claims.Record) (float64, bool) { return r.AmountFloat(), r.HasAmount }},
	{"customer_age", func(r claims.Record) (float64, bool) { return float64(r.CustomerAge), r.HasAge }},
	{"previous_claims", func(r claims.Record) (float64, bool) { return float64(r.PreviousClaims), r.HasPrevious }},
}

// Correlations computes pairwise Pearson correlations across the numeric
// columns, using only rows where both values of a pair are present.
func Correlations(v filter.View) CorrMatrix {
	n := len(numericColumns)
	type pairAcc struct {
		n, sumX, sumY, sumXX, sumYY, sumXY float64
	}
	pairs := make([][]pairAcc, n)
	for i := range pairs {
		pairs[i] = make([]pairAcc, n)
	}
	for _, r := range v.Records() {
		for i := 0; i < n; i++ {
			x, okX := numericColumns[i].value(r)
			if !okX {
				continue
			}
			for j := i + 1; j < n; j++ {
				y, okY := numericColumns[j].value(r)
				if !okY {
					continue
				}
				pa := &pairs[i][j]
				pa.n++
				pa.sumX += x
				pa.sumY += y
				pa.sumXX += x * x
				pa.sumYY += y * y
				pa.sumXY += x * y
			}
		}
	}
	m := CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i := range numericColumns {
		m.Columns[i] = numericColumns[i].name
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pa := pairs[i][j]
			r := 0.0
			if pa.n >= 2 {
				denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
				if denom != 0 {
					r = (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
				}
			}
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// OutlierReport counts claim amounts whose robust Z-score (MAD based)
// exceeds the threshold.
type OutlierReport struct {
	Count     int     `json:"count"`
	MaxAbsZ   float64 `json:"max_abs_z"`
	Threshold float64 `json:"threshold"`
}

// Outliers flags unusually large or small claim amounts. Needs at least 8
// amounts to be meaningful; below that it reports zero outliers.
func Outliers(v filter.View, threshold float64) OutlierReport {
	if threshold <= 0 {
		threshold = 3.5
	}
	rep := OutlierReport{Threshold: threshold}
	var vals []float64
	for _, r := range v.Records() {
		if r.HasAmount {
			vals = append(vals, r.AmountFloat())
		}
	}
	if len(vals) < 8 {
		return rep
	}
	median, mad := medianMAD(vals)
	if mad == 0 {
		return rep
	}
	for _, x := range vals {
		z := 0.6745 * (x - median) / mad
		az := math.Abs(z)
		if az > threshold {
			rep.Count++
		}
		if az > rep.MaxAbsZ {
			rep.MaxAbsZ = az
		}
	}
	return rep
}

func medianMAD(vals []float64) (median, mad float64) {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, x := range cp {
		dev[i] = math.Abs(x - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}
