package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/claimloom/claimloom/internal/stats"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestTimelineRendersPNG(t *testing.T) {
	series := []stats.Series{
		{Name: "Comprehensive", Points: []stats.TimePoint{
			{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Total: 100},
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Total: 300},
		}},
	}
	png, err := Timeline(series, Options{})
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}

func TestTimelineSinglePointSeries(t *testing.T) {
	series := []stats.Series{
		{Name: "Third Party", Points: []stats.TimePoint{
			{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Total: 200},
		}},
	}
	png, err := Timeline(series, Options{})
	if err != nil {
		t.Fatalf("single-point series must render: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}

func TestTimelineEmpty(t *testing.T) {
	png, err := Timeline(nil, Options{})
	if err != nil {
		t.Fatalf("empty timeline must render a placeholder: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}

func TestCategoryBars(t *testing.T) {
	cats := []stats.CategorySummary{
		{Value: "North", Count: 2, Total: decimal.NewFromInt(400)},
		{Value: "South", Count: 1, Total: decimal.NewFromInt(200)},
	}
	png, err := CategoryBars("Claims by Region", cats, Options{Width: 600, Height: 300})
	if err != nil {
		t.Fatalf("CategoryBars: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}

func TestStatusCountsEmpty(t *testing.T) {
	png, err := StatusCounts(nil, Options{})
	if err != nil {
		t.Fatalf("empty status chart must render a placeholder: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("expected PNG output")
	}
}
